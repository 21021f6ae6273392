package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/camera"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

var (
	blue  = core.NewColor(0, 0, 255)
	red   = core.NewColor(255, 0, 0)
	white = core.NewColor(255, 255, 255)
)

func vec(x, y, z float64) core.Vector { return core.Must(core.NewVector(x, y, z)) }

// frontCamera looks down -Z from (0, 0, distance) at a square view plane of the given size
func frontCamera(distance, size float64) camera.Config {
	return camera.Config{
		Location: core.NewPoint(0, 0, distance),
		To:       vec(0, 0, -1),
		Up:       vec(0, 1, 0),
		Width:    size,
		Height:   size,
		Distance: distance,
	}
}

// NewDefaultScene creates a transparent blue sphere around a red one, lit by a spot light
func NewDefaultScene() *Scene {
	outer := core.Must(geometry.NewSphere(core.NewPoint(0, 0, -50), 50)).
		SetEmission(blue).
		SetMaterial(material.New().
			WithKD(core.Uniform(0.4)).
			WithKS(core.Uniform(0.3)).
			WithShininess(100).
			WithKT(core.Uniform(0.3)))

	inner := core.Must(geometry.NewSphere(core.NewPoint(0, 0, -50), 25)).
		SetEmission(red).
		SetMaterial(material.New().
			WithKD(core.Uniform(0.5)).
			WithKS(core.Uniform(0.5)).
			WithShininess(100))

	spot := core.Must(lights.NewSpotLight(core.NewColor(1000, 600, 0), core.NewPoint(-100, -100, 500), vec(-1, -1, -2))).
		SetAttenuation(1, 0.0004, 0.0000006)

	return New("default",
		WithShapes(outer, inner),
		WithLights(spot),
		WithCamera(frontCamera(1000, 150)),
	)
}

// NewShadowScene creates two triangles partially shadowed by a transparent sphere
func NewShadowScene() *Scene {
	triangleMaterial := material.New().
		WithKD(core.Uniform(0.5)).
		WithKS(core.Uniform(0.5)).
		WithShininess(60)

	t1 := core.Must(geometry.NewTriangle(
		core.NewPoint(-150, -150, -115), core.NewPoint(150, -150, -135), core.NewPoint(75, 75, -150))).
		SetMaterial(triangleMaterial)
	t2 := core.Must(geometry.NewTriangle(
		core.NewPoint(-150, -150, -115), core.NewPoint(-70, 70, -140), core.NewPoint(75, 75, -150))).
		SetMaterial(triangleMaterial)

	sphere := core.Must(geometry.NewSphere(core.NewPoint(60, 50, -50), 30)).
		SetEmission(blue).
		SetMaterial(material.New().
			WithKD(core.Uniform(0.2)).
			WithKS(core.Uniform(0.2)).
			WithShininess(30).
			WithKT(core.Uniform(0.6)))

	spot := core.Must(lights.NewSpotLight(core.NewColor(700, 400, 400), core.NewPoint(60, 50, 0), vec(0, 0, -1))).
		SetAttenuation(1, 4e-5, 2e-7).
		SetRadius(5)

	return New("shadow",
		WithShapes(t1, t2, sphere),
		WithLights(spot),
		WithAmbient(lights.NewAmbientLight(white, core.Uniform(0.15))),
		WithCamera(frontCamera(1000, 200)),
		WithSampling(SamplingConfig{Width: 600, Height: 600, AntiAliasing: 1}),
	)
}
