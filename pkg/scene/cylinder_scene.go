package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewCylinderScene creates a scene showcasing tubes, capped cylinders, polygons and soft shadows
func NewCylinderScene() *Scene {
	matte := material.New().
		WithKD(core.Uniform(0.5)).
		WithKS(core.Uniform(0.3)).
		WithShininess(30)

	floor := core.Must(geometry.NewPlane(core.NewPoint(0, -50, 0), vec(0, 1, 0))).
		SetEmission(core.NewColor(40, 40, 40)).
		SetMaterial(matte.WithKR(core.Uniform(0.2)).WithGlossiness(0.9))

	// Capped cylinder standing on the floor
	column := core.Must(geometry.NewCylinder(core.NewRay(core.NewPoint(-60, -50, -100), vec(0, 1, 0)), 30, 80)).
		SetEmission(core.NewColor(120, 20, 20)).
		SetMaterial(matte)

	// Cylinder lying on its side, partially mirrored
	log := core.Must(geometry.NewCylinder(core.NewRay(core.NewPoint(20, -35, -160), vec(1, 0, 0.5)), 15, 90)).
		SetEmission(core.NewColor(20, 80, 20)).
		SetMaterial(matte.WithKR(core.Uniform(0.3)))

	// Infinite tube spanning the background
	rail := core.Must(geometry.NewTube(core.NewRay(core.NewPoint(0, 70, -300), vec(1, 0, 0)), 10)).
		SetEmission(core.NewColor(60, 60, 90)).
		SetMaterial(matte)

	glass := core.Must(geometry.NewSphere(core.NewPoint(60, -20, -60), 30)).
		SetEmission(core.NewColor(0, 0, 60)).
		SetMaterial(material.New().
			WithKD(core.Uniform(0.2)).
			WithKS(core.Uniform(0.4)).
			WithShininess(80).
			WithKT(core.Uniform(0.6)).
			WithBlur(0.95))

	backdrop := core.Must(geometry.NewPolygon(
		core.NewPoint(-200, -50, -400), core.NewPoint(200, -50, -400),
		core.NewPoint(200, 150, -400), core.NewPoint(-200, 150, -400))).
		SetEmission(core.NewColor(30, 30, 50)).
		SetMaterial(matte)

	key := lights.NewPointLight(core.NewColor(800, 700, 600), core.NewPoint(0, 100, 100)).
		SetAttenuation(1, 0.0001, 0.000001).
		SetRadius(10)
	fill := core.Must(lights.NewDirectionalLight(core.NewColor(40, 40, 40), vec(1, -1, -1)))

	return New("cylinders",
		WithShapes(floor, geometry.NewAggregate(column, log), rail, glass, backdrop),
		WithLights(key, fill),
		WithAmbient(lights.NewAmbientLight(white, core.Uniform(0.1))),
		WithCamera(frontCamera(500, 300)),
	)
}
