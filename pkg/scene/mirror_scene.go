package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMirrorScene creates two nested spheres reflected in a pair of mirror triangles
func NewMirrorScene() *Scene {
	sphereMaterial := material.New().
		WithKD(core.Uniform(0.25)).
		WithKS(core.Uniform(0.25)).
		WithShininess(20)

	outer := core.Must(geometry.NewSphere(core.NewPoint(-950, -900, -1000), 400)).
		SetEmission(core.NewColor(0, 50, 100)).
		SetMaterial(sphereMaterial.WithKT(core.NewFactor(0.5, 0, 0)))
	inner := core.Must(geometry.NewSphere(core.NewPoint(-950, -900, -1000), 200)).
		SetEmission(core.NewColor(100, 50, 20)).
		SetMaterial(sphereMaterial)

	mirrorEmission := core.NewColor(20, 20, 20)
	fullMirror := core.Must(geometry.NewTriangle(
		core.NewPoint(1500, -1500, -1500), core.NewPoint(-1500, 1500, -1500), core.NewPoint(670, 670, 3000))).
		SetEmission(mirrorEmission).
		SetMaterial(material.New().WithKR(core.One()))
	tintedMirror := core.Must(geometry.NewTriangle(
		core.NewPoint(1500, -1500, -1500), core.NewPoint(-1500, 1500, -1500), core.NewPoint(-1500, -1500, -2000))).
		SetEmission(mirrorEmission).
		SetMaterial(material.New().WithKR(core.NewFactor(0.5, 0, 0.4)))

	spot := core.Must(lights.NewSpotLight(core.NewColor(1020, 400, 400), core.NewPoint(-750, -750, -150), vec(-1, -1, -4))).
		SetAttenuation(1, 0.00001, 0.000005)

	return New("mirrors",
		WithShapes(outer, inner, fullMirror, tintedMirror),
		WithLights(spot),
		WithAmbient(lights.NewAmbientLight(white, core.Uniform(0.1))),
		WithCamera(frontCamera(10000, 2500)),
	)
}
