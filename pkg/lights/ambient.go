package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// AmbientLight is a uniform light added once to every visible surface
type AmbientLight struct {
	intensity core.Color
}

// NewAmbientLight creates an ambient light of intensity ia attenuated by ka
func NewAmbientLight(ia core.Color, ka core.Factor) AmbientLight {
	return AmbientLight{intensity: ia.ScaleBy(ka)}
}

// NoAmbient returns a black ambient light
func NoAmbient() AmbientLight {
	return AmbientLight{intensity: core.Black()}
}

// Intensity returns the attenuated ambient color
func (a AmbientLight) Intensity() core.Color { return a.intensity }
