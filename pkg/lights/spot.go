package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// SpotLight is a point light whose intensity falls off away from its beam direction.
// The falloff is max(0, dir·l)^narrowBeam, where l points from the light to the surface.
type SpotLight struct {
	PointLight
	direction  core.Vector
	narrowBeam float64
}

// NewSpotLight creates a spot light at position aimed along direction
func NewSpotLight(intensity core.Color, position core.Point, direction core.Vector) (*SpotLight, error) {
	d, err := direction.Normalize()
	if err != nil {
		return nil, fmt.Errorf("spot light direction: %w", err)
	}
	return &SpotLight{
		PointLight: *NewPointLight(intensity, position),
		direction:  d,
		narrowBeam: 1,
	}, nil
}

// SetAttenuation sets the constant, linear and quadratic attenuation factors
func (s *SpotLight) SetAttenuation(kC, kL, kQ float64) *SpotLight {
	s.PointLight.SetAttenuation(kC, kL, kQ)
	return s
}

// SetRadius sets the radius of the disk sampled for soft shadows
func (s *SpotLight) SetRadius(radius float64) *SpotLight {
	s.PointLight.SetRadius(radius)
	return s
}

// SetNarrowBeam sets the falloff exponent; larger values give a tighter beam
func (s *SpotLight) SetNarrowBeam(narrowBeam float64) *SpotLight {
	s.narrowBeam = math.Max(1, narrowBeam)
	return s
}

// Direction returns the unit beam direction
func (s *SpotLight) Direction() core.Vector { return s.direction }

func (s *SpotLight) Intensity(p core.Point) core.Color {
	toLight, ok := s.ToLight(p)
	if !ok {
		return core.Black()
	}
	factor := math.Max(0, s.direction.Dot(toLight.Negate()))
	return s.PointLight.Intensity(p).Scale(math.Pow(factor, s.narrowBeam))
}
