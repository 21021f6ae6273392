package lights

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DirectionalLight is a light at infinity shining along a fixed direction with no attenuation
type DirectionalLight struct {
	intensity core.Color
	direction core.Vector // Unit direction the light travels in
}

// NewDirectionalLight creates a light travelling along direction
func NewDirectionalLight(intensity core.Color, direction core.Vector) (*DirectionalLight, error) {
	d, err := direction.Normalize()
	if err != nil {
		return nil, fmt.Errorf("directional light direction: %w", err)
	}
	return &DirectionalLight{intensity: intensity, direction: d}, nil
}

// Direction returns the unit direction the light travels in
func (d *DirectionalLight) Direction() core.Vector { return d.direction }

func (d *DirectionalLight) Intensity(core.Point) core.Color { return d.intensity }

func (d *DirectionalLight) ToLight(core.Point) (core.Vector, bool) {
	return d.direction.Negate(), true
}

func (d *DirectionalLight) Distance(core.Point) float64 { return math.Inf(1) }
