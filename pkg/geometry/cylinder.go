package geometry

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Cylinder represents a finite tube closed by two flat caps.
// The bottom cap is centered on the axis origin, the top cap height units
// along the axis direction.
type Cylinder struct {
	surface
	lateral *Tube
	height  float64

	// Cached derived values
	bottom *Plane
	top    *Plane
}

// NewCylinder creates a new cylinder
func NewCylinder(axis core.Ray, radius, height float64) (*Cylinder, error) {
	lateral, err := NewTube(axis, radius)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}
	if height <= 0 || core.IsZero(height) {
		return nil, fmt.Errorf("cylinder: %w, got %g", ErrNonPositiveHeight, height)
	}

	v := axis.Direction()
	return &Cylinder{
		surface: newSurface(),
		lateral: lateral,
		height:  height,
		bottom:  core.Must(NewPlane(axis.Origin(), v)),
		top:     core.Must(NewPlane(axis.At(height), v)),
	}, nil
}

func (c *Cylinder) shape() {}

// Axis returns the cylinder axis ray
func (c *Cylinder) Axis() core.Ray { return c.lateral.axis }

// Radius returns the cylinder radius
func (c *Cylinder) Radius() float64 { return c.lateral.radius }

// Height returns the distance between the caps
func (c *Cylinder) Height() float64 { return c.height }

// Normal returns the cap normal on the caps and the radial normal elsewhere
func (c *Cylinder) Normal(p core.Point) core.Vector {
	v := c.lateral.axis.Direction()
	h := core.AlignZero(r3.Dot(v.Vec(), r3.Sub(p.Vec(), c.bottom.q.Vec())))
	switch {
	case h == 0:
		return v.Negate()
	case core.IsZero(h - c.height):
		return v
	}
	return c.lateral.Normal(p)
}

// SetEmission sets the emitted color and returns the cylinder
func (c *Cylinder) SetEmission(col core.Color) *Cylinder {
	c.emission = col
	return c
}

// SetMaterial sets the material and returns the cylinder
func (c *Cylinder) SetMaterial(m material.Material) *Cylinder {
	c.material = m
	return c
}

// intersect returns cap hits inside the radius plus lateral hits strictly
// between the caps. When both caps are hit the lateral surface is skipped and
// the cap points come back in bottom, top order regardless of distance. Any
// excess beyond two points is truncated in discovery order.
func (c *Cylinder) intersect(ray core.Ray, maxDistance float64) []GeoPoint {
	var result []GeoPoint
	rSquared := c.lateral.radius * c.lateral.radius

	for _, plane := range []*Plane{c.bottom, c.top} {
		t, ok := plane.hit(ray, maxDistance)
		if !ok {
			continue
		}
		p := ray.At(t)
		if p.DistanceSquared(plane.q) < rSquared {
			result = append(result, GeoPoint{Geometry: c, Point: p})
		}
	}
	if len(result) == 2 {
		return result
	}

	v := c.lateral.axis.Direction().Vec()
	for _, p := range c.lateral.hits(ray, maxDistance) {
		aboveBottom := core.AlignZero(r3.Dot(v, r3.Sub(p.Vec(), c.bottom.q.Vec()))) > 0
		belowTop := core.AlignZero(r3.Dot(v, r3.Sub(p.Vec(), c.top.q.Vec()))) < 0
		if aboveBottom && belowTop {
			result = append(result, GeoPoint{Geometry: c, Point: p})
		}
	}

	if len(result) > 2 {
		result = result[:2]
	}
	return result
}
