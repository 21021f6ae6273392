package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	surface
	q      core.Point  // A point on the plane
	normal core.Vector // Unit normal
}

// NewPlane creates a plane through q with the given normal
func NewPlane(q core.Point, normal core.Vector) (*Plane, error) {
	n, err := normal.Normalize()
	if err != nil {
		return nil, fmt.Errorf("plane normal: %w", err)
	}
	return &Plane{surface: newSurface(), q: q, normal: n}, nil
}

// NewPlaneFromPoints creates the plane through three points.
// The normal follows the winding (p1-p2)×(p2-p3).
func NewPlaneFromPoints(p1, p2, p3 core.Point) (*Plane, error) {
	v1, err := p1.Subtract(p2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v and %v coincide", ErrDegeneratePlane, p1, p2)
	}
	v2, err := p2.Subtract(p3)
	if err != nil {
		return nil, fmt.Errorf("%w: %v and %v coincide", ErrDegeneratePlane, p2, p3)
	}
	cross, err := v1.Cross(v2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v, %v, %v", ErrDegeneratePlane, p1, p2, p3)
	}
	return NewPlane(p1, cross)
}

func (p *Plane) shape() {}

// Point returns the plane's reference point
func (p *Plane) Point() core.Point { return p.q }

// Normal returns the plane normal, which is the same everywhere
func (p *Plane) Normal(core.Point) core.Vector { return p.normal }

// SetEmission sets the emitted color and returns the plane
func (p *Plane) SetEmission(c core.Color) *Plane {
	p.emission = c
	return p
}

// SetMaterial sets the material and returns the plane
func (p *Plane) SetMaterial(m material.Material) *Plane {
	p.material = m
	return p
}

func (p *Plane) intersect(ray core.Ray, maxDistance float64) []GeoPoint {
	t, ok := p.hit(ray, maxDistance)
	if !ok {
		return nil
	}
	return []GeoPoint{{Geometry: p, Point: ray.At(t)}}
}

// hit returns the ray parameter of the intersection, if any
func (p *Plane) hit(ray core.Ray, maxDistance float64) (float64, bool) {
	p0 := ray.Origin()
	v := ray.Direction()

	// A ray starting at the reference point lies on the plane
	qp0, err := p.q.Subtract(p0)
	if err != nil {
		return 0, false
	}

	// Parallel to the plane
	nv := p.normal.Dot(v)
	if core.IsZero(nv) {
		return 0, false
	}

	// t ≈ 0 means the origin is on the plane; t < 0 is behind the origin
	t := core.AlignZero(p.normal.Dot(qp0) / nv)
	if !within(t, maxDistance) {
		return 0, false
	}
	return t, true
}
