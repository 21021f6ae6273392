package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	surface
	center core.Point
	radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64) (*Sphere, error) {
	if radius <= 0 || core.IsZero(radius) {
		return nil, fmt.Errorf("sphere: %w, got %g", ErrNonPositiveRadius, radius)
	}
	return &Sphere{surface: newSurface(), center: center, radius: radius}, nil
}

func (s *Sphere) shape() {}

// Center returns the sphere center
func (s *Sphere) Center() core.Point { return s.center }

// Radius returns the sphere radius
func (s *Sphere) Radius() float64 { return s.radius }

// Normal returns the outward unit normal at p
func (s *Sphere) Normal(p core.Point) core.Vector {
	n, err := p.Subtract(s.center)
	if err != nil {
		return core.AxisZ()
	}
	return core.Must(n.Normalize())
}

// SetEmission sets the emitted color and returns the sphere
func (s *Sphere) SetEmission(c core.Color) *Sphere {
	s.emission = c
	return s
}

// SetMaterial sets the material and returns the sphere
func (s *Sphere) SetMaterial(m material.Material) *Sphere {
	s.material = m
	return s
}

func (s *Sphere) intersect(ray core.Ray, maxDistance float64) []GeoPoint {
	p0 := ray.Origin()
	v := ray.Direction()

	// Ray starts at the center: it leaves through exactly one point
	u, err := s.center.Subtract(p0)
	if err != nil {
		if !within(s.radius, maxDistance) {
			return nil
		}
		return []GeoPoint{{Geometry: s, Point: ray.At(s.radius)}}
	}

	// Project the center onto the ray; d is the center's distance from the ray
	tm := core.AlignZero(v.Dot(u))
	dSquared := u.LengthSquared() - tm*tm
	thSquared := core.AlignZero(s.radius*s.radius - dSquared)
	if thSquared <= 0 {
		return nil
	}

	th := math.Sqrt(thSquared)
	t1 := core.AlignZero(tm - th)
	t2 := core.AlignZero(tm + th)

	var result []GeoPoint
	for _, t := range []float64{t1, t2} {
		if within(t, maxDistance) {
			result = append(result, GeoPoint{Geometry: s, Point: ray.At(t)})
		}
	}
	return result
}
