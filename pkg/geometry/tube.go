package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Tube represents an infinite cylinder around an axis ray
type Tube struct {
	surface
	axis   core.Ray
	radius float64
}

// NewTube creates a new tube
func NewTube(axis core.Ray, radius float64) (*Tube, error) {
	if radius <= 0 || core.IsZero(radius) {
		return nil, fmt.Errorf("tube: %w, got %g", ErrNonPositiveRadius, radius)
	}
	return &Tube{surface: newSurface(), axis: axis, radius: radius}, nil
}

func (t *Tube) shape() {}

// Axis returns the tube's axis ray
func (t *Tube) Axis() core.Ray { return t.axis }

// Radius returns the tube radius
func (t *Tube) Radius() float64 { return t.radius }

// Normal returns the unit vector from the axis to p, perpendicular to the axis
func (t *Tube) Normal(p core.Point) core.Vector {
	v := t.axis.Direction().Vec()
	p0 := t.axis.Origin().Vec()
	offset := r3.Sub(p.Vec(), p0)
	onAxis := r3.Add(p0, r3.Scale(r3.Dot(v, offset), v))
	n, err := core.VectorFromVec(r3.Sub(p.Vec(), onAxis))
	if err != nil {
		return t.axis.Direction().Perpendicular()
	}
	return core.Must(n.Normalize())
}

// SetEmission sets the emitted color and returns the tube
func (t *Tube) SetEmission(c core.Color) *Tube {
	t.emission = c
	return t
}

// SetMaterial sets the material and returns the tube
func (t *Tube) SetMaterial(m material.Material) *Tube {
	t.material = m
	return t
}

func (t *Tube) intersect(ray core.Ray, maxDistance float64) []GeoPoint {
	var result []GeoPoint
	for _, p := range t.hits(ray, maxDistance) {
		result = append(result, GeoPoint{Geometry: t, Point: p})
	}
	return result
}

// hits solves the circle quadratic in the plane perpendicular to the axis.
// Rays parallel to the axis never hit, even when they run along the surface.
func (t *Tube) hits(ray core.Ray, maxDistance float64) []core.Point {
	v := t.axis.Direction().Vec()
	dir := ray.Direction().Vec()

	// Ray direction with the axis component removed
	dirPerp := r3.Sub(dir, r3.Scale(r3.Dot(dir, v), v))
	a := core.AlignZero(r3.Norm2(dirPerp))
	if a == 0 {
		return nil
	}

	// Axis origin to ray origin, with the axis component removed
	delta := r3.Sub(ray.Origin().Vec(), t.axis.Origin().Vec())
	deltaPerp := r3.Sub(delta, r3.Scale(r3.Dot(delta, v), v))

	b := 2 * r3.Dot(dirPerp, deltaPerp)
	c := r3.Norm2(deltaPerp) - t.radius*t.radius

	discriminant := core.AlignZero(b*b - 4*a*c)
	if discriminant <= 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := core.AlignZero((-b - sqrtD) / (2 * a))
	t2 := core.AlignZero((-b + sqrtD) / (2 * a))

	var points []core.Point
	for _, root := range []float64{t1, t2} {
		if within(root, maxDistance) {
			points = append(points, ray.At(root))
		}
	}
	return points
}
