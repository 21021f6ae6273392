package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Polygon is a convex, planar polygon with consistently wound vertices
type Polygon struct {
	surface
	vertices []core.Point
	plane    *Plane
}

// NewTriangle creates a triangle from three vertices
func NewTriangle(v0, v1, v2 core.Point) (*Polygon, error) {
	return NewPolygon(v0, v1, v2)
}

// NewPolygon creates a polygon, validating that the vertices are coplanar,
// ordered along the edge path and form a convex shape
func NewPolygon(vertices ...core.Point) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("%w, got %d", ErrTooFewVertices, len(vertices))
	}

	plane, err := NewPlaneFromPoints(vertices[0], vertices[1], vertices[2])
	if err != nil {
		return nil, fmt.Errorf("polygon: %w", err)
	}

	poly := &Polygon{
		surface:  newSurface(),
		vertices: append([]core.Point(nil), vertices...),
		plane:    plane,
	}
	if len(vertices) == 3 {
		return poly, nil
	}
	if err := poly.validate(); err != nil {
		return nil, err
	}
	return poly, nil
}

// validate walks the edges checking coplanarity and that every corner turns
// the same way relative to the plane normal
func (p *Polygon) validate() error {
	n := p.plane.normal
	last := len(p.vertices) - 1

	edge1, err := p.edge(last - 1)
	if err != nil {
		return err
	}
	edge2, err := p.edge(last)
	if err != nil {
		return err
	}
	turn, err := edge1.Cross(edge2)
	if err != nil {
		return fmt.Errorf("%w at vertex %d", ErrCollinearVertices, last)
	}
	positive := turn.Dot(n) > 0

	for i := 1; i <= last; i++ {
		offset, err := p.vertices[i].Subtract(p.vertices[0])
		if err != nil {
			return fmt.Errorf("%w: vertex %d repeats vertex 0", ErrDuplicateVertex, i)
		}
		if !core.IsZero(offset.Dot(n)) {
			return fmt.Errorf("%w: vertex %d", ErrNotPlanar, i)
		}

		edge1 = edge2
		if edge2, err = p.edge(i - 1); err != nil {
			return err
		}
		turn, err := edge1.Cross(edge2)
		if err != nil {
			return fmt.Errorf("%w at vertex %d", ErrCollinearVertices, i-1)
		}
		if positive != (turn.Dot(n) > 0) {
			return fmt.Errorf("%w: vertex %d", ErrNotConvex, i-1)
		}
	}
	return nil
}

// edge returns the vector from vertex i to vertex i+1, wrapping around
func (p *Polygon) edge(i int) (core.Vector, error) {
	next := (i + 1) % len(p.vertices)
	e, err := p.vertices[next].Subtract(p.vertices[i])
	if err != nil {
		return core.Vector{}, fmt.Errorf("%w: vertices %d and %d", ErrDuplicateVertex, i, next)
	}
	return e, nil
}

func (p *Polygon) shape() {}

// Vertices returns a copy of the polygon's vertices
func (p *Polygon) Vertices() []core.Point {
	return append([]core.Point(nil), p.vertices...)
}

// Normal returns the polygon's plane normal
func (p *Polygon) Normal(core.Point) core.Vector { return p.plane.normal }

// SetEmission sets the emitted color and returns the polygon
func (p *Polygon) SetEmission(c core.Color) *Polygon {
	p.emission = c
	return p
}

// SetMaterial sets the material and returns the polygon
func (p *Polygon) SetMaterial(m material.Material) *Polygon {
	p.material = m
	return p
}

// intersect hits the supporting plane first, then requires the point to be
// strictly inside every edge. Points on edges or vertices do not count.
func (p *Polygon) intersect(ray core.Ray, maxDistance float64) []GeoPoint {
	t, ok := p.plane.hit(ray, maxDistance)
	if !ok {
		return nil
	}

	p0 := ray.Origin()
	dir := ray.Direction()

	first, err := p.vertices[0].Subtract(p0)
	if err != nil {
		return nil
	}
	prev := first
	sign := 0.0
	for i := 1; i <= len(p.vertices); i++ {
		next := first
		if i < len(p.vertices) {
			if next, err = p.vertices[i].Subtract(p0); err != nil {
				return nil
			}
		}

		side, err := prev.Cross(next)
		if err != nil {
			return nil
		}
		s := core.AlignZero(dir.Dot(core.Must(side.Normalize())))
		if s == 0 || s*sign < 0 {
			return nil
		}
		sign = s
		prev = next
	}

	return []GeoPoint{{Geometry: p, Point: ray.At(t)}}
}
