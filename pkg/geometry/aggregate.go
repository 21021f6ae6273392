package geometry

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Aggregate is an ordered group of shapes, possibly other aggregates,
// intersected as one
type Aggregate struct {
	shapes []Shape
}

// NewAggregate creates an aggregate holding the given shapes
func NewAggregate(shapes ...Shape) *Aggregate {
	a := &Aggregate{}
	return a.Add(shapes...)
}

func (a *Aggregate) shape() {}

// Add appends shapes and returns the aggregate
func (a *Aggregate) Add(shapes ...Shape) *Aggregate {
	for _, s := range shapes {
		if s != nil {
			a.shapes = append(a.shapes, s)
		}
	}
	return a
}

// Len returns the number of direct children
func (a *Aggregate) Len() int {
	return len(a.shapes)
}

// Shapes returns a copy of the direct children
func (a *Aggregate) Shapes() []Shape {
	return append([]Shape(nil), a.shapes...)
}

// intersect unions the children's results in child order. The result is not
// sorted by distance and is nil when no child is hit.
func (a *Aggregate) intersect(ray core.Ray, maxDistance float64) []GeoPoint {
	var result []GeoPoint
	for _, s := range a.shapes {
		if points := Intersect(s, ray, maxDistance); points != nil {
			result = append(result, points...)
		}
	}
	return result
}
