package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape is anything Intersect can be called on. The set of shapes is closed:
// *Plane, *Sphere, *Polygon, *Tube, *Cylinder and *Aggregate.
type Shape interface {
	shape()
}

// Geometry is a concrete surface that can be shaded
type Geometry interface {
	Shape
	Normal(p core.Point) core.Vector
	Emission() core.Color
	Material() material.Material
}

// GeoPoint pairs an intersection point with the geometry that produced it
type GeoPoint struct {
	Geometry Geometry
	Point    core.Point
}

// Equal compares geometry identity and point location
func (g GeoPoint) Equal(other GeoPoint) bool {
	return g.Geometry == other.Geometry && g.Point.Equal(other.Point)
}

func (g GeoPoint) String() string {
	return fmt.Sprintf("%T@%v", g.Geometry, g.Point)
}

// Intersect finds all points where the ray meets the shape, no farther than
// maxDistance from the ray origin. It returns nil when there are none.
func Intersect(s Shape, ray core.Ray, maxDistance float64) []GeoPoint {
	switch s := s.(type) {
	case *Plane:
		return s.intersect(ray, maxDistance)
	case *Sphere:
		return s.intersect(ray, maxDistance)
	case *Polygon:
		return s.intersect(ray, maxDistance)
	case *Tube:
		return s.intersect(ray, maxDistance)
	case *Cylinder:
		return s.intersect(ray, maxDistance)
	case *Aggregate:
		return s.intersect(ray, maxDistance)
	}
	return nil
}

// IntersectAll is Intersect without a distance bound
func IntersectAll(s Shape, ray core.Ray) []GeoPoint {
	return Intersect(s, ray, math.Inf(1))
}

// FindIntersections returns just the intersection points, or nil
func FindIntersections(s Shape, ray core.Ray) []core.Point {
	geoPoints := IntersectAll(s, ray)
	if geoPoints == nil {
		return nil
	}
	points := make([]core.Point, len(geoPoints))
	for i, gp := range geoPoints {
		points[i] = gp.Point
	}
	return points
}

// ClosestGeoPoint returns the point nearest to the ray origin.
// Ties keep the first point encountered; an empty list reports false.
func ClosestGeoPoint(ray core.Ray, points []GeoPoint) (GeoPoint, bool) {
	index := -1
	minDistance := math.Inf(1)
	for i, gp := range points {
		if d := ray.Origin().DistanceSquared(gp.Point); d < minDistance {
			minDistance = d
			index = i
		}
	}
	if index < 0 {
		return GeoPoint{}, false
	}
	return points[index], true
}

// surface carries the shading data shared by every geometry
type surface struct {
	emission core.Color
	material material.Material
}

func newSurface() surface {
	return surface{emission: core.Black(), material: material.New()}
}

func (s *surface) Emission() core.Color { return s.emission }

func (s *surface) Material() material.Material { return s.material }

// within reports whether parameter t lies in (0, maxDistance]
func within(t, maxDistance float64) bool {
	return t > 0 && core.AlignZero(t-maxDistance) <= 0
}
