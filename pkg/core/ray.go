package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// RayOffset is how far NewOffsetRay moves a ray's origin off the surface it starts on
const RayOffset = 0.1

// Ray represents a ray with an origin and a unit direction
type Ray struct {
	origin    Point
	direction Vector
}

// NewRay creates a new ray; the direction is normalized
func NewRay(origin Point, direction Vector) Ray {
	return Ray{origin: origin, direction: direction.unit()}
}

// NewOffsetRay creates a ray whose origin is nudged by RayOffset along normal,
// towards the side the direction points to. Used for shadow and secondary rays
// so they do not hit the surface they leave from.
func NewOffsetRay(origin Point, direction, normal Vector) Ray {
	nd := AlignZero(normal.Dot(direction))
	if nd != 0 {
		delta := normal.unit()
		if nd < 0 {
			delta = delta.Negate()
		}
		origin = PointFromVec(r3.Add(origin.xyz, r3.Scale(RayOffset, delta.xyz)))
	}
	return NewRay(origin, direction)
}

// Origin returns the ray's starting point
func (r Ray) Origin() Point { return r.origin }

// Direction returns the ray's unit direction
func (r Ray) Direction() Vector { return r.direction }

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point {
	if IsZero(t) {
		return r.origin
	}
	return PointFromVec(r3.Add(r.origin.xyz, r3.Scale(t, r.direction.xyz)))
}

// ClosestPoint returns the point nearest to the ray origin.
// Ties keep the first point encountered; an empty list reports false.
func (r Ray) ClosestPoint(points []Point) (Point, bool) {
	index := -1
	minDistance := math.Inf(1)
	for i, p := range points {
		if d := r.origin.DistanceSquared(p); d < minDistance {
			minDistance = d
			index = i
		}
	}
	if index < 0 {
		return Point{}, false
	}
	return points[index], true
}

// Equal reports whether two rays share origin and direction
func (r Ray) Equal(other Ray) bool {
	return r.origin.Equal(other.origin) && r.direction.Equal(other.direction)
}

func (r Ray) String() string {
	return fmt.Sprintf("origin: %v direction: %v", r.origin, r.direction)
}
