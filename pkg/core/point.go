package core

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a location in 3D space
type Point struct {
	xyz r3.Vec
}

// NewPoint creates a new point
func NewPoint(x, y, z float64) Point {
	return Point{xyz: r3.Vec{X: x, Y: y, Z: z}}
}

// PointFromVec wraps raw r3 components as a point
func PointFromVec(v r3.Vec) Point {
	return Point{xyz: v}
}

// Origin returns (0, 0, 0)
func Origin() Point {
	return Point{}
}

func (p Point) X() float64 { return p.xyz.X }
func (p Point) Y() float64 { return p.xyz.Y }
func (p Point) Z() float64 { return p.xyz.Z }

// Vec returns the raw components
func (p Point) Vec() r3.Vec { return p.xyz }

// Add returns the point displaced by v
func (p Point) Add(v Vector) Point {
	return Point{xyz: r3.Add(p.xyz, v.xyz)}
}

// Subtract returns the vector from other to p; equal points fail
func (p Point) Subtract(other Point) (Vector, error) {
	return vectorOf("point subtract", r3.Sub(p.xyz, other.xyz))
}

// DistanceSquared returns the squared distance between two points
func (p Point) DistanceSquared(other Point) float64 {
	return r3.Norm2(r3.Sub(p.xyz, other.xyz))
}

// Distance returns the distance between two points
func (p Point) Distance(other Point) float64 {
	return r3.Norm(r3.Sub(p.xyz, other.xyz))
}

// Equal reports whether both points match within Epsilon per component
func (p Point) Equal(other Point) bool {
	return IsZero(p.xyz.X-other.xyz.X) && IsZero(p.xyz.Y-other.xyz.Y) && IsZero(p.xyz.Z-other.xyz.Z)
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.xyz.X, p.xyz.Y, p.xyz.Z)
}
