package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector is a non-zero direction or displacement in 3D space.
// The zero value is not a valid Vector; construct one with NewVector or
// obtain one from another operation.
type Vector struct {
	xyz r3.Vec
}

// NewVector creates a vector, failing if all components are ~0
func NewVector(x, y, z float64) (Vector, error) {
	return vectorOf("new vector", r3.Vec{X: x, Y: y, Z: z})
}

// VectorFromVec wraps a raw r3 vector, failing if it is ~0
func VectorFromVec(v r3.Vec) (Vector, error) {
	return vectorOf("vector", v)
}

func vectorOf(op string, v r3.Vec) (Vector, error) {
	if IsZero(v.X) && IsZero(v.Y) && IsZero(v.Z) {
		return Vector{}, &InvalidVectorError{Op: op, X: v.X, Y: v.Y, Z: v.Z}
	}
	return Vector{xyz: v}, nil
}

// AxisX returns the unit X axis
func AxisX() Vector { return Vector{xyz: r3.Vec{X: 1}} }

// AxisY returns the unit Y axis
func AxisY() Vector { return Vector{xyz: r3.Vec{Y: 1}} }

// AxisZ returns the unit Z axis
func AxisZ() Vector { return Vector{xyz: r3.Vec{Z: 1}} }

func (v Vector) X() float64 { return v.xyz.X }
func (v Vector) Y() float64 { return v.xyz.Y }
func (v Vector) Z() float64 { return v.xyz.Z }

// Vec returns the raw components
func (v Vector) Vec() r3.Vec { return v.xyz }

// Add returns the sum of two vectors
func (v Vector) Add(other Vector) (Vector, error) {
	return vectorOf("add", r3.Add(v.xyz, other.xyz))
}

// Subtract returns the difference of two vectors
func (v Vector) Subtract(other Vector) (Vector, error) {
	return vectorOf("subtract", r3.Sub(v.xyz, other.xyz))
}

// Scale returns the vector multiplied by a scalar; scaling by ~0 fails
func (v Vector) Scale(scalar float64) (Vector, error) {
	return vectorOf("scale", r3.Scale(scalar, v.xyz))
}

// Negate returns the opposite vector
func (v Vector) Negate() Vector {
	return Vector{xyz: r3.Scale(-1, v.xyz)}
}

// Dot returns the dot product of two vectors
func (v Vector) Dot(other Vector) float64 {
	return r3.Dot(v.xyz, other.xyz)
}

// Cross returns the cross product; parallel vectors fail
func (v Vector) Cross(other Vector) (Vector, error) {
	return vectorOf("cross product", r3.Cross(v.xyz, other.xyz))
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector) LengthSquared() float64 {
	return r3.Norm2(v.xyz)
}

// Length returns the magnitude of the vector
func (v Vector) Length() float64 {
	return r3.Norm(v.xyz)
}

// Normalize returns a unit vector in the same direction
func (v Vector) Normalize() (Vector, error) {
	length := v.Length()
	if length == 0 {
		return Vector{}, &InvalidVectorError{Op: "normalize"}
	}
	return vectorOf("normalize", r3.Scale(1/length, v.xyz))
}

// unit normalizes a vector already known to be valid
func (v Vector) unit() Vector {
	length := v.Length()
	if length == 0 {
		return v
	}
	return Vector{xyz: r3.Scale(1/length, v.xyz)}
}

// Equal reports whether both vectors match within Epsilon per component
func (v Vector) Equal(other Vector) bool {
	return IsZero(v.xyz.X-other.xyz.X) && IsZero(v.xyz.Y-other.xyz.Y) && IsZero(v.xyz.Z-other.xyz.Z)
}

// Perpendicular returns a unit vector orthogonal to v
func (v Vector) Perpendicular() Vector {
	a, b, c := v.xyz.X, v.xyz.Y, v.xyz.Z
	p := r3.Vec{X: b - c, Y: c - a, Z: a - b}
	if a == b && b == c {
		p = r3.Vec{X: 0, Y: -a, Z: a}
	}
	return Vector{xyz: r3.Unit(p)}
}

// RotateX rotates the vector around the X axis by the given angle in degrees
func (v Vector) RotateX(degrees float64) Vector {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	x, y, z := v.xyz.X, v.xyz.Y, v.xyz.Z
	return Vector{xyz: r3.Vec{X: x, Y: y*cos - z*sin, Z: y*sin + z*cos}}
}

// RotateY rotates the vector around the Y axis by the given angle in degrees
func (v Vector) RotateY(degrees float64) Vector {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	x, y, z := v.xyz.X, v.xyz.Y, v.xyz.Z
	return Vector{xyz: r3.Vec{X: x*cos + z*sin, Y: y, Z: -x*sin + z*cos}}
}

// RotateZ rotates the vector around the Z axis by the given angle in degrees
func (v Vector) RotateZ(degrees float64) Vector {
	sin, cos := math.Sincos(degrees * math.Pi / 180)
	x, y, z := v.xyz.X, v.xyz.Y, v.xyz.Z
	return Vector{xyz: r3.Vec{X: x*cos - y*sin, Y: x*sin + y*cos, Z: z}}
}

func (v Vector) String() string {
	return fmt.Sprintf("->(%g, %g, %g)", v.xyz.X, v.xyz.Y, v.xyz.Z)
}
