package core

import "math"

// Epsilon is the tolerance used by every approximate comparison in the renderer
const Epsilon = 1e-10

// IsZero reports whether x is within Epsilon of zero
func IsZero(x float64) bool {
	return math.Abs(x) < Epsilon
}

// AlignZero snaps values within Epsilon of zero to exactly zero
func AlignZero(x float64) float64 {
	if IsZero(x) {
		return 0
	}
	return x
}

// Must unwraps a (value, error) pair and panics on error.
// Intended for literals in scenes and tests whose validity is known up front.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
