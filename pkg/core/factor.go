package core

import "fmt"

// Factor is a per-channel attenuation coefficient, normally within [0,1]³
type Factor struct {
	R, G, B float64
}

// NewFactor creates a factor with distinct channels
func NewFactor(r, g, b float64) Factor {
	return Factor{R: r, G: g, B: b}
}

// Uniform creates a factor with the same value on every channel
func Uniform(k float64) Factor {
	return Factor{R: k, G: k, B: k}
}

// One returns the identity factor
func One() Factor {
	return Uniform(1)
}

// Add returns the channel-wise sum
func (f Factor) Add(other Factor) Factor {
	return Factor{f.R + other.R, f.G + other.G, f.B + other.B}
}

// Product returns the channel-wise product
func (f Factor) Product(other Factor) Factor {
	return Factor{f.R * other.R, f.G * other.G, f.B * other.B}
}

// Scale multiplies every channel by s
func (f Factor) Scale(s float64) Factor {
	return Factor{f.R * s, f.G * s, f.B * s}
}

// LowerThan reports whether every channel is below k
func (f Factor) LowerThan(k float64) bool {
	return f.R < k && f.G < k && f.B < k
}

// IsZero reports whether every channel is ~0
func (f Factor) IsZero() bool {
	return IsZero(f.R) && IsZero(f.G) && IsZero(f.B)
}

// Equal reports whether both factors match within Epsilon per channel
func (f Factor) Equal(other Factor) bool {
	return IsZero(f.R-other.R) && IsZero(f.G-other.G) && IsZero(f.B-other.B)
}

func (f Factor) String() string {
	return fmt.Sprintf("[%g, %g, %g]", f.R, f.G, f.B)
}
