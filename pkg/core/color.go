package core

import (
	"fmt"
	"image/color"
	"math"
)

// Color is an RGB light intensity on the 0..255 scale. Components are not
// clamped until the color is converted for output.
type Color struct {
	R, G, B float64
}

// NewColor creates a new color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Black returns the zero color
func Black() Color {
	return Color{}
}

// Add returns the sum of c and all others
func (c Color) Add(others ...Color) Color {
	for _, o := range others {
		c.R += o.R
		c.G += o.G
		c.B += o.B
	}
	return c
}

// Scale returns the color multiplied by a scalar
func (c Color) Scale(f float64) Color {
	return Color{c.R * f, c.G * f, c.B * f}
}

// ScaleBy returns the color attenuated per channel by k
func (c Color) ScaleBy(k Factor) Color {
	return Color{c.R * k.R, c.G * k.G, c.B * k.B}
}

// Reduce returns the color divided by n
func (c Color) Reduce(n float64) Color {
	return Color{c.R / n, c.G / n, c.B / n}
}

// AlmostEqual reports whether two colors differ by less than one intensity step per channel
func (c Color) AlmostEqual(other Color) bool {
	return math.Abs(c.R-other.R) < 1 && math.Abs(c.G-other.G) < 1 && math.Abs(c.B-other.B) < 1
}

// RGBA converts the color to 8-bit RGBA with clamping
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: clampChannel(c.R),
		G: clampChannel(c.G),
		B: clampChannel(c.B),
		A: 255,
	}
}

func clampChannel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}
