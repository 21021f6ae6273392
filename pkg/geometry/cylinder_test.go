package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func newTestCylinder(t *testing.T) *Cylinder {
	t.Helper()
	c, err := NewCylinder(ray(pt(0, 0, 0), vec(0, 0, 1)), 1, 2)
	if err != nil {
		t.Fatalf("NewCylinder: %v", err)
	}
	return c
}

func TestNewCylinder_Invalid(t *testing.T) {
	axis := ray(pt(0, 0, 0), vec(0, 0, 1))

	_, err := NewCylinder(axis, 1, 0)
	assert.ErrorIs(t, err, ErrNonPositiveHeight)

	_, err = NewCylinder(axis, -1, 2)
	assert.ErrorIs(t, err, ErrNonPositiveRadius)
}

func TestCylinder_Normal(t *testing.T) {
	c := newTestCylinder(t)

	tests := []struct {
		name string
		p    core.Point
		want core.Vector
	}{
		{"bottom cap", pt(0.5, 0, 0), vec(0, 0, -1)},
		{"bottom cap center", pt(0, 0, 0), vec(0, 0, -1)},
		{"top cap", pt(0.2, 0.3, 2), vec(0, 0, 1)},
		{"side", pt(1, 0, 1), vec(1, 0, 0)},
		{"side near the top", pt(0, -1, 1.9), vec(0, -1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Normal(tt.p)
			assert.True(t, got.Equal(tt.want), "want %v, got %v", tt.want, got)
		})
	}
}

func TestCylinder_Intersect(t *testing.T) {
	c := newTestCylinder(t)
	dir := vec(1, 0, 2)

	tests := []struct {
		name        string
		ray         core.Ray
		maxDistance float64
		want        []core.Point
	}{
		{"along the axis through both caps", ray(pt(0, 0, -1), vec(0, 0, 1)), math.Inf(1), []core.Point{pt(0, 0, 0), pt(0, 0, 2)}},
		// Cap hits keep bottom, top order even when the top is nearer
		{"both caps from above", ray(pt(0, 0, 5), vec(0, 0, -1)), math.Inf(1), []core.Point{pt(0, 0, 0), pt(0, 0, 2)}},
		{"through the side", ray(pt(-2, 0, 1), vec(1, 0, 0)), math.Inf(1), []core.Point{pt(-1, 0, 1), pt(1, 0, 1)}},
		{"above the top cap", ray(pt(-2, 0, 3), vec(1, 0, 0)), math.Inf(1), nil},
		{"through a cap and the side", ray(pt(0, 0, -1), dir), math.Inf(1), []core.Point{pt(0.5, 0, 0), pt(1, 0, 1)}},
		{"misses", ray(pt(5, 5, 5), vec(1, 0, 0)), math.Inf(1), nil},
		{"far cap beyond max distance", ray(pt(0, 0, -1), vec(0, 0, 1)), 2, []core.Point{pt(0, 0, 0)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Intersect(c, tt.ray, tt.maxDistance)
			assertPoints(t, tt.want, got)
			assert.LessOrEqual(t, len(got), 2)
		})
	}
}
