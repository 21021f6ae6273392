package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestTube_Normal(t *testing.T) {
	tube := core.Must(NewTube(ray(pt(0, 0, 0), vec(0, 0, 1)), 1))

	tests := []struct {
		p    core.Point
		want core.Vector
	}{
		{pt(1, 0, 5), vec(1, 0, 0)},
		{pt(0, -1, -3), vec(0, -1, 0)},
		{pt(0, 1, 0), vec(0, 1, 0)},
	}
	for _, tt := range tests {
		got := tube.Normal(tt.p)
		assert.True(t, got.Equal(tt.want), "normal at %v: want %v, got %v", tt.p, tt.want, got)
		assert.InDelta(t, 0, got.Dot(vec(0, 0, 1)), 1e-9)
	}
}

func TestTube_Intersect(t *testing.T) {
	tube := core.Must(NewTube(ray(pt(0, 0, 0), vec(0, 0, 1)), 1))

	tests := []struct {
		name        string
		ray         core.Ray
		maxDistance float64
		want        []core.Point
	}{
		{"crosses the axis", ray(pt(-2, 0, 0.5), vec(1, 0, 0)), math.Inf(1), []core.Point{pt(-1, 0, 0.5), pt(1, 0, 0.5)}},
		{"oblique", ray(pt(-2, 0, 0), vec(1, 0, 1)), math.Inf(1), []core.Point{pt(-1, 0, 1), pt(1, 0, 3)}},
		{"starts inside", ray(pt(0, 0, 5), vec(1, 0, 0)), math.Inf(1), []core.Point{pt(1, 0, 5)}},
		{"misses", ray(pt(-2, 2, 0), vec(1, 0, 0)), math.Inf(1), nil},
		{"tangent", ray(pt(-2, 1, 0), vec(1, 0, 0)), math.Inf(1), nil},
		{"pointing away", ray(pt(-2, 0, 0), vec(-1, 0, 0)), math.Inf(1), nil},
		{"parallel inside", ray(pt(0.5, 0, 0), vec(0, 0, 1)), math.Inf(1), nil},
		{"parallel along the surface", ray(pt(1, 0, 0), vec(0, 0, 1)), math.Inf(1), nil},
		{"second point beyond max distance", ray(pt(-2, 0, 0.5), vec(1, 0, 0)), 2, []core.Point{pt(-1, 0, 0.5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPoints(t, tt.want, Intersect(tube, tt.ray, tt.maxDistance))
		})
	}
}

func TestNewTube_InvalidRadius(t *testing.T) {
	_, err := NewTube(ray(pt(0, 0, 0), vec(0, 0, 1)), 0)
	assert.ErrorIs(t, err, ErrNonPositiveRadius)
}
