package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestNewPolygon(t *testing.T) {
	tests := []struct {
		name     string
		vertices []core.Point
		wantErr  error
	}{
		{
			name:     "convex quad",
			vertices: []core.Point{pt(0, 0, 1), pt(1, 0, 0), pt(0, 1, 0), pt(-1, 1, 1)},
		},
		{
			name:     "vertices out of order",
			vertices: []core.Point{pt(0, 0, 1), pt(0, 1, 0), pt(1, 0, 0), pt(-1, 1, 1)},
			wantErr:  ErrNotConvex,
		},
		{
			name:     "vertex off the plane",
			vertices: []core.Point{pt(0, 0, 1), pt(1, 0, 0), pt(0, 1, 0), pt(0, 2, 2)},
			wantErr:  ErrNotPlanar,
		},
		{
			name:     "concave quad",
			vertices: []core.Point{pt(0, 0, 1), pt(1, 0, 0), pt(0, 1, 0), pt(0.5, 0.25, 0.5)},
		},
		{
			name:     "vertex on an edge",
			vertices: []core.Point{pt(0, 0, 1), pt(1, 0, 0), pt(0, 1, 0), pt(0, 0.5, 0.5)},
		},
		{
			name:     "last vertex repeats the first",
			vertices: []core.Point{pt(0, 0, 1), pt(1, 0, 0), pt(0, 1, 0), pt(0, 0, 1)},
			wantErr:  ErrDuplicateVertex,
		},
		{
			name:     "consecutive duplicates",
			vertices: []core.Point{pt(0, 0, 1), pt(1, 0, 0), pt(1, 0, 0), pt(0, 1, 0)},
			wantErr:  ErrDegeneratePlane,
		},
		{
			name:     "too few vertices",
			vertices: []core.Point{pt(0, 0, 1), pt(1, 0, 0)},
			wantErr:  ErrTooFewVertices,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			poly, err := NewPolygon(tt.vertices...)
			switch {
			case tt.name == "convex quad":
				require.NoError(t, err)
				assert.Len(t, poly.Vertices(), 4)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.Error(t, err)
			}
		})
	}
}

func TestPolygon_Normal(t *testing.T) {
	vertices := []core.Point{pt(0, 0, 1), pt(1, 0, 0), pt(0, 1, 0), pt(-1, 1, 1)}
	poly := core.Must(NewPolygon(vertices...))

	n := poly.Normal(pt(0, 0, 1))
	assert.InDelta(t, 1, n.Length(), 1e-9)
	for i := range vertices {
		e := core.Must(vertices[(i+1)%len(vertices)].Subtract(vertices[i]))
		assert.InDelta(t, 0, n.Dot(e), 1e-9, "normal must be orthogonal to edge %d", i)
	}
}

func TestTriangle_Intersect(t *testing.T) {
	triangle := core.Must(NewTriangle(pt(0, 0, 1), pt(1, 0, 0), pt(0, 1, 0)))
	toward := func(from, to core.Point) core.Ray {
		return ray(from, core.Must(to.Subtract(from)))
	}

	tests := []struct {
		name string
		ray  core.Ray
		want []core.Point
	}{
		{"through the centroid", ray(pt(1, 1, 1), vec(-1, -1, -1)), []core.Point{pt(1.0/3, 1.0/3, 1.0/3)}},
		{"outside against an edge", toward(pt(2, 2, 0), pt(1, 1, -1)), nil},
		{"outside against a vertex", toward(pt(1, 1, 4), pt(-1, -1, 3)), nil},
		{"on an edge", toward(pt(1, 1, 1), pt(0.5, 0.5, 0)), nil},
		{"on a vertex", toward(pt(1, 1, 1), pt(1, 0, 0)), nil},
		{"on an edge's continuation", toward(pt(3, 0, 1), pt(2, -1, 0)), nil},
		{"parallel to the plane", ray(pt(1, 1, 1), vec(1, -1, 0)), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPoints(t, tt.want, IntersectAll(triangle, tt.ray))
		})
	}
}

func TestPolygon_Intersect(t *testing.T) {
	quad := core.Must(NewPolygon(pt(1, 0, 0), pt(0, 1, 0), pt(-2, 0, 0), pt(0, -1, 0)))

	hit := ray(pt(-0.5, -0.5, -1), vec(0.5, 0.5, 3))
	assertPoints(t, []core.Point{pt(-1.0/3, -1.0/3, 0)}, IntersectAll(quad, hit))
	assertPoints(t, nil, Intersect(quad, hit, 0.5))

	miss := ray(pt(2, 2, -1), vec(0, 0, 1))
	assertPoints(t, nil, Intersect(quad, miss, math.Inf(1)))
}
