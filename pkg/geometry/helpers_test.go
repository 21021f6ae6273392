package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func pt(x, y, z float64) core.Point { return core.NewPoint(x, y, z) }

func vec(x, y, z float64) core.Vector { return core.Must(core.NewVector(x, y, z)) }

func ray(origin core.Point, dir core.Vector) core.Ray { return core.NewRay(origin, dir) }

// assertPoints checks intersection points in order; a nil want expects a nil result
func assertPoints(t *testing.T, want []core.Point, got []GeoPoint) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got, "expected no intersection")
		return
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i].Point) || want[i].Distance(got[i].Point) < 1e-9,
			"point %d: want %v, got %v", i, want[i], got[i].Point)
	}
}
