package lights

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func vec(x, y, z float64) core.Vector { return core.Must(core.NewVector(x, y, z)) }

func TestAmbientLight(t *testing.T) {
	a := NewAmbientLight(core.NewColor(100, 200, 50), core.NewFactor(0.5, 0.25, 1))
	assert.Equal(t, core.NewColor(50, 50, 50), a.Intensity())
	assert.Equal(t, core.Black(), NoAmbient().Intensity())
}

func TestDirectionalLight(t *testing.T) {
	light := core.Must(NewDirectionalLight(core.NewColor(10, 20, 30), vec(0, 0, -5)))
	p := core.NewPoint(3, 4, 5)

	l, ok := light.ToLight(p)
	require.True(t, ok)
	assert.True(t, l.Equal(vec(0, 0, 1)))
	assert.Equal(t, core.NewColor(10, 20, 30), light.Intensity(p))
	assert.True(t, math.IsInf(light.Distance(p), 1))
}

func TestDirectionalLight_ZeroDirection(t *testing.T) {
	light, err := NewDirectionalLight(core.NewColor(10, 20, 30), core.Vector{})
	assert.ErrorIs(t, err, core.ErrZeroVector)
	assert.Nil(t, light)
}

func TestPointLight(t *testing.T) {
	light := NewPointLight(core.NewColor(100, 100, 100), core.NewPoint(0, 0, 10)).
		SetAttenuation(1, 0.5, 0.25)

	tests := []struct {
		name          string
		p             core.Point
		wantIntensity float64
		wantDirection core.Vector
		wantDistance  float64
	}{
		{"below", core.NewPoint(0, 0, 8), 100.0 / (1 + 1 + 1), vec(0, 0, 1), 2},
		{"off axis", core.NewPoint(4, 0, 10), 100.0 / (1 + 2 + 4), vec(-1, 0, 0), 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.wantIntensity, light.Intensity(tt.p).R, 1e-9)
			l, ok := light.ToLight(tt.p)
			require.True(t, ok)
			assert.True(t, l.Equal(tt.wantDirection), "got %v", l)
			assert.InDelta(t, tt.wantDistance, light.Distance(tt.p), 1e-9)
		})
	}

	_, ok := light.ToLight(core.NewPoint(0, 0, 10))
	assert.False(t, ok, "no direction from the light's own position")
}

func TestPointLight_Samples(t *testing.T) {
	p := core.NewPoint(0, 0, 0)

	t.Run("without radius", func(t *testing.T) {
		light := NewPointLight(core.NewColor(1, 1, 1), core.NewPoint(0, 10, 0))
		samples := light.Samples(p, 16)
		require.Len(t, samples, 1)
		assert.True(t, samples[0].Equal(vec(0, 1, 0)))
	})

	t.Run("disk", func(t *testing.T) {
		light := NewPointLight(core.NewColor(1, 1, 1), core.NewPoint(0, 10, 0)).SetRadius(2)
		samples := light.Samples(p, 32)
		require.Len(t, samples, 32)

		// Every sample must reach the disk: its slope stays within radius/distance
		maxSlope := 2.0 / 10.0
		for _, s := range samples {
			assert.InDelta(t, 1, s.Length(), 1e-9)
			assert.Greater(t, s.Y(), 0.0)
			slope := math.Hypot(s.X(), s.Z()) / s.Y()
			assert.LessOrEqual(t, slope, maxSlope+1e-9)
		}
	})

	var _ AreaSampler = (*PointLight)(nil)
	var _ AreaSampler = (*SpotLight)(nil)
}

func TestSpotLight(t *testing.T) {
	light := core.Must(NewSpotLight(core.NewColor(100, 100, 100), core.NewPoint(0, 0, 10), vec(0, 0, -1)))

	tests := []struct {
		name string
		p    core.Point
		want float64
	}{
		{"on the beam axis", core.NewPoint(0, 0, 0), 100},
		{"45 degrees off axis", core.NewPoint(10, 0, 0), 100 * math.Sqrt2 / 2},
		{"perpendicular to the beam", core.NewPoint(10, 0, 10), 0},
		{"behind the light", core.NewPoint(0, 0, 20), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, light.Intensity(tt.p).R, 1e-9)
		})
	}

	narrow := core.Must(NewSpotLight(core.NewColor(100, 100, 100), core.NewPoint(0, 0, 10), vec(0, 0, -1))).
		SetNarrowBeam(4)
	assert.InDelta(t, 100*0.25, narrow.Intensity(core.NewPoint(10, 0, 0)).R, 1e-9)

	var _ LightSource = light
}

func TestSpotLight_ZeroDirection(t *testing.T) {
	light, err := NewSpotLight(core.NewColor(100, 100, 100), core.NewPoint(0, 0, 10), core.Vector{})
	assert.ErrorIs(t, err, core.ErrZeroVector)
	assert.Nil(t, light)
}
