package scene

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/camera"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

func TestNew_Defaults(t *testing.T) {
	s := New("empty")

	assert.Equal(t, "empty", s.Name)
	assert.Equal(t, core.Black(), s.Background)
	assert.Equal(t, core.Black(), s.Ambient.Intensity())
	require.NotNil(t, s.Geometries)
	assert.Equal(t, 0, s.Geometries.Len())
	assert.Empty(t, s.Lights)
	assert.Equal(t, 0, s.GetPrimitiveCount())

	// Each scene owns its defaults
	other := New("other", WithAmbient(lights.NewAmbientLight(core.NewColor(10, 10, 10), core.One())))
	assert.Equal(t, core.Black(), s.Ambient.Intensity())
	assert.NotSame(t, s.Geometries, other.Geometries)
}

func TestNew_Options(t *testing.T) {
	sphere := core.Must(geometry.NewSphere(core.Origin(), 1))
	plane := core.Must(geometry.NewPlane(core.Origin(), vec(0, 1, 0)))
	light := core.Must(lights.NewDirectionalLight(core.NewColor(1, 1, 1), vec(0, -1, 0)))

	s := New("options",
		WithBackground(core.NewColor(1, 2, 3)),
		WithShapes(sphere, geometry.NewAggregate(plane, sphere)),
		WithLights(light),
		WithSampling(SamplingConfig{Width: 10, Height: 20, AntiAliasing: 3}),
	)

	assert.Equal(t, core.NewColor(1, 2, 3), s.Background)
	assert.Equal(t, 2, s.Geometries.Len())
	assert.Equal(t, 3, s.GetPrimitiveCount())
	assert.Len(t, s.Lights, 1)
	assert.Equal(t, 20, s.SamplingConfig.Height)
}

func TestBuiltinScenes(t *testing.T) {
	for _, info := range BuiltinScenes() {
		t.Run(info.ID, func(t *testing.T) {
			s, err := Builtin(info.ID)
			require.NoError(t, err)
			assert.Equal(t, info.ID, s.Name)
			assert.Positive(t, s.GetPrimitiveCount())
			assert.NotEmpty(t, s.Lights)

			_, err = camera.New(s.CameraConfig)
			assert.NoError(t, err, "built-in camera must be valid")

			// A ray down the camera axis must produce finite intersection data
			cam := core.Must(camera.New(s.CameraConfig))
			for _, gp := range geometry.IntersectAll(s.Geometries, cam.ConstructRay(3, 3, 1, 1)) {
				assert.False(t, math.IsNaN(gp.Point.X()))
			}
		})
	}

	_, err := Builtin("nope")
	assert.ErrorIs(t, err, ErrUnknownScene)
}
