package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/df07/go-whitted-raytracer/pkg/camera"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

const cameraYAML = `
camera:
  location: [0, 0, 100]
  to: [0, 0, -1]
  up: [0, 1, 0]
  width: 50
  height: 50
  distance: 100
`

func parse(t *testing.T, doc string) error {
	t.Helper()
	_, err := ParseScene([]byte(cameraYAML + doc))
	return err
}

func TestParseScene(t *testing.T) {
	doc := `
name: test
background: [1, 2, 3]
ambient: {color: [100, 100, 100], ka: [0.5, 0.25, 1]}
image: {width: 64, height: 32, antiAliasing: 3, maxDepth: 4}
lights:
  - {type: directional, intensity: [10, 10, 10], direction: [0, -1, 0]}
  - {type: point, intensity: [20, 20, 20], position: [0, 10, 0], attenuation: [1, 0.1, 0.01], radius: 2}
  - {type: spot, intensity: [30, 30, 30], position: [0, 10, 0], direction: [0, -1, 0], narrowBeam: 8}
shapes:
  - type: sphere
    center: [0, 0, -50]
    radius: 10
    emission: [0, 0, 255]
    material: {kd: 0.4, ks: [0.1, 0.2, 0.3], shininess: 20, kt: 0.5, kb: 0.8}
  - {type: plane, point: [0, -10, 0], normal: [0, 1, 0]}
  - {type: triangle, vertices: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]}
  - type: group
    shapes:
      - {type: tube, origin: [0, 0, 0], direction: [0, 1, 0], radius: 1}
      - {type: cylinder, origin: [0, 0, 0], direction: [0, 1, 0], radius: 1, height: 2}
`
	s, err := ParseScene([]byte(cameraYAML + doc))
	require.NoError(t, err)

	assert.Equal(t, "test", s.Name)
	assert.Equal(t, core.NewColor(1, 2, 3), s.Background)
	assert.Equal(t, core.NewColor(50, 25, 100), s.Ambient.Intensity())
	assert.Equal(t, 64, s.SamplingConfig.Width)
	assert.Equal(t, 32, s.SamplingConfig.Height)
	assert.Equal(t, 3, s.SamplingConfig.AntiAliasing)
	assert.Equal(t, 4, s.SamplingConfig.MaxDepth)

	require.Len(t, s.Lights, 3)
	assert.IsType(t, &lights.DirectionalLight{}, s.Lights[0])
	point := s.Lights[1].(*lights.PointLight)
	assert.Equal(t, 2.0, point.Radius())
	assert.IsType(t, &lights.SpotLight{}, s.Lights[2])

	shapes := s.Geometries.Shapes()
	require.Len(t, shapes, 4)
	assert.Equal(t, 5, s.GetPrimitiveCount())

	sphere := shapes[0].(*geometry.Sphere)
	assert.Equal(t, core.NewColor(0, 0, 255), sphere.Emission())
	mat := sphere.Material()
	assert.Equal(t, core.Uniform(0.4), mat.KD)
	assert.Equal(t, core.NewFactor(0.1, 0.2, 0.3), mat.KS)
	assert.Equal(t, 20, mat.Shininess)
	assert.Equal(t, 1.0, mat.KG)
	assert.Equal(t, 0.8, mat.KB)
	assert.True(t, mat.Blurry())

	cam, err := camera.New(s.CameraConfig)
	require.NoError(t, err)
	assert.True(t, cam.Location().Equal(core.NewPoint(0, 0, 100)))
}

func TestParseScene_CameraTarget(t *testing.T) {
	doc := `
camera:
  location: [0, 0, 10]
  target: [0, 0, 0]
  up: [0, 1, 1]
  width: 1
  height: 1
  distance: 1
`
	s, err := ParseScene([]byte(doc))
	require.NoError(t, err)
	assert.True(t, s.CameraConfig.To.Equal(core.Must(core.NewVector(0, 0, -1))))
	assert.True(t, s.CameraConfig.Up.Equal(core.Must(core.NewVector(0, 1, 0))))
	assert.Equal(t, 500, s.SamplingConfig.Width, "defaults are kept without an image section")
}

func TestParseScene_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"unknown field", "shapes: [{type: sphere, center: [0, 0, 0], radius: 1, colour: red}]", "colour"},
		{"unknown shape", "shapes: [{type: torus}]", "type"},
		{"missing radius", "shapes: [{type: sphere, center: [0, 0, 0]}]", "radius"},
		{"short center", "shapes: [{type: sphere, center: [0, 0], radius: 1}]", "center"},
		{"two coefficients", "shapes: [{type: plane, point: [0, 0, 0], normal: [0, 0, 1], material: {kd: [1, 2]}}]", "kd"},
		{"glossiness range", "shapes: [{type: plane, point: [0, 0, 0], normal: [0, 0, 1], material: {kg: 2}}]", "kg"},
		{"zero normal", "shapes: [{type: plane, point: [0, 0, 0], normal: [0, 0, 0]}]", "direction"},
		{"empty group", "shapes: [{type: group}]", "shapes"},
		{"spot without direction", "lights: [{type: spot, intensity: [1, 1, 1], position: [0, 0, 0]}]", "direction"},
		{"bad background", "background: [1, 2]", "background"},
		{"negative image", "image: {width: -1}", "width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parse(t, tt.doc)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseScene_CameraErrors(t *testing.T) {
	_, err := ParseScene([]byte("shapes: []"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "camera:"))

	notOrthogonal := strings.Replace(cameraYAML, "up: [0, 1, 0]", "up: [0, 1, -1]", 1)
	_, err = ParseScene([]byte(notOrthogonal))
	require.ErrorIs(t, err, camera.ErrNotOrthogonal)
}

func TestParseScene_CollectsAllErrors(t *testing.T) {
	doc := `
lights:
  - {type: laser, intensity: [1, 1, 1]}
shapes:
  - {type: sphere, center: [0, 0, 0], radius: -1}
  - {type: sphere, center: [0, 0, 0], radius: 1}
  - type: group
    shapes:
      - {type: polygon, vertices: [[0, 0, 0], [1, 0, 0], [1, 1, 0], [0, 1, 1]]}
`
	err := parse(t, doc)
	require.Error(t, err)

	errs := multierr.Errors(err)
	require.Len(t, errs, 3)
	assert.Contains(t, errs[0].Error(), "lights[0]")
	assert.Contains(t, errs[1].Error(), "shapes[0]")
	assert.Contains(t, errs[2].Error(), "shapes[2].shapes[0]")
	assert.True(t, errors.Is(err, geometry.ErrNotPlanar))
}

func TestLoadScene_NameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "little-box.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cameraYAML), 0o644))

	s, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, "little-box", s.Name)

	_, err = LoadScene(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadScene_SceneFiles(t *testing.T) {
	files, err := filepath.Glob(filepath.Join("..", "..", "scenes", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			s, err := LoadScene(file)
			require.NoError(t, err)
			assert.NotZero(t, s.GetPrimitiveCount())

			_, err = camera.New(s.CameraConfig)
			assert.NoError(t, err)
		})
	}
}

func TestLoadScene_MeshRelativeToFile(t *testing.T) {
	dir := t.TempDir()
	ply := "ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
		"element face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 2\n"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "meshes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "meshes", "tri.ply"), []byte(ply), 0o644))

	doc := cameraYAML + "shapes: [{type: mesh, file: meshes/tri.ply, emission: [5, 5, 5]}]\n"
	path := filepath.Join(dir, "mesh.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	s, err := LoadScene(path)
	require.NoError(t, err)
	assert.Equal(t, 1, s.GetPrimitiveCount())

	_, err = ParseScene([]byte(doc))
	assert.Error(t, err, "mesh paths in a bare document resolve against the working directory")
}
