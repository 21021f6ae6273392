package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"mirrors scene", "mirrors", false},
		{"shadow scene", "shadow", false},
		{"cylinders scene", "cylinders", false},

		// Scene files
		{"scene file by ID", "yaml:mirror-room", false},
		{"scene file by path", "scenes/glass-cylinders.yaml", false},
		{"mesh scene", "yaml:pyramid", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"unknown scene file ID", "yaml:nonexistent", true},
		{"invalid path", "scenes/nonexistent.yaml", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, "scenes")

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, s)
			assert.Positive(t, s.CameraConfig.Width)
			assert.Positive(t, s.SamplingConfig.Width)
			assert.Positive(t, s.SamplingConfig.Height)
		})
	}
}

func TestCreateScene_UnknownIsErrUnknownScene(t *testing.T) {
	_, err := createScene("nonexistent", "scenes")
	assert.ErrorIs(t, err, scene.ErrUnknownScene)
}

func TestCreateOutputDir(t *testing.T) {
	tests := []struct {
		sceneType string
		expected  string
	}{
		{"default", filepath.Join("output", "default")},
		{"yaml:mirror-room", filepath.Join("output", "mirror-room")},
		{"scenes/glass-cylinders.yaml", filepath.Join("output", "glass-cylinders")},
		{"scenes/subdir/my-scene.yml", filepath.Join("output", "my-scene")},
	}

	for _, tt := range tests {
		t.Run(tt.sceneType, func(t *testing.T) {
			assert.Equal(t, tt.expected, createOutputDir("output", tt.sceneType))
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	base := scene.SamplingConfig{Width: 500, Height: 400, AntiAliasing: 1, MaxDepth: 5}

	assert.Equal(t, base, applyOverrides(base, &options{}))
	assert.Equal(t,
		scene.SamplingConfig{Width: 64, Height: 400, AntiAliasing: 3, MaxDepth: 2},
		applyOverrides(base, &options{width: 64, antiAliasing: 3, maxDepth: 2}))
}

func TestRun_WritesPNG(t *testing.T) {
	out := t.TempDir()
	opts := &options{sceneName: "default", outputDir: out, width: 12, height: 8, workers: 2}

	require.NoError(t, run(context.Background(), opts))

	files, err := filepath.Glob(filepath.Join(out, "default", "render_*.png"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	info, err := os.Stat(files[0])
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestRootCommand_List(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetArgs([]string{"--list", "--scenes-dir", "scenes"})
	assert.NoError(t, cmd.Execute())
}
