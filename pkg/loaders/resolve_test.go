package loaders

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func TestResolveScene(t *testing.T) {
	scenesDir := filepath.Join("..", "..", "scenes")

	tests := []struct {
		id       string
		wantName string
		wantErr  error
	}{
		{id: "default", wantName: "default"},
		{id: "yaml:mirror-room", wantName: "mirror-room"},
		{id: filepath.Join(scenesDir, "pyramid.yaml"), wantName: "pyramid"},
		{id: "nonexistent", wantErr: scene.ErrUnknownScene},
		{id: "yaml:nonexistent", wantErr: scene.ErrUnknownScene},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			s, err := ResolveScene(tt.id, scenesDir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, s.Name)
		})
	}
}

func TestResolveScene_Empty(t *testing.T) {
	_, err := ResolveScene("", "")
	assert.Error(t, err)
}

func TestResolveScene_MissingFile(t *testing.T) {
	_, err := ResolveScene(filepath.Join(t.TempDir(), "missing.yaml"), "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, scene.ErrUnknownScene)
}
