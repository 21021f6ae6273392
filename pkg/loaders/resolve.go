package loaders

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ResolveScene creates the scene named by id: a built-in scene ID, a
// yaml:<name> ID discovered in scenesDir, or a path to a YAML scene file
func ResolveScene(id, scenesDir string) (*scene.Scene, error) {
	if id == "" {
		return nil, errors.New("no scene given")
	}

	s, err := scene.Builtin(id)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, scene.ErrUnknownScene) {
		return nil, err
	}

	if fileName, ok := strings.CutPrefix(id, "yaml:"); ok {
		infos, err := scene.ListYAMLScenes(scenesDir)
		if err != nil {
			return nil, err
		}
		for _, info := range infos {
			if info.ID == id {
				return LoadScene(info.FilePath)
			}
		}
		return nil, fmt.Errorf("%w: no scene file %q", scene.ErrUnknownScene, fileName)
	}

	if ext := filepath.Ext(id); ext == ".yaml" || ext == ".yml" {
		return LoadScene(id)
	}
	return nil, err
}
