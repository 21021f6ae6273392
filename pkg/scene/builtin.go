package scene

import (
	"errors"
	"fmt"
)

// ErrUnknownScene is returned for a scene ID that is not built in
var ErrUnknownScene = errors.New("unknown scene")

const builtinGroup = "Built-in Scenes"

type builtin struct {
	info  SceneInfo
	build func() *Scene
}

var builtins = []builtin{
	{
		info: SceneInfo{
			ID:          "default",
			Name:        "Default Scene",
			Description: "Transparent blue sphere around a red sphere under a spot light",
		},
		build: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "mirrors",
			Name:        "Mirrors",
			Description: "Nested spheres reflected in a pair of mirror triangles",
		},
		build: NewMirrorScene,
	},
	{
		info: SceneInfo{
			ID:          "shadow",
			Name:        "Transparent Shadow",
			Description: "Triangles partially shadowed by a transparent sphere",
		},
		build: NewShadowScene,
	},
	{
		info: SceneInfo{
			ID:          "cylinders",
			Name:        "Cylinders",
			Description: "Tubes, capped cylinders and a glass sphere with soft shadows",
		},
		build: NewCylinderScene,
	},
}

// Builtin creates the built-in scene with the given ID
func Builtin(id string) (*Scene, error) {
	for _, b := range builtins {
		if b.info.ID == id {
			return b.build(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, id)
}

// BuiltinScenes describes the built-in scenes
func BuiltinScenes() []SceneInfo {
	infos := make([]SceneInfo, len(builtins))
	for i, b := range builtins {
		info := b.info
		info.DisplayName = info.Name
		info.Group = builtinGroup
		info.Type = "builtin"
		infos[i] = info
	}
	return infos
}
