package loaders

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"go.uber.org/multierr"
	"sigs.k8s.io/yaml"

	"github.com/df07/go-whitted-raytracer/pkg/camera"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// SceneFile is the YAML scene description
type SceneFile struct {
	Name       string       `json:"name"`
	Background triple       `json:"background"`
	Ambient    *AmbientSpec `json:"ambient"`
	Camera     CameraSpec   `json:"camera"`
	Image      *ImageSpec   `json:"image"`
	Lights     []LightSpec  `json:"lights"`
	Shapes     []ShapeSpec  `json:"shapes"`
}

// AmbientSpec describes the ambient light
type AmbientSpec struct {
	Color triple     `json:"color"`
	KA    factorSpec `json:"ka"`
}

// CameraSpec describes the camera. Either to and up or a target point may be given;
// a target takes precedence and up only needs to be roughly upward.
type CameraSpec struct {
	Location triple  `json:"location"`
	To       triple  `json:"to"`
	Up       triple  `json:"up"`
	Target   triple  `json:"target"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Distance float64 `json:"distance"`
}

// ImageSpec holds the suggested image settings
type ImageSpec struct {
	Width        int `json:"width"`
	Height       int `json:"height"`
	AntiAliasing int `json:"antiAliasing"`
	MaxDepth     int `json:"maxDepth"`
}

// LightSpec describes a directional, point or spot light
type LightSpec struct {
	Type        string  `json:"type"`
	Intensity   triple  `json:"intensity"`
	Position    triple  `json:"position"`
	Direction   triple  `json:"direction"`
	Attenuation triple  `json:"attenuation"` // kC, kL, kQ
	Radius      float64 `json:"radius"`
	NarrowBeam  float64 `json:"narrowBeam"`
}

// ShapeSpec describes one shape. Groups nest other shapes.
type ShapeSpec struct {
	Type      string        `json:"type"`
	Center    triple        `json:"center"`
	Radius    float64       `json:"radius"`
	Point     triple        `json:"point"`
	Normal    triple        `json:"normal"`
	Vertices  []triple      `json:"vertices"`
	Origin    triple        `json:"origin"`
	Direction triple        `json:"direction"`
	Height    float64       `json:"height"`
	File      string        `json:"file"` // PLY mesh, relative to the scene file
	Emission  triple        `json:"emission"`
	Material  *MaterialSpec `json:"material"`
	Shapes    []ShapeSpec   `json:"shapes"`
}

// MaterialSpec holds the shading coefficients of a shape
type MaterialSpec struct {
	KD        factorSpec `json:"kd"`
	KS        factorSpec `json:"ks"`
	KR        factorSpec `json:"kr"`
	KT        factorSpec `json:"kt"`
	Shininess int        `json:"shininess"`
	KG        *float64   `json:"kg"`
	KB        *float64   `json:"kb"`
}

// triple is an [x, y, z] or [r, g, b] list
type triple []float64

// factorSpec is a single coefficient for all channels or one per channel
type factorSpec []float64

func (f *factorSpec) UnmarshalJSON(data []byte) error {
	var k float64
	if err := json.Unmarshal(data, &k); err == nil {
		*f = factorSpec{k}
		return nil
	}
	var ks []float64
	if err := json.Unmarshal(data, &ks); err != nil {
		return fmt.Errorf("coefficient must be a number or a list of three numbers: %w", err)
	}
	*f = ks
	return nil
}

var (
	lightTypes = []interface{}{"directional", "point", "spot"}
	shapeTypes = []interface{}{"sphere", "plane", "triangle", "polygon", "tube", "cylinder", "mesh", "group"}
)

var isTriple = validation.Length(3, 3)

var isFactor = validation.By(func(value interface{}) error {
	f, _ := value.(factorSpec)
	if len(f) != 0 && len(f) != 1 && len(f) != 3 {
		return fmt.Errorf("must have one or three values, got %d", len(f))
	}
	return nil
})

func (s AmbientSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Color, validation.Required, isTriple),
		validation.Field(&s.KA, validation.Required, isFactor),
	)
}

func (s CameraSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Location, validation.Required, isTriple),
		validation.Field(&s.To, validation.When(len(s.Target) == 0, validation.Required), isTriple),
		validation.Field(&s.Up, validation.Required, isTriple),
		validation.Field(&s.Target, isTriple),
		validation.Field(&s.Width, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&s.Height, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&s.Distance, validation.Required, validation.Min(0.0).Exclusive()),
	)
}

func (s ImageSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Width, validation.Min(0)),
		validation.Field(&s.Height, validation.Min(0)),
		validation.Field(&s.AntiAliasing, validation.Min(0)),
		validation.Field(&s.MaxDepth, validation.Min(0)),
	)
}

func (s LightSpec) Validate() error {
	positioned := s.Type == "point" || s.Type == "spot"
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type, validation.Required, validation.In(lightTypes...)),
		validation.Field(&s.Intensity, validation.Required, isTriple),
		validation.Field(&s.Position, validation.When(positioned, validation.Required), isTriple),
		validation.Field(&s.Direction, validation.When(s.Type != "point", validation.Required), isTriple),
		validation.Field(&s.Attenuation, isTriple),
		validation.Field(&s.Radius, validation.Min(0.0)),
		validation.Field(&s.NarrowBeam, validation.Min(0.0)),
	)
}

func (s ShapeSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type, validation.Required, validation.In(shapeTypes...)),
		validation.Field(&s.Center, validation.When(s.Type == "sphere", validation.Required), isTriple),
		validation.Field(&s.Radius, validation.When(s.Type == "sphere" || s.Type == "tube" || s.Type == "cylinder",
			validation.Required, validation.Min(0.0).Exclusive())),
		validation.Field(&s.Point, validation.When(s.Type == "plane", validation.Required), isTriple),
		validation.Field(&s.Normal, validation.When(s.Type == "plane", validation.Required), isTriple),
		validation.Field(&s.Vertices,
			validation.When(s.Type == "triangle", validation.Required, validation.Length(3, 3)),
			validation.When(s.Type == "polygon", validation.Required, validation.Length(3, 0)),
			validation.Each(isTriple)),
		validation.Field(&s.Origin, validation.When(s.Type == "tube" || s.Type == "cylinder", validation.Required), isTriple),
		validation.Field(&s.Direction, validation.When(s.Type == "tube" || s.Type == "cylinder", validation.Required), isTriple),
		validation.Field(&s.Height, validation.When(s.Type == "cylinder", validation.Required, validation.Min(0.0).Exclusive())),
		validation.Field(&s.File, validation.When(s.Type == "mesh", validation.Required)),
		validation.Field(&s.Emission, isTriple),
		validation.Field(&s.Material),
		// Children are validated as they are built
		validation.Field(&s.Shapes, validation.When(s.Type == "group", validation.Required), validation.Skip),
	)
}

func (s MaterialSpec) Validate() error {
	unit := func(v *float64) error {
		if v != nil && (*v < 0 || *v > 1) {
			return fmt.Errorf("must be between 0 and 1, got %g", *v)
		}
		return nil
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.KD, isFactor),
		validation.Field(&s.KS, isFactor),
		validation.Field(&s.KR, isFactor),
		validation.Field(&s.KT, isFactor),
		validation.Field(&s.Shininess, validation.Min(0)),
		validation.Field(&s.KG, validation.By(func(interface{}) error { return unit(s.KG) })),
		validation.Field(&s.KB, validation.By(func(interface{}) error { return unit(s.KB) })),
	)
}

// LoadScene reads a YAML scene file. A file without a name is named after the file.
func LoadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	s, err := parseScene(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		base := filepath.Base(path)
		s.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return s, nil
}

// ParseScene builds a scene from a YAML document. Every invalid light and shape
// is reported, not just the first. Mesh files are resolved against the working directory.
func ParseScene(data []byte) (*scene.Scene, error) {
	return parseScene(data, ".")
}

func parseScene(data []byte, baseDir string) (*scene.Scene, error) {
	var file SceneFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}

	if err := file.Camera.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	cameraConfig, err := file.Camera.config()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	opts := []scene.Option{scene.WithCamera(cameraConfig)}
	var errs error

	if len(file.Background) > 0 {
		if err := validation.Validate(file.Background, isTriple); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("background: %w", err))
		} else {
			opts = append(opts, scene.WithBackground(toColor(file.Background)))
		}
	}

	if file.Ambient != nil {
		if err := file.Ambient.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("ambient: %w", err))
		} else {
			opts = append(opts, scene.WithAmbient(lights.NewAmbientLight(toColor(file.Ambient.Color), file.Ambient.KA.factor())))
		}
	}

	if file.Image != nil {
		if err := file.Image.Validate(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("image: %w", err))
		} else {
			opts = append(opts, withImage(*file.Image))
		}
	}

	var sceneLights []lights.LightSource
	for i, spec := range file.Lights {
		light, err := spec.build()
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("lights[%d]: %w", i, err))
			continue
		}
		sceneLights = append(sceneLights, light)
	}

	shapes, err := buildShapes("shapes", file.Shapes, baseDir)
	errs = multierr.Append(errs, err)

	if errs != nil {
		return nil, errs
	}

	opts = append(opts, scene.WithLights(sceneLights...), scene.WithShapes(shapes...))
	return scene.New(file.Name, opts...), nil
}

// withImage overrides only the image settings that are set
func withImage(spec ImageSpec) scene.Option {
	return func(s *scene.Scene) {
		if spec.Width > 0 {
			s.SamplingConfig.Width = spec.Width
		}
		if spec.Height > 0 {
			s.SamplingConfig.Height = spec.Height
		}
		if spec.AntiAliasing > 0 {
			s.SamplingConfig.AntiAliasing = spec.AntiAliasing
		}
		s.SamplingConfig.MaxDepth = spec.MaxDepth
	}
}

func (s CameraSpec) config() (camera.Config, error) {
	var cfg camera.Config
	if len(s.Target) > 0 {
		var err error
		if cfg, err = camera.LookAt(toPoint(s.Location), toPoint(s.Target), toVector(s.Up)); err != nil {
			return camera.Config{}, err
		}
	} else {
		cfg = camera.Config{Location: toPoint(s.Location), To: toVector(s.To), Up: toVector(s.Up)}
	}
	cfg.Width, cfg.Height, cfg.Distance = s.Width, s.Height, s.Distance

	if err := cfg.Validate(); err != nil {
		return camera.Config{}, err
	}
	return cfg, nil
}

func (s LightSpec) build() (lights.LightSource, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	intensity := toColor(s.Intensity)
	switch s.Type {
	case "directional":
		direction, err := toDirection(s.Direction)
		if err != nil {
			return nil, err
		}
		return lights.NewDirectionalLight(intensity, direction)

	case "point":
		light := lights.NewPointLight(intensity, toPoint(s.Position)).SetRadius(s.Radius)
		if len(s.Attenuation) == 3 {
			light.SetAttenuation(s.Attenuation[0], s.Attenuation[1], s.Attenuation[2])
		}
		return light, nil

	default:
		direction, err := toDirection(s.Direction)
		if err != nil {
			return nil, err
		}
		light, err := lights.NewSpotLight(intensity, toPoint(s.Position), direction)
		if err != nil {
			return nil, err
		}
		light.SetRadius(s.Radius)
		if len(s.Attenuation) == 3 {
			light.SetAttenuation(s.Attenuation[0], s.Attenuation[1], s.Attenuation[2])
		}
		if s.NarrowBeam > 0 {
			light.SetNarrowBeam(s.NarrowBeam)
		}
		return light, nil
	}
}

// buildShapes builds every shape in specs, collecting all errors under the given path
func buildShapes(path string, specs []ShapeSpec, baseDir string) ([]geometry.Shape, error) {
	var shapes []geometry.Shape
	var errs error
	for i, spec := range specs {
		shape, err := spec.build(fmt.Sprintf("%s[%d]", path, i), baseDir)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		shapes = append(shapes, shape)
	}
	return shapes, errs
}

func (s ShapeSpec) build(path, baseDir string) (geometry.Shape, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Type == "group" {
		children, err := buildShapes(path+".shapes", s.Shapes, baseDir)
		if err != nil {
			return nil, err
		}
		return geometry.NewAggregate(children...), nil
	}

	mat := material.New()
	if s.Material != nil {
		mat = s.Material.material()
	}
	emission := core.Black()
	if len(s.Emission) == 3 {
		emission = toColor(s.Emission)
	}

	shape, err := s.geometry(emission, mat, baseDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return shape, nil
}

func (s ShapeSpec) geometry(emission core.Color, mat material.Material, baseDir string) (geometry.Shape, error) {
	switch s.Type {
	case "mesh":
		file := s.File
		if !filepath.IsAbs(file) {
			file = filepath.Join(baseDir, file)
		}
		data, err := LoadPLY(file)
		if err != nil {
			return nil, err
		}
		return data.Mesh(emission, mat)

	case "sphere":
		sphere, err := geometry.NewSphere(toPoint(s.Center), s.Radius)
		if err != nil {
			return nil, err
		}
		return sphere.SetEmission(emission).SetMaterial(mat), nil

	case "plane":
		normal, err := toDirection(s.Normal)
		if err != nil {
			return nil, err
		}
		plane, err := geometry.NewPlane(toPoint(s.Point), normal)
		if err != nil {
			return nil, err
		}
		return plane.SetEmission(emission).SetMaterial(mat), nil

	case "triangle", "polygon":
		vertices := make([]core.Point, len(s.Vertices))
		for i, v := range s.Vertices {
			vertices[i] = toPoint(v)
		}
		polygon, err := geometry.NewPolygon(vertices...)
		if err != nil {
			return nil, err
		}
		return polygon.SetEmission(emission).SetMaterial(mat), nil
	}

	direction, err := toDirection(s.Direction)
	if err != nil {
		return nil, err
	}
	axis := core.NewRay(toPoint(s.Origin), direction)
	if s.Type == "tube" {
		tube, err := geometry.NewTube(axis, s.Radius)
		if err != nil {
			return nil, err
		}
		return tube.SetEmission(emission).SetMaterial(mat), nil
	}

	cylinder, err := geometry.NewCylinder(axis, s.Radius, s.Height)
	if err != nil {
		return nil, err
	}
	return cylinder.SetEmission(emission).SetMaterial(mat), nil
}

func (s MaterialSpec) material() material.Material {
	m := material.New().
		WithKD(s.KD.factor()).
		WithKS(s.KS.factor()).
		WithKR(s.KR.factor()).
		WithKT(s.KT.factor()).
		WithShininess(s.Shininess)
	if s.KG != nil {
		m = m.WithGlossiness(*s.KG)
	}
	if s.KB != nil {
		m = m.WithBlur(*s.KB)
	}
	return m
}

func (f factorSpec) factor() core.Factor {
	switch len(f) {
	case 1:
		return core.Uniform(f[0])
	case 3:
		return core.NewFactor(f[0], f[1], f[2])
	}
	return core.Factor{}
}

func toColor(t triple) core.Color { return core.NewColor(t[0], t[1], t[2]) }
func toPoint(t triple) core.Point { return core.NewPoint(t[0], t[1], t[2]) }

// toVector leaves a zero vector for the camera validation to reject
func toVector(t triple) core.Vector {
	v, _ := core.NewVector(t[0], t[1], t[2])
	return v
}

func toDirection(t triple) (core.Vector, error) {
	v, err := core.NewVector(t[0], t[1], t[2])
	if err != nil {
		return core.Vector{}, fmt.Errorf("direction: %w", err)
	}
	return v, nil
}
