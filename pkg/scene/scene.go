package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/camera"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Scene contains all the elements needed for rendering. It must not be
// modified while a render is in progress.
type Scene struct {
	Name           string
	Background     core.Color           // Color of rays that hit nothing
	Ambient        lights.AmbientLight  // Added once to every visible point
	Geometries     *geometry.Aggregate  // Root of the shape graph
	Lights         []lights.LightSource // Direct light sources
	CameraConfig   camera.Config        // Suggested camera
	SamplingConfig SamplingConfig       // Suggested image settings
}

// SamplingConfig contains the suggested image settings for a scene
type SamplingConfig struct {
	Width        int // Image width in pixels
	Height       int // Image height in pixels
	AntiAliasing int // Rays per pixel side; 1 disables anti-aliasing
	MaxDepth     int // Maximum recursion depth, 0 for the tracer default
}

// Option configures a scene in New
type Option func(*Scene)

// New creates a scene with a black background, no ambient light and no shapes
func New(name string, opts ...Option) *Scene {
	s := &Scene{
		Name:       name,
		Background: core.Black(),
		Ambient:    lights.NoAmbient(),
		Geometries: geometry.NewAggregate(),
		SamplingConfig: SamplingConfig{
			Width:        500,
			Height:       500,
			AntiAliasing: 1,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithBackground sets the background color
func WithBackground(c core.Color) Option {
	return func(s *Scene) { s.Background = c }
}

// WithAmbient sets the ambient light
func WithAmbient(a lights.AmbientLight) Option {
	return func(s *Scene) { s.Ambient = a }
}

// WithShapes adds shapes to the scene's root aggregate
func WithShapes(shapes ...geometry.Shape) Option {
	return func(s *Scene) { s.Geometries.Add(shapes...) }
}

// WithLights adds light sources
func WithLights(ls ...lights.LightSource) Option {
	return func(s *Scene) { s.Lights = append(s.Lights, ls...) }
}

// WithCamera sets the suggested camera
func WithCamera(cfg camera.Config) Option {
	return func(s *Scene) { s.CameraConfig = cfg }
}

// WithSampling sets the suggested image settings
func WithSampling(cfg SamplingConfig) Option {
	return func(s *Scene) { s.SamplingConfig = cfg }
}

// GetPrimitiveCount returns the number of non-aggregate shapes in the scene
func (s *Scene) GetPrimitiveCount() int {
	return countPrimitives(s.Geometries)
}

// countPrimitives walks nested aggregates
func countPrimitives(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.Aggregate:
		count := 0
		for _, child := range obj.Shapes() {
			count += countPrimitives(child)
		}
		return count
	case nil:
		return 0
	default:
		return 1
	}
}
