package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// LightSource is a light that directly illuminates surface points
type LightSource interface {
	// Intensity returns the light arriving at p
	Intensity(p core.Point) core.Color

	// ToLight returns the unit vector from p toward the light.
	// It reports false when p coincides with the light's position.
	ToLight(p core.Point) (core.Vector, bool)

	// Distance returns how far p is from the light, +Inf for lights at infinity
	Distance(p core.Point) float64
}

// AreaSampler is implemented by lights with a physical extent, allowing
// soft shadows to be computed from several shadow rays
type AreaSampler interface {
	// Samples returns up to n unit vectors from p toward points spread over the light
	Samples(p core.Point, n int) []core.Vector
}
