package lights

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight is an omnidirectional light at a position, attenuated with distance as
// I / (kC + kL·d + kQ·d²). A positive radius turns it into a small disk for soft shadows.
type PointLight struct {
	intensity  core.Color
	position   core.Point
	kC, kL, kQ float64
	radius     float64
}

// NewPointLight creates an unattenuated point light
func NewPointLight(intensity core.Color, position core.Point) *PointLight {
	return &PointLight{intensity: intensity, position: position, kC: 1}
}

// SetAttenuation sets the constant, linear and quadratic attenuation factors
func (l *PointLight) SetAttenuation(kC, kL, kQ float64) *PointLight {
	l.kC, l.kL, l.kQ = kC, kL, kQ
	return l
}

// SetRadius sets the radius of the disk sampled for soft shadows
func (l *PointLight) SetRadius(radius float64) *PointLight {
	l.radius = math.Max(0, radius)
	return l
}

// Position returns the light's location
func (l *PointLight) Position() core.Point { return l.position }

// Radius returns the soft shadow disk radius
func (l *PointLight) Radius() float64 { return l.radius }

func (l *PointLight) Intensity(p core.Point) core.Color {
	dSquared := l.position.DistanceSquared(p)
	return l.intensity.Scale(1 / (l.kC + l.kL*math.Sqrt(dSquared) + l.kQ*dSquared))
}

func (l *PointLight) ToLight(p core.Point) (core.Vector, bool) {
	v, err := l.position.Subtract(p)
	if err != nil {
		return core.Vector{}, false
	}
	return core.Must(v.Normalize()), true
}

func (l *PointLight) Distance(p core.Point) float64 {
	return l.position.Distance(p)
}

// Samples returns directions from p toward uniformly distributed points on a disk
// around the light, facing p. A light without radius yields the single direction.
func (l *PointLight) Samples(p core.Point, n int) []core.Vector {
	toLight, ok := l.ToLight(p)
	if !ok {
		return nil
	}
	if n <= 1 || core.IsZero(l.radius) {
		return []core.Vector{toLight}
	}

	u := toLight.Perpendicular().Vec()
	w := r3.Cross(toLight.Vec(), u)

	samples := make([]core.Vector, 0, n)
	for len(samples) < n {
		r := l.radius * math.Sqrt(rand.Float64())
		theta := 2 * math.Pi * rand.Float64()
		offset := r3.Add(r3.Scale(r*math.Cos(theta), u), r3.Scale(r*math.Sin(theta), w))
		target := r3.Add(l.position.Vec(), offset)

		v, err := core.VectorFromVec(r3.Sub(target, p.Vec()))
		if err != nil {
			continue
		}
		samples = append(samples, core.Must(v.Normalize()))
	}
	return samples
}
