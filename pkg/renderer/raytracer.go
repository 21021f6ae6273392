package renderer

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	// DefaultMaxDepth is the recursion depth of a primary ray
	DefaultMaxDepth = 10
	// DefaultMinK is the attenuation below which a contribution is ignored
	DefaultMinK = 0.001
)

// TracerConfig contains shading configuration
type TracerConfig struct {
	MaxDepth       int     // Hard cap on recursion depth
	MinK           float64 // Energy threshold for lights and secondary rays
	GlossyRays     int     // Rays per glossy or blurry beam; <= 1 traces the ideal ray only
	SoftShadowRays int     // Shadow rays per area light; <= 1 casts a single shadow ray
}

// DefaultTracerConfig returns sensible default values
func DefaultTracerConfig() TracerConfig {
	return TracerConfig{
		MaxDepth:       DefaultMaxDepth,
		MinK:           DefaultMinK,
		GlossyRays:     1,
		SoftShadowRays: 1,
	}
}

// Raytracer computes the color seen along rays with recursive Whitted shading.
// It holds no mutable state and may be used from many goroutines at once.
type Raytracer struct {
	scene  *scene.Scene
	config TracerConfig
}

// NewRaytracer creates a new raytracer. Zero config fields take their defaults.
func NewRaytracer(s *scene.Scene, config TracerConfig) *Raytracer {
	defaults := DefaultTracerConfig()
	if config.MaxDepth <= 0 {
		config.MaxDepth = defaults.MaxDepth
	}
	if config.MinK <= 0 {
		config.MinK = defaults.MinK
	}
	return &Raytracer{scene: s, config: config}
}

// Config returns the effective configuration
func (rt *Raytracer) Config() TracerConfig { return rt.config }

// TraceRay returns the color seen along ray, or the background when it hits nothing
func (rt *Raytracer) TraceRay(ray core.Ray) core.Color {
	gp, ok := rt.findClosestIntersection(ray)
	if !ok {
		return rt.scene.Background
	}
	return rt.calcColor(gp, ray, rt.config.MaxDepth, core.One()).Add(rt.scene.Ambient.Intensity())
}

// TraceRays returns the equal-weight average of TraceRay over rays
func (rt *Raytracer) TraceRays(rays []core.Ray) core.Color {
	if len(rays) == 0 {
		return rt.scene.Background
	}
	sum := core.Black()
	for _, ray := range rays {
		sum = sum.Add(rt.TraceRay(ray))
	}
	return sum.Reduce(float64(len(rays)))
}

func (rt *Raytracer) findClosestIntersection(ray core.Ray) (geometry.GeoPoint, bool) {
	return geometry.ClosestGeoPoint(ray, geometry.IntersectAll(rt.scene.Geometries, ray))
}

// calcColor shades gp with the given remaining depth and accumulated attenuation k
func (rt *Raytracer) calcColor(gp geometry.GeoPoint, ray core.Ray, level int, k core.Factor) core.Color {
	color := rt.calcLocalEffects(gp, ray, k)
	if level <= 1 {
		return color
	}
	return color.Add(rt.calcGlobalEffects(gp, ray, level, k))
}

// calcLocalEffects returns emission plus Phong diffuse and specular light from every
// light on the viewer's side of the surface, attenuated by whatever blocks it
func (rt *Raytracer) calcLocalEffects(gp geometry.GeoPoint, ray core.Ray, k core.Factor) core.Color {
	g := gp.Geometry
	color := g.Emission()
	v := ray.Direction()
	n := g.Normal(gp.Point)
	nv := core.AlignZero(n.Dot(v))
	if nv == 0 {
		return color
	}

	mat := g.Material()
	for _, light := range rt.scene.Lights {
		toLight, ok := light.ToLight(gp.Point)
		if !ok {
			continue
		}
		l := toLight.Negate()
		nl := core.AlignZero(n.Dot(l))
		if core.AlignZero(nl*nv) <= 0 {
			continue
		}

		ktr := rt.transparency(gp, light, toLight, n)
		if ktr.Product(k).LowerThan(rt.config.MinK) {
			continue
		}
		iL := light.Intensity(gp.Point).ScaleBy(ktr)
		color = color.Add(
			iL.ScaleBy(diffusive(mat, nl)),
			iL.ScaleBy(specular(mat, n, l, nl, v)),
		)
	}
	return color
}

func diffusive(mat material.Material, nl float64) core.Factor {
	return mat.KD.Scale(math.Abs(nl))
}

// specular reflects l about n and compares it with the view direction
func specular(mat material.Material, n, l core.Vector, nl float64, v core.Vector) core.Factor {
	r := r3.Sub(l.Vec(), r3.Scale(2*nl, n.Vec()))
	vr := core.AlignZero(r3.Dot(v.Vec(), r))
	if vr > 0 {
		return core.Factor{}
	}
	return mat.KS.Scale(math.Pow(-vr, float64(mat.Shininess)))
}

// transparency returns the product of the KT of every shape between the point and
// the light, averaged over several shadow rays when the light supports area sampling
func (rt *Raytracer) transparency(gp geometry.GeoPoint, light lights.LightSource, toLight, n core.Vector) core.Factor {
	distance := light.Distance(gp.Point)

	directions := []core.Vector{toLight}
	if rt.config.SoftShadowRays > 1 {
		if sampler, ok := light.(lights.AreaSampler); ok {
			if samples := sampler.Samples(gp.Point, rt.config.SoftShadowRays); len(samples) > 0 {
				directions = samples
			}
		}
	}

	sum := core.Factor{}
	for _, dir := range directions {
		sum = sum.Add(rt.shadowFactor(gp.Point, dir, n, distance))
	}
	return sum.Scale(1 / float64(len(directions)))
}

// shadowFactor casts one shadow ray and multiplies the KT of blockers closer than the light
func (rt *Raytracer) shadowFactor(p core.Point, dir, n core.Vector, lightDistance float64) core.Factor {
	shadowRay := core.NewOffsetRay(p, dir, n)
	ktr := core.One()
	for _, hit := range geometry.IntersectAll(rt.scene.Geometries, shadowRay) {
		if p.Distance(hit.Point) < lightDistance {
			ktr = ktr.Product(hit.Geometry.Material().KT)
			if ktr.IsZero() {
				break
			}
		}
	}
	return ktr
}

// calcGlobalEffects follows reflected and refracted rays
func (rt *Raytracer) calcGlobalEffects(gp geometry.GeoPoint, ray core.Ray, level int, k core.Factor) core.Color {
	mat := gp.Geometry.Material()
	n := gp.Geometry.Normal(gp.Point)
	v := ray.Direction()

	color := core.Black()
	if kkr := mat.KR.Product(k); !kkr.LowerThan(rt.config.MinK) {
		rays := rt.beam(rt.reflectedRay(gp.Point, n, v), n, mat.KG, mat.Glossy())
		color = color.Add(rt.calcGlobalEffect(rays, level, mat.KR, kkr))
	}
	if kkt := mat.KT.Product(k); !kkt.LowerThan(rt.config.MinK) {
		rays := rt.beam(core.NewOffsetRay(gp.Point, v, n), n, mat.KB, mat.Blurry())
		color = color.Add(rt.calcGlobalEffect(rays, level, mat.KT, kkt))
	}
	return color
}

// calcGlobalEffect averages the colors seen along a beam of secondary rays.
// Rays that escape the scene see the background.
func (rt *Raytracer) calcGlobalEffect(rays []core.Ray, level int, kx, kkx core.Factor) core.Color {
	sum := core.Black()
	for _, ray := range rays {
		gp, ok := rt.findClosestIntersection(ray)
		if !ok {
			sum = sum.Add(rt.scene.Background.ScaleBy(kx))
			continue
		}
		sum = sum.Add(rt.calcColor(gp, ray, level-1, kkx).ScaleBy(kx))
	}
	return sum.Reduce(float64(len(rays)))
}

// reflectedRay mirrors v about n: v - 2(v·n)n
func (rt *Raytracer) reflectedRay(p core.Point, n, v core.Vector) core.Ray {
	r := r3.Sub(v.Vec(), r3.Scale(2*v.Dot(n), n.Vec()))
	dir, err := core.VectorFromVec(r)
	if err != nil {
		dir = v
	}
	return core.NewOffsetRay(p, dir, n)
}

// beam replaces an ideal secondary ray with GlossyRays rays perturbed within a
// disk of radius 1-spread around its direction. Perturbed rays that cross to the
// other side of the surface are dropped. The ideal ray is always included.
func (rt *Raytracer) beam(ideal core.Ray, n core.Vector, spread float64, enabled bool) []core.Ray {
	count := rt.config.GlossyRays
	if !enabled || count <= 1 {
		return []core.Ray{ideal}
	}

	d := ideal.Direction()
	side := core.AlignZero(n.Dot(d))
	radius := 1 - spread
	u := d.Perpendicular().Vec()
	w := r3.Cross(d.Vec(), u)

	rays := make([]core.Ray, 1, count)
	rays[0] = ideal
	for attempts := 0; len(rays) < count && attempts < 2*count; attempts++ {
		r := radius * math.Sqrt(rand.Float64())
		theta := 2 * math.Pi * rand.Float64()
		offset := r3.Add(r3.Scale(r*math.Cos(theta), u), r3.Scale(r*math.Sin(theta), w))

		dir, err := core.VectorFromVec(r3.Add(d.Vec(), offset))
		if err != nil || core.AlignZero(n.Dot(dir))*side <= 0 {
			continue
		}
		rays = append(rays, core.NewRay(ideal.Origin(), dir))
	}
	return rays
}
