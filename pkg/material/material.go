package material

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Material holds the Phong and recursive-tracing coefficients of a surface
type Material struct {
	KD        core.Factor // diffuse attenuation
	KS        core.Factor // specular attenuation
	KR        core.Factor // reflection attenuation
	KT        core.Factor // transparency attenuation
	Shininess int         // specular exponent

	// Spread of the sampled beam around the ideal reflected (KG) and
	// refracted (KB) rays, in (0,1). 1 or 0 trace the ideal ray only.
	KG float64
	KB float64
}

// New returns a material with all coefficients zero and ideal secondary rays
func New() Material {
	return Material{KG: 1, KB: 1}
}

// WithKD sets the diffuse coefficient
func (m Material) WithKD(k core.Factor) Material {
	m.KD = k
	return m
}

// WithKS sets the specular coefficient
func (m Material) WithKS(k core.Factor) Material {
	m.KS = k
	return m
}

// WithKR sets the reflection coefficient
func (m Material) WithKR(k core.Factor) Material {
	m.KR = k
	return m
}

// WithKT sets the transparency coefficient
func (m Material) WithKT(k core.Factor) Material {
	m.KT = k
	return m
}

// WithShininess sets the specular exponent
func (m Material) WithShininess(n int) Material {
	m.Shininess = n
	return m
}

// WithGlossiness sets the reflected beam spread
func (m Material) WithGlossiness(kg float64) Material {
	m.KG = kg
	return m
}

// WithBlur sets the refracted beam spread
func (m Material) WithBlur(kb float64) Material {
	m.KB = kb
	return m
}

// Glossy reports whether reflections are sampled as a beam
func (m Material) Glossy() bool {
	return m.KG > 0 && m.KG < 1
}

// Blurry reports whether refractions are sampled as a beam
func (m Material) Blurry() bool {
	return m.KB > 0 && m.KB < 1
}
