// Package material implements the scattering model. Materials are a closed
// tagged variant rather than an interface: the render kernel dispatches on
// the kind with a switch, which keeps the descriptor a plain value that can
// be flattened into the broadcast arrays.
package material

import (
	"math"

	"github.com/mhalden/patina/pkg/aging"
	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/noise"
)

// Kind selects a material behavior class
type Kind int

const (
	Diffuse Kind = iota
	Metal
	Dielectric
	Emissive
)

// Weathering optionally layers the aging transforms over a material's base
// color. Flags instead of pointers so the whole struct stays upload-friendly.
type Weathering struct {
	HasRust  bool
	Rust     aging.Rust
	HasPaint bool
	Paint    aging.PaintAging
}

// The peel gate needs a noise sample decorrelated from the paint transform's
// own crack pattern. Sampling the field at an unrelated scale and a fixed
// offset keeps the two patterns independent without any random state.
const peelNoiseScale = 0.73

var peelNoiseOffset = core.NewVec3(31.7, 17.3, 11.9)

// Material describes one behavior class plus its parameters. Immutable for
// the lifetime of a frame; owned by the scene.
type Material struct {
	Kind   Kind
	Albedo core.Vec3 // base surface color (diffuse, metal)

	Fuzz            float64 // metal: 0 = perfect mirror, 1 = very fuzzy
	RefractiveIndex float64 // dielectric

	// Emission authoring values; Emission itself is the product of the two,
	// precomputed once at scene upload rather than per shading point.
	EmissionColor    core.Vec3
	EmissionStrength float64
	Emission         core.Vec3

	Weathering Weathering
}

// NewDiffuse creates a diffuse (Lambertian) material
func NewDiffuse(albedo core.Vec3) Material {
	return Material{Kind: Diffuse, Albedo: albedo}
}

// NewMetal creates a metallic material with the given fuzziness
func NewMetal(albedo core.Vec3, fuzz float64) Material {
	if fuzz > 1 {
		fuzz = 1
	}
	if fuzz < 0 {
		fuzz = 0
	}
	return Material{Kind: Metal, Albedo: albedo, Fuzz: fuzz}
}

// NewDielectric creates a transparent material like glass
func NewDielectric(refractiveIndex float64) Material {
	return Material{Kind: Dielectric, RefractiveIndex: refractiveIndex, Albedo: core.NewVec3(1, 1, 1)}
}

// NewEmissive creates a light-emitting material. The radiance used during
// rendering is color*strength, premultiplied by the upload bridge.
func NewEmissive(color core.Vec3, strength float64) Material {
	return Material{Kind: Emissive, EmissionColor: color, EmissionStrength: strength}
}

// WithRust returns a copy of the material with a rust transform attached
func (m Material) WithRust(params aging.Rust) Material {
	m.Weathering.HasRust = true
	m.Weathering.Rust = params
	return m
}

// WithPaintAging returns a copy of the material with a paint aging transform attached
func (m Material) WithPaintAging(params aging.PaintAging) Material {
	m.Weathering.HasPaint = true
	m.Weathering.Paint = params
	return m
}

// IsEmissive reports whether the material only emits
func (m *Material) IsEmissive() bool {
	return m.Kind == Emissive
}

// SurfaceColor resolves the aged surface color at a world point: the base
// albedo run through whichever weathering transforms are enabled.
func (m *Material) SurfaceColor(point core.Vec3) core.Vec3 {
	color := m.Albedo
	if m.Weathering.HasRust {
		color = aging.RustColor(color, point, m.Weathering.Rust)
	}
	if m.Weathering.HasPaint {
		peel := noise.Value(point.Multiply(peelNoiseScale).Add(peelNoiseOffset))
		color = aging.PaintColor(color, point, m.Weathering.Paint, peel)
	}
	return color
}

// Emitted returns the radiance the material emits toward the ray.
// Non-zero only for the emissive kind.
func (m *Material) Emitted(rayIn core.Ray, hit *HitRecord) core.Vec3 {
	if m.Kind == Emissive {
		return m.Emission
	}
	return core.Vec3{}
}

// Scatter samples an outgoing ray at the hit point. Returns false when the
// path should terminate: emissive materials absorb, and a fuzzy metal
// sample driven below the surface counts as absorbed.
func (m *Material) Scatter(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	switch m.Kind {
	case Diffuse:
		return m.scatterDiffuse(hit, sampler)
	case Metal:
		return m.scatterMetal(rayIn, hit, sampler)
	case Dielectric:
		return m.scatterDielectric(rayIn, hit, sampler)
	default: // Emissive
		return ScatterRecord{}, false
	}
}

// ScatteringPDF returns the closed-form density of the BSDF term used to
// weight non-specular throughput updates. For the cosine-sampled diffuse
// kind this matches the sampling density in the ScatterRecord exactly; the
// integrator's attenuation*ScatteringPDF/PDF correction relies on that.
func (m *Material) ScatteringPDF(rayIn core.Ray, hit *HitRecord, scattered core.Ray) float64 {
	if m.Kind != Diffuse {
		return 0
	}
	cosTheta := scattered.Direction.Dot(hit.Normal)
	if cosTheta <= 0 {
		return 0
	}
	return cosTheta / math.Pi
}

func (m *Material) scatterDiffuse(hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	direction := core.SampleCosineHemisphere(hit.Normal, sampler.Get2D())

	cosTheta := direction.Dot(hit.Normal)
	if cosTheta <= 0 {
		// Degenerate sample at the hemisphere rim; a zero density is a
		// defect, not a valid sample, so terminate instead
		return ScatterRecord{}, false
	}

	return ScatterRecord{
		Scattered:   core.NewSecondaryRay(hit.Point, direction),
		Attenuation: hit.Color,
		PDF:         cosTheta / math.Pi,
	}, true
}

func (m *Material) scatterMetal(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	reflected := reflect(rayIn.Direction, hit.Normal)

	if m.Fuzz > 0 {
		perturbation := core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzz)
		reflected = reflected.Add(perturbation)
	}

	// Fuzz can push the sample below the surface; treat as absorbed
	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterRecord{}, false
	}

	return ScatterRecord{
		Scattered:   core.NewSecondaryRay(hit.Point, reflected.Normalize()),
		Attenuation: hit.Color,
		Specular:    true,
	}, true
}

func (m *Material) scatterDielectric(rayIn core.Ray, hit *HitRecord, sampler core.Sampler) (ScatterRecord, bool) {
	var refractionRatio float64
	if hit.FrontFace {
		refractionRatio = 1.0 / m.RefractiveIndex // entering the material
	} else {
		refractionRatio = m.RefractiveIndex // exiting the material
	}

	cosTheta := math.Min(rayIn.Direction.Negate().Dot(hit.Normal), 1.0)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)

	cannotRefract := refractionRatio*sinTheta > 1.0

	var direction core.Vec3
	if cannotRefract || reflectance(cosTheta, refractionRatio) > sampler.Get1D() {
		direction = reflect(rayIn.Direction, hit.Normal)
	} else {
		direction = refract(rayIn.Direction, hit.Normal, refractionRatio)
	}

	return ScatterRecord{
		Scattered:   core.NewSecondaryRay(hit.Point, direction.Normalize()),
		Attenuation: core.NewVec3(1, 1, 1), // clear glass absorbs nothing
		Specular:    true,
	}, true
}

// reflect calculates the reflection of v off a surface with normal n
func reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// refract calculates the refraction of uv through a surface using Snell's law
func refract(uv, n core.Vec3, etaiOverEtat float64) core.Vec3 {
	cosTheta := math.Min(uv.Negate().Dot(n), 1.0)
	rOutPerp := uv.Add(n.Multiply(cosTheta)).Multiply(etaiOverEtat)
	rOutParallel := n.Multiply(-math.Sqrt(math.Abs(1.0 - rOutPerp.LengthSquared())))
	return rOutPerp.Add(rOutParallel)
}

// reflectance calculates the Fresnel reflectance using Schlick's approximation
func reflectance(cosine, refractionRatio float64) float64 {
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
