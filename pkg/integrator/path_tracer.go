// Package integrator implements the light transport loop: an unrolled
// recursion over bounces, matching the bounded, synchronous iteration a
// per-pixel kernel invocation runs.
package integrator

import (
	"math"

	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/device"
)

// Config contains transport configuration
type Config struct {
	MaxDepth                  int // maximum ray bounce depth
	RussianRouletteMinBounces int // bounces before roulette can terminate a path
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:                  50,
		RussianRouletteMinBounces: 3,
	}
}

// PathTracer computes radiance for camera rays by unidirectional path
// tracing against the device's broadcast scene state.
type PathTracer struct {
	config Config
}

// NewPathTracer creates a new path tracer
func NewPathTracer(config Config) *PathTracer {
	return &PathTracer{config: config}
}

// Li returns the radiance arriving along the given ray.
//
// Per bounce: intersect, accumulate throughput-weighted emission, scatter.
// Specular scatters carry their weighting in the attenuation alone;
// non-specular ones apply the importance-sampling correction
// attenuation·scatteringPDF/samplePDF — the two densities must stay
// mathematically matched or the image biases silently. A miss terminates
// against a black background; running out of depth just stops contributing
// further bounces.
func (pt *PathTracer) Li(ray core.Ray, dev *device.Device, sampler core.Sampler) core.Vec3 {
	radiance := core.Vec3{}
	throughput := core.NewVec3(1, 1, 1)

	for depth := 0; depth < pt.config.MaxDepth; depth++ {
		hit, isHit := dev.Hit(ray)
		if !isHit {
			break
		}

		emitted := hit.Material.Emitted(ray, hit)
		radiance = radiance.Add(throughput.MultiplyVec(emitted))

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			break
		}

		if scatter.Specular {
			throughput = throughput.MultiplyVec(scatter.Attenuation)
		} else {
			bsdfPDF := hit.Material.ScatteringPDF(ray, hit, scatter.Scattered)
			throughput = throughput.MultiplyVec(scatter.Attenuation).Multiply(bsdfPDF / scatter.PDF)
		}
		ray = scatter.Scattered

		// Short paths are still cheap; only roll the dice after that
		if depth > pt.config.RussianRouletteMinBounces {
			var survived bool
			throughput, survived = russianRoulette(throughput, sampler)
			if !survived {
				break
			}
		}
	}

	return radiance
}

// russianRoulette terminates low-contribution paths with probability
// 1−max(throughput) and rescales survivors by that probability, keeping
// the estimator's expectation unchanged.
func russianRoulette(throughput core.Vec3, sampler core.Sampler) (core.Vec3, bool) {
	// Throughput above 1 (possible right after a specular chain) must not
	// be rescaled: survival is certain, compensation is 1
	p := math.Min(throughput.MaxComponent(), 1.0)
	if p <= 0 {
		return core.Vec3{}, false
	}
	if sampler.Get1D() > p {
		return core.Vec3{}, false
	}
	return throughput.Divide(p), true
}
