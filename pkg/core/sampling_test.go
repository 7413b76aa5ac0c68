package core

import (
	"math"
	"testing"
)

func TestPixelSampler_Deterministic(t *testing.T) {
	a := NewPixelSampler(3, 400, 225, 1234)
	b := NewPixelSampler(3, 400, 225, 1234)

	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Same (frame, width, height, index) must produce identical sequences")
		}
	}
}

func TestPixelSampler_DecorrelatedAcrossFramesAndPixels(t *testing.T) {
	base := NewPixelSampler(0, 400, 225, 1234)

	variants := []struct {
		name    string
		sampler *RandomSampler
	}{
		{"next frame", NewPixelSampler(1, 400, 225, 1234)},
		{"next pixel", NewPixelSampler(0, 400, 225, 1235)},
	}

	first := base.Get1D()
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			if v.sampler.Get1D() == first {
				t.Error("Expected a different first sample")
			}
		})
	}
}

func TestSampleCosineHemisphere_AboveSurface(t *testing.T) {
	normal := NewVec3(0, 0, 1)
	sampler := NewPixelSampler(0, 1, 1, 0)

	for i := 0; i < 1000; i++ {
		dir := SampleCosineHemisphere(normal, sampler.Get2D())

		if math.Abs(dir.Length()-1.0) > 1e-9 {
			t.Fatalf("Expected unit direction, got length %f", dir.Length())
		}
		if dir.Dot(normal) < 0 {
			t.Fatalf("Direction %v is below the surface", dir)
		}
	}
}

func TestSampleCosineHemisphere_CosineDistribution(t *testing.T) {
	// Mean of cos(θ) under a cos-weighted density is 2/3
	normal := NewVec3(0, 1, 0)
	sampler := NewPixelSampler(7, 1, 1, 0)

	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		dir := SampleCosineHemisphere(normal, sampler.Get2D())
		sum += dir.Dot(normal)
	}

	mean := sum / n
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("Expected mean cosine ~0.667, got %f", mean)
	}
}

func TestSamplePointInUnitSphere_Inside(t *testing.T) {
	sampler := NewPixelSampler(2, 1, 1, 0)

	for i := 0; i < 1000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1.0+1e-9 {
			t.Fatalf("Point %v lies outside the unit sphere", p)
		}
	}
}
