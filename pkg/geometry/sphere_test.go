package geometry

import (
	"math"
	"testing"

	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/material"
)

func grayDiffuse() material.Material {
	return material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))
}

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, grayDiffuse())
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, isHit := sphere.Hit(ray); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, grayDiffuse())

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit from inside",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_FartherRootFallback(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, grayDiffuse())
	// Origin inside the sphere: the closer root is behind the origin
	ray := core.NewRay(core.NewVec3(0, 0, 0.5), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit from inside the sphere")
	}
	if math.Abs(hit.T-1.5) > 1e-9 {
		t.Errorf("Expected farther root t=1.5, got t=%f", hit.T)
	}
}

func TestSphere_Hit_RespectsInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, grayDiffuse())
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	ray.TMax = 0.5

	if _, isHit := sphere.Hit(ray); isHit {
		t.Error("Hit at t=1 should be rejected with TMax=0.5")
	}
}

// The a=1 simplification must agree with the general quadratic for
// normalized directions.
func TestSphere_Hit_MatchesGeneralQuadratic(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0.3, -0.2, -3), 1.7, grayDiffuse())

	rays := []core.Ray{
		core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0.1, -0.05, -1)),
		core.NewRay(core.NewVec3(3, 1, 0), core.NewVec3(-1, -0.4, -1)),
		core.NewRay(core.NewVec3(-2, 2, -3), core.NewVec3(1, -1, 0.2)),
	}

	for _, ray := range rays {
		hit, isHit := sphere.Hit(ray)

		// General solution: a = d·d (1 for unit d), half-b = oc·d, c = oc·oc - r²
		oc := ray.Origin.Subtract(sphere.Center)
		a := ray.Direction.Dot(ray.Direction)
		halfB := oc.Dot(ray.Direction)
		c := oc.Dot(oc) - sphere.Radius*sphere.Radius
		disc := halfB*halfB - a*c

		if disc < 0 {
			if isHit {
				t.Errorf("Ray %v: general quadratic says miss, got hit", ray)
			}
			continue
		}

		sqrtD := math.Sqrt(disc)
		root := (-halfB - sqrtD) / a
		if !ray.ValidDistance(root) {
			root = (-halfB + sqrtD) / a
		}
		if !ray.ValidDistance(root) {
			if isHit {
				t.Errorf("Ray %v: general quadratic says out of range, got hit", ray)
			}
			continue
		}

		if !isHit {
			t.Errorf("Ray %v: general quadratic says hit at %f, got miss", ray, root)
			continue
		}
		if math.Abs(hit.T-root) > 1e-9 {
			t.Errorf("Ray %v: expected t=%f, got t=%f", ray, root, hit.T)
		}
	}
}

func TestSphere_Hit_EmissionPrecomputed(t *testing.T) {
	mat := material.NewEmissive(core.NewVec3(1, 0.9, 0.8), 50)
	mat.Emission = mat.EmissionColor.Multiply(mat.EmissionStrength)
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, mat)

	ray := core.NewRay(core.NewVec3(0, 0, 3), core.NewVec3(0, 0, -1))
	hit, isHit := sphere.Hit(ray)
	if !isHit {
		t.Fatal("Expected hit")
	}
	expected := core.NewVec3(50, 45, 40)
	if hit.Emission.Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected emission %v, got %v", expected, hit.Emission)
	}
}
