package geometry

import (
	"math"

	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/material"
)

// Sphere represents a sphere scene object. Value type, suitable for the
// broadcast arrays.
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) Sphere {
	return Sphere{Center: center, Radius: radius, Material: mat}
}

// Hit tests if a ray intersects the sphere within the ray's validity
// interval.
//
// The quadratic's a coefficient is fixed at 1, which is only valid because
// ray directions are pre-normalized. That precondition is load-bearing: an
// unnormalized direction silently produces wrong hit distances here.
func (s *Sphere) Hit(ray core.Ray) (*material.HitRecord, bool) {
	oc := ray.Origin.Subtract(s.Center)

	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - c
	if discriminant < 0 {
		return nil, false
	}

	// Prefer the closer root, fall back to the farther one
	sqrtD := math.Sqrt(discriminant)
	root := -halfB - sqrtD
	if !ray.ValidDistance(root) {
		root = -halfB + sqrtD
		if !ray.ValidDistance(root) {
			return nil, false
		}
	}

	point := ray.At(root)
	hit := &material.HitRecord{
		T:        root,
		Point:    point,
		Color:    s.Material.SurfaceColor(point),
		Emission: s.Material.Emission,
		Material: &s.Material,
	}

	outwardNormal := point.Subtract(s.Center).Divide(s.Radius)
	hit.SetFaceNormal(ray, outwardNormal)

	return hit, true
}
