package geometry

import (
	"math"

	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/material"
)

// Near-parallel cutoff for the ray/plane denominator; below this the
// intersection distance blows up numerically, so the test reports no hit.
const planeParallelEpsilon = 1e-6

// Plane represents an infinite plane defined by a point and a normal.
// Value type, suitable for the broadcast arrays.
type Plane struct {
	Point    core.Vec3
	Normal   core.Vec3 // unit length
	Material material.Material
}

// NewPlane creates a new plane; the normal is normalized here
func NewPlane(point, normal core.Vec3, mat material.Material) Plane {
	return Plane{Point: point, Normal: normal.Normalize(), Material: mat}
}

// Hit tests if a ray intersects the plane within the ray's validity interval
func (p *Plane) Hit(ray core.Ray) (*material.HitRecord, bool) {
	denominator := ray.Direction.Dot(p.Normal)

	if math.Abs(denominator) < planeParallelEpsilon {
		return nil, false
	}

	t := p.Point.Subtract(ray.Origin).Dot(p.Normal) / denominator
	if !ray.ValidDistance(t) {
		return nil, false
	}

	point := ray.At(t)
	hit := &material.HitRecord{
		T:        t,
		Point:    point,
		Color:    p.Material.SurfaceColor(point),
		Emission: p.Material.Emission,
		Material: &p.Material,
	}
	hit.SetFaceNormal(ray, p.Normal)

	return hit, true
}
