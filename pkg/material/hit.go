package material

import "github.com/mhalden/patina/pkg/core"

// ScatterRecord contains the result of a scatter call
type ScatterRecord struct {
	Scattered   core.Ray  // continuation ray
	Attenuation core.Vec3 // color attenuation
	PDF         float64   // sample density; meaningless when Specular
	Specular    bool      // Dirac-delta BSDF, no density to divide by
}

// HitRecord contains information about a ray-object intersection.
// Constructed fresh per intersection test.
type HitRecord struct {
	Point     core.Vec3 // point of intersection
	Normal    core.Vec3 // front-face-corrected surface normal
	T         float64   // hit distance along the ray
	FrontFace bool      // whether the ray hit the front face
	Color     core.Vec3 // resolved (aged) surface color at the hit point
	Emission  core.Vec3 // precomputed emission, zero for non-emissive objects
	Material  *Material // material that produced the hit
}

// SetFaceNormal sets the normal vector, flipping it to oppose the incoming
// ray, and records which face was hit
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
