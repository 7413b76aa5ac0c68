package core

// RayKind tags a ray with its role in the path. The tag exists so that
// primary and secondary rays can be specialized later; nothing branches on
// it today.
type RayKind int

const (
	PrimaryRay RayKind = iota
	SecondaryRay
)

// Interval defaults for hit distance validity. The lower bound keeps bounce
// rays from re-hitting the surface they left.
const (
	DefaultTMin = 1e-8
	DefaultTMax = 1e30
)

// Ray represents a ray with an origin, a unit direction and a validity
// interval for hit distances. Rays are values: every bounce constructs a
// new one, nothing mutates a ray in place.
type Ray struct {
	Origin    Vec3
	Direction Vec3 // must be unit length
	TMin      float64
	TMax      float64
	Kind      RayKind
}

// NewRay creates a primary ray with the default validity interval.
// The direction is normalized here so that intersection code can rely on
// unit length (the sphere test fixes its quadratic's a coefficient at 1).
func NewRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction.Normalize(),
		TMin:      DefaultTMin,
		TMax:      DefaultTMax,
		Kind:      PrimaryRay,
	}
}

// NewSecondaryRay creates a bounce ray with the default validity interval.
// The direction must already be unit length; scatter code produces
// normalized directions and this avoids a redundant sqrt per bounce.
func NewSecondaryRay(origin, direction Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: direction,
		TMin:      DefaultTMin,
		TMax:      DefaultTMax,
		Kind:      SecondaryRay,
	}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// ValidDistance reports whether t falls within the ray's validity interval
func (r Ray) ValidDistance(t float64) bool {
	return t >= r.TMin && t <= r.TMax
}
