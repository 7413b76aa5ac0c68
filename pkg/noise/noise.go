// Package noise provides a deterministic scalar field over 3D space, used
// to drive the procedural weathering transforms.
package noise

import (
	"math"

	"github.com/mhalden/patina/pkg/core"
)

// hash scrambles a lattice coordinate into [0,1) with a sine-based hash.
// Not a cryptographic hash, just cheap decorrelation between lattice cells.
func hash(n float64) float64 {
	_, frac := math.Modf(math.Sin(n) * 43758.5453123)
	if frac < 0 {
		frac += 1
	}
	return frac
}

// fade is the cubic ease curve 3t²−2t³, zero-derivative at both ends so
// that the trilinear blend is continuous across lattice boundaries.
func fade(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Value returns a deterministic scalar in [0,1) for the given point.
//
// The point is floored to an integer lattice cell; the three lattice
// coordinates are combined with the 57/113 weights into a single corner
// index, each of the 8 corner indices is hashed, and the corners are
// blended trilinearly with the smoothed fractional offset. Pure function,
// no hidden state.
func Value(p core.Vec3) float64 {
	ix := math.Floor(p.X)
	iy := math.Floor(p.Y)
	iz := math.Floor(p.Z)

	fx := fade(p.X - ix)
	fy := fade(p.Y - iy)
	fz := fade(p.Z - iz)

	n := ix + iy*57 + iz*113

	// Corner hashes of the lattice cell
	c000 := hash(n)
	c100 := hash(n + 1)
	c010 := hash(n + 57)
	c110 := hash(n + 58)
	c001 := hash(n + 113)
	c101 := hash(n + 114)
	c011 := hash(n + 170)
	c111 := hash(n + 171)

	x00 := lerp(c000, c100, fx)
	x10 := lerp(c010, c110, fx)
	x01 := lerp(c001, c101, fx)
	x11 := lerp(c011, c111, fx)

	y0 := lerp(x00, x10, fy)
	y1 := lerp(x01, x11, fy)

	return lerp(y0, y1, fz)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
