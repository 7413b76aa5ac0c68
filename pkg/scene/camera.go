package scene

import "github.com/mhalden/patina/pkg/core"

// Camera is the host-side camera description: position, orthonormal basis,
// vertical field of view in degrees and output resolution. The upload
// bridge converts the field of view to radians when it publishes the
// camera to the broadcast state.
type Camera struct {
	Position core.Vec3
	Forward  core.Vec3
	Right    core.Vec3
	Up       core.Vec3
	FOV      float64 // vertical field of view, degrees
	Width    int
	Height   int
}

// NewCamera creates a camera looking from position toward target
func NewCamera(position, target, up core.Vec3, fovDegrees float64, width, height int) *Camera {
	forward := target.Subtract(position).Normalize()
	right := forward.Cross(up).Normalize()
	trueUp := right.Cross(forward)

	return &Camera{
		Position: position,
		Forward:  forward,
		Right:    right,
		Up:       trueUp,
		FOV:      fovDegrees,
		Width:    width,
		Height:   height,
	}
}
