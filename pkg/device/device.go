// Package device emulates the broadcast memory of a parallel execution
// environment: a read-only snapshot of camera and scene arrays that every
// per-pixel invocation reads without synchronization. Upload is a one-shot,
// ordered publish; the caller sequences upload-then-render and never races
// a scene change against an in-flight frame.
package device

import (
	"errors"
	"fmt"
	"math"

	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/geometry"
	"github.com/mhalden/patina/pkg/material"
	"github.com/mhalden/patina/pkg/scene"
)

// Fixed broadcast-array capacities, inherited from the original broadcast
// memory budget. Exceeding them is a configuration error at upload, never a
// runtime one.
const (
	MaxSpheres = 16
	MaxPlanes  = 16
)

var (
	// ErrNilScene is returned for a nil scene handle. Distinct from an
	// empty scene, which is a valid zero-object upload: the asymmetry is
	// deliberate and preserved.
	ErrNilScene = errors.New("nil scene handle")

	// ErrNilCamera is returned for a nil camera
	ErrNilCamera = errors.New("nil camera")

	// ErrCapacityExceeded is returned when the scene holds more objects of
	// one kind than the broadcast arrays can carry
	ErrCapacityExceeded = errors.New("broadcast capacity exceeded")
)

// Device holds the published broadcast state. Immutable between uploads;
// render invocations only read it.
type Device struct {
	camera      cameraState
	spheres     [MaxSpheres]geometry.Sphere
	planes      [MaxPlanes]geometry.Plane
	sphereCount int
	planeCount  int
	initialized bool
}

// cameraState is the device-side camera: basis republished from the host
// camera with the field of view already converted to radians.
type cameraState struct {
	position      core.Vec3
	forward       core.Vec3
	right         core.Vec3
	up            core.Vec3
	tanHalfFOV    float64
	aspect        float64
	width, height int
}

// New creates an empty device with nothing published
func New() *Device {
	return &Device{}
}

// InitializeScene flattens the host scene into the typed broadcast arrays
// and republishes the camera.
//
// A nil scene handle or camera fails without touching previously published
// state, as does an over-capacity or unrecognized object. An empty object
// list is not an error: it publishes zero spheres and zero planes.
// Emissive radiance is premultiplied (color × strength) here, once, rather
// than per shading point.
func (d *Device) InitializeScene(camera *scene.Camera, sc *scene.Scene) error {
	if sc == nil {
		return fmt.Errorf("initialize scene: %w", ErrNilScene)
	}
	if camera == nil {
		return fmt.Errorf("initialize scene: %w", ErrNilCamera)
	}

	// Stage into locals so a failed upload leaves broadcast state unmodified
	var spheres [MaxSpheres]geometry.Sphere
	var planes [MaxPlanes]geometry.Plane
	sphereCount, planeCount := 0, 0

	for _, obj := range sc.Objects {
		switch o := obj.(type) {
		case geometry.Sphere:
			if sphereCount >= MaxSpheres {
				return fmt.Errorf("initialize scene: %d spheres: %w", sphereCount+1, ErrCapacityExceeded)
			}
			o.Material.Emission = o.Material.EmissionColor.Multiply(o.Material.EmissionStrength)
			spheres[sphereCount] = o
			sphereCount++
		case geometry.Plane:
			if planeCount >= MaxPlanes {
				return fmt.Errorf("initialize scene: %d planes: %w", planeCount+1, ErrCapacityExceeded)
			}
			o.Material.Emission = o.Material.EmissionColor.Multiply(o.Material.EmissionStrength)
			planes[planeCount] = o
			planeCount++
		default:
			return fmt.Errorf("initialize scene: unsupported object type %T", obj)
		}
	}

	fovRadians := camera.FOV * math.Pi / 180.0
	d.camera = cameraState{
		position:   camera.Position,
		forward:    camera.Forward,
		right:      camera.Right,
		up:         camera.Up,
		tanHalfFOV: math.Tan(fovRadians / 2),
		aspect:     float64(camera.Width) / float64(camera.Height),
		width:      camera.Width,
		height:     camera.Height,
	}
	d.spheres = spheres
	d.planes = planes
	d.sphereCount = sphereCount
	d.planeCount = planeCount
	d.initialized = true

	return nil
}

// Width returns the published output width in pixels
func (d *Device) Width() int { return d.camera.width }

// Height returns the published output height in pixels
func (d *Device) Height() int { return d.camera.height }

// SphereCount returns the number of published spheres
func (d *Device) SphereCount() int { return d.sphereCount }

// PlaneCount returns the number of published planes
func (d *Device) PlaneCount() int { return d.planeCount }

// GenerateRay builds the primary camera ray for pixel (x, y), jittered
// within the pixel by the sampler for antialiasing.
func (d *Device) GenerateRay(x, y int, sampler core.Sampler) core.Ray {
	jitter := sampler.Get2D()

	u := (float64(x) + jitter.X) / float64(d.camera.width)
	v := (float64(y) + jitter.Y) / float64(d.camera.height)

	ndcX := (2*u - 1) * d.camera.tanHalfFOV * d.camera.aspect
	ndcY := (1 - 2*v) * d.camera.tanHalfFOV

	direction := d.camera.forward.
		Add(d.camera.right.Multiply(ndcX)).
		Add(d.camera.up.Multiply(ndcY))

	return core.NewRay(d.camera.position, direction)
}

// Hit returns the nearest intersection along the ray, or false if nothing
// qualifies. Brute-force linear scan over spheres then planes; object
// counts are capped, so no acceleration structure is warranted. Strictly-
// less comparison on distance: the first object in scan order wins exact
// ties.
func (d *Device) Hit(ray core.Ray) (*material.HitRecord, bool) {
	var closest *material.HitRecord
	closestT := math.Inf(1)

	for i := 0; i < d.sphereCount; i++ {
		if hit, ok := d.spheres[i].Hit(ray); ok && hit.T < closestT {
			closest = hit
			closestT = hit.T
		}
	}
	for i := 0; i < d.planeCount; i++ {
		if hit, ok := d.planes[i].Hit(ray); ok && hit.T < closestT {
			closest = hit
			closestT = hit.T
		}
	}

	return closest, closest != nil
}
