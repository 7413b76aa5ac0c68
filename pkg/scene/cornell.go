package scene

import (
	"github.com/mhalden/patina/pkg/aging"
	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/material"
)

// NewCornellScene builds the demo scene: a Cornell room with colored side
// walls, a weathered back wall, a rusty metal sphere, a painted diffuse
// sphere, a glass sphere and a spherical light near the ceiling.
func NewCornellScene() *Scene {
	const roomSize = 4.0
	const halfSize = roomSize / 2.0

	s := NewScene()

	white := material.NewDiffuse(core.NewVec3(0.9, 0.9, 0.9))
	red := material.NewDiffuse(core.NewVec3(0.9, 0.2, 0.2))
	green := material.NewDiffuse(core.NewVec3(0.2, 0.9, 0.2))

	// Back wall carries flaking paint over a plaster underlay
	backWall := white.WithPaintAging(aging.PaintAging{
		Peeling:      0.35,
		CrackDensity: 0.6,
		Weathering:   0.5,
		Underlay:     core.NewVec3(0.55, 0.5, 0.45),
	})

	s.AddPlane(core.NewVec3(0, 0, -halfSize), core.NewVec3(0, 0, 1), backWall)
	s.AddPlane(core.NewVec3(-halfSize, 0, 0), core.NewVec3(1, 0, 0), red)
	s.AddPlane(core.NewVec3(halfSize, 0, 0), core.NewVec3(-1, 0, 0), green)
	s.AddPlane(core.NewVec3(0, -halfSize, 0), core.NewVec3(0, 1, 0), white)
	s.AddPlane(core.NewVec3(0, halfSize, 0), core.NewVec3(0, -1, 0), white)

	// Large metal sphere, oxidizing
	rustyMetal := material.NewMetal(core.NewVec3(0.95, 0.95, 0.95), 0.05).WithRust(aging.Rust{
		Oxidation:    0.7,
		Roughness:    0.8,
		PatternScale: 4.0,
		RustColor:    core.NewVec3(0.58, 0.25, 0.09),
	})
	s.AddSphere(core.NewVec3(-1.0, -halfSize+0.8, -halfSize+1.0), 0.8, rustyMetal)

	// Small diffuse sphere
	s.AddSphere(core.NewVec3(1.0, -halfSize+0.4, -halfSize+1.0), 0.4,
		material.NewDiffuse(core.NewVec3(0.7, 0.3, 0.3)))

	// Glass sphere in front
	s.AddSphere(core.NewVec3(0.2, -halfSize+0.5, -halfSize+2.2), 0.5,
		material.NewDielectric(1.5))

	// Ceiling light
	s.AddSphere(core.NewVec3(0, halfSize-0.1, 0), 0.2,
		material.NewEmissive(core.NewVec3(1, 1, 1), 100))

	return s
}

// NewCornellCamera returns the matching camera for the Cornell room
func NewCornellCamera(width, height int) *Camera {
	const halfSize = 2.0
	return NewCamera(
		core.NewVec3(0, 0, halfSize*0.8),
		core.NewVec3(0, 0, -1),
		core.NewVec3(0, 1, 0),
		90.0,
		width, height,
	)
}
