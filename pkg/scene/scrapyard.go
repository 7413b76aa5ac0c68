package scene

import (
	"github.com/mhalden/patina/pkg/aging"
	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/material"
)

// NewScrapyardScene builds an outdoor weathering showcase: a concrete
// ground plane under a dim sky dome, with a row of spheres at different
// stages of decay so the aging parameters can be compared side by side.
func NewScrapyardScene() *Scene {
	s := NewScene()

	ground := material.NewDiffuse(core.NewVec3(0.55, 0.55, 0.52))
	s.AddPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground)

	// Sky dome: a huge emissive sphere enclosing everything
	s.AddSphere(core.NewVec3(0, 0, 0), 200,
		material.NewEmissive(core.NewVec3(0.75, 0.82, 1.0), 1.5))

	// Fresh metal for reference
	s.AddSphere(core.NewVec3(-2.4, 0.8, -4), 0.8,
		material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.02))

	// Lightly oxidized
	s.AddSphere(core.NewVec3(-0.8, 0.8, -4), 0.8,
		material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.02).WithRust(aging.Rust{
			Oxidation:    0.3,
			Roughness:    0.4,
			PatternScale: 3.0,
			RustColor:    core.NewVec3(0.58, 0.25, 0.09),
		}))

	// Heavily corroded
	s.AddSphere(core.NewVec3(0.8, 0.8, -4), 0.8,
		material.NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.02).WithRust(aging.Rust{
			Oxidation:    0.9,
			Roughness:    1.0,
			PatternScale: 6.0,
			RustColor:    core.NewVec3(0.45, 0.18, 0.06),
		}))

	// Painted sphere with the paint flaking off a primer underlay
	s.AddSphere(core.NewVec3(2.4, 0.8, -4), 0.8,
		material.NewDiffuse(core.NewVec3(0.2, 0.45, 0.7)).WithPaintAging(aging.PaintAging{
			Peeling:      0.5,
			CrackDensity: 0.8,
			Weathering:   0.6,
			Underlay:     core.NewVec3(0.5, 0.35, 0.25),
		}))

	return s
}

// NewScrapyardCamera returns the matching camera for the scrapyard scene
func NewScrapyardCamera(width, height int) *Camera {
	return NewCamera(
		core.NewVec3(0, 1.4, 1.5),
		core.NewVec3(0, 0.7, -4),
		core.NewVec3(0, 1, 0),
		60.0,
		width, height,
	)
}
