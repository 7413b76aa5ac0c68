// Package aging maps base surface colors to weathered colors using the 3D
// noise field. Both transforms are pure functions evaluated per shading
// point; they never touch random state, so layering them onto material
// albedo cannot bias the integrator.
package aging

import (
	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/noise"
)

// Rust describes an oxidation effect. Owned by the caller (the parameter
// UI), passed by value into the shading path, never mutated by the
// renderer.
type Rust struct {
	Oxidation    float64   // rust coverage, expected in [0,1]
	Roughness    float64   // dimming from surface roughening
	PatternScale float64   // spatial frequency of the rust pattern
	RustColor    core.Vec3 // oxide tint
	Pad          float64   // reserved, keeps layout upload-friendly
}

// PaintAging describes paint peeling, cracking and general weathering.
type PaintAging struct {
	Peeling      float64   // fraction of the surface that has flaked off
	CrackDensity float64   // crack frequency
	Weathering   float64   // overall darkening factor
	Underlay     core.Vec3 // color exposed where paint has peeled
	Pad          float64   // reserved, keeps layout upload-friendly
}

// Hand-tuned thresholds; changing them changes the rendered look.
const (
	crackScalePerDensity = 10.0
	weatherDarkening     = 0.3
	crackThresholdFactor = 0.2
	crackDimming         = 0.7
)

// RustColor returns the base color oxidized at the given world point.
//
// The rust amount is the noise pattern at point*PatternScale scaled by the
// oxidation level; the base is interpolated toward the oxide tint by that
// amount and then dimmed by 1 + Roughness*amount. Oxidation outside [0,1]
// is not validated, output just degrades.
func RustColor(base core.Vec3, point core.Vec3, params Rust) core.Vec3 {
	pattern := noise.Value(point.Multiply(params.PatternScale))
	amount := pattern * params.Oxidation

	rusted := base.Lerp(params.RustColor, amount)
	return rusted.Divide(1 + params.Roughness*amount)
}

// PaintColor returns the base color aged as cracking, weathered paint.
//
// peelNoise is a second noise sample supplied by the caller and must be
// sourced independently of the crack pattern (a different scale or offset
// of the field), otherwise peel and crack features visibly correlate. The
// peel gate is hard binary: the paint is either intact or gone.
func PaintColor(base core.Vec3, point core.Vec3, params PaintAging, peelNoise float64) core.Vec3 {
	crack := noise.Value(point.Multiply(1 + params.CrackDensity*crackScalePerDensity))

	peelThreshold := 1 - params.Peeling
	peel := 0.0
	if peelNoise > peelThreshold {
		peel = 1.0
	}

	aged := base.Multiply(1 - params.Weathering*weatherDarkening)
	aged = aged.Lerp(params.Underlay, peel)

	if crack < params.CrackDensity*crackThresholdFactor {
		aged = aged.Multiply(crackDimming)
	}

	return aged
}
