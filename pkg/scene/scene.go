// Package scene holds the host-side description of what to render: a
// heterogeneous object list and a camera. The device bridge flattens this
// into its typed broadcast arrays at upload time.
package scene

import (
	"github.com/mhalden/patina/pkg/core"
	"github.com/mhalden/patina/pkg/geometry"
	"github.com/mhalden/patina/pkg/material"
)

// Scene contains all the elements needed for rendering. Objects is
// deliberately heterogeneous; the upload bridge sorts it into typed arrays
// by runtime type inspection.
type Scene struct {
	Objects []any
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// AddSphere adds a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.Objects = append(s.Objects, geometry.NewSphere(center, radius, mat))
}

// AddPlane adds an infinite plane to the scene
func (s *Scene) AddPlane(point, normal core.Vec3, mat material.Material) {
	s.Objects = append(s.Objects, geometry.NewPlane(point, normal, mat))
}
