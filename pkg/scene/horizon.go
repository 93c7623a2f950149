package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewHorizonScene places one grey diffuse sphere at the origin, seen from just above
// its surface so it fills the lower half of the frame beneath the sky gradient
func NewHorizonScene(core.Sampler) *Scene {
	world := geometry.NewHitableList(
		geometry.NewSphere(core.NewVec3(0, 0, 0), 100, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	return &Scene{
		Name:  "horizon",
		World: world,
		CameraConfig: renderer.CameraConfig{
			LookFrom: core.NewVec3(0, 100.5, 0),
			LookAt:   core.NewVec3(0, 100.5, -1),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     90,
		},
	}
}
