package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewDefaultScene creates a diffuse, a metal and a hollow glass sphere on a large ground sphere
func NewDefaultScene(core.Sampler) *Scene {
	world := geometry.NewHitableList(
		geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))),
		geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))),
		geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)),
		geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, material.NewDielectric(1.5)),
		// Negative radius flips the normal inward, making a hollow glass bubble
		geometry.NewSphere(core.NewVec3(-1, 0, -1), -0.45, material.NewDielectric(1.5)),
	)

	return &Scene{
		Name:  "three-spheres",
		World: world,
		CameraConfig: renderer.CameraConfig{
			LookFrom: core.NewVec3(3, 3, 2),
			LookAt:   core.NewVec3(0, 0, -1),
			Up:       core.NewVec3(0, 1, 0),
			VFov:     20,
			Aperture: 0.2,
			// Zero focuses on LookAt
			FocusDistance: 0,
		},
	}
}
