package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

const coverGridExtent = 11

// NewCoverScene creates the cover scene: a field of small random spheres around
// three large ones (glass, diffuse, metal) on a huge ground sphere
func NewCoverScene(sampler core.Sampler) *Scene {
	world := geometry.NewHitableList(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))),
	)

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -coverGridExtent; a < coverGridExtent; a++ {
		for b := -coverGridExtent; b < coverGridExtent; b++ {
			chooseMaterial := sampler.Get1D()
			center := core.NewVec3(
				float32(a)+0.9*sampler.Get1D(),
				0.2,
				float32(b)+0.9*sampler.Get1D(),
			)
			// Keep the spot in front of the metal sphere free
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}
			world.Add(geometry.NewSphere(center, 0.2, randomMaterial(chooseMaterial, sampler)))
		}
	}

	world.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, material.NewDielectric(1.5)))
	world.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))))
	world.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)))

	return &Scene{
		Name:  "cover",
		World: world,
		CameraConfig: renderer.CameraConfig{
			LookFrom:      core.NewVec3(13, 2, 3),
			LookAt:        core.NewVec3(0, 0, 0),
			Up:            core.NewVec3(0, 1, 0),
			VFov:          20,
			Aperture:      0.1,
			FocusDistance: 10,
		},
	}
}

// randomMaterial picks diffuse (80%), metal (15%) or glass (5%)
func randomMaterial(choose float32, sampler core.Sampler) material.Material {
	switch {
	case choose < 0.8:
		albedo := core.NewVec3(
			sampler.Get1D()*sampler.Get1D(),
			sampler.Get1D()*sampler.Get1D(),
			sampler.Get1D()*sampler.Get1D(),
		)
		return material.NewLambertian(albedo)
	case choose < 0.95:
		albedo := core.NewVec3(
			0.5*(1+sampler.Get1D()),
			0.5*(1+sampler.Get1D()),
			0.5*(1+sampler.Get1D()),
		)
		return material.NewMetal(albedo, 0.5*sampler.Get1D())
	default:
		return material.NewDielectric(1.5)
	}
}
