package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by Create for names missing from the registry
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string
	World        *geometry.HitableList // Objects in the scene
	CameraConfig renderer.CameraConfig
}

// Camera builds the scene camera for the given image aspect ratio
func (s *Scene) Camera(aspectRatio float32) (*renderer.Camera, error) {
	config := s.CameraConfig
	config.AspectRatio = aspectRatio
	camera, err := renderer.NewCamera(config)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return camera, nil
}

// builder populates a scene, drawing any randomness from sampler
type builder func(sampler core.Sampler) *Scene

var builders = map[string]builder{
	"cover":         NewCoverScene,
	"three-spheres": NewDefaultScene,
	"horizon":       NewHorizonScene,
}

// Create builds the named scene. Builders get their own generator seeded with seed,
// independent of the one the renderer uses.
func Create(name string, seed int64) (*Scene, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownScene, name, Names())
	}
	return build(core.NewSeededSampler(seed)), nil
}
