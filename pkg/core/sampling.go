package core

import (
	"math/rand"
)

// Sampler provides random sampling for rendering algorithms.
// Can be swapped out for deterministic testing.
//
// Every call consumes draws from the underlying stream in a fixed order, so
// the same seed always reproduces the same image.
type Sampler interface {
	Get1D() float32
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float32 in [0, 1)
func (r *RandomSampler) Get1D() float32 {
	return r.random.Float32()
}

// RandomInUnitSphere draws points in the [-1,1]³ cube until one lands strictly
// inside the unit sphere. The result is uniform over the solid ball.
func RandomInUnitSphere(sampler Sampler) Vec3 {
	for {
		p := Vec3{
			X: 2*sampler.Get1D() - 1,
			Y: 2*sampler.Get1D() - 1,
			Z: 2*sampler.Get1D() - 1,
		}
		if p.LengthSquared() < 1.0 {
			return p
		}
	}
}

// RandomInUnitDisk generates a random point in the unit disk on the z=0 plane (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for {
		p := Vec3{X: 2*sampler.Get1D() - 1, Y: 2*sampler.Get1D() - 1}
		if p.Dot(p) < 1.0 {
			return p
		}
	}
}
