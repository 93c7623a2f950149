package geometry

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center   core.Vec3
	Radius   float32
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float32, mat material.Material) *Sphere {
	return &Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Hit tests if a ray intersects with the sphere.
// The near root is tried before the far one, so the front surface wins when both are in range.
func (s *Sphere) Hit(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool) {
	// Vector from sphere center to ray origin
	oc := ray.Origin.Subtract(s.Center)

	// Quadratic equation coefficients: at² + 2*halfB*t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant <= 0 {
		return nil, false
	}

	sqrtD := math32.Sqrt(discriminant)
	for _, root := range [2]float32{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if root > tMin && root < tMax {
			return s.record(ray, root), true
		}
	}

	return nil, false
}

func (s *Sphere) record(ray core.Ray, t float32) *material.HitRecord {
	point := ray.At(t)
	return &material.HitRecord{
		T:        t,
		Point:    point,
		Normal:   point.Subtract(s.Center).Multiply(1.0 / s.Radius),
		Material: s.Material,
	}
}
