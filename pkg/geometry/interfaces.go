package geometry

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

// Hitable interface for objects that can be hit by rays
type Hitable interface {
	// Hit reports the closest intersection with t strictly inside (tMin, tMax)
	Hit(ray core.Ray, tMin, tMax float32) (*material.HitRecord, bool)
}
