package material

import (
	"github.com/chewxy/math32"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// Dielectric represents a transparent material like glass that can both reflect and refract
type Dielectric struct {
	RefractiveIndex float32 // Index of refraction (e.g., 1.5 for glass)
}

// NewDielectric creates a new dielectric material
func NewDielectric(refractiveIndex float32) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex}
}

// Scatter implements the Material interface for dielectric scattering
func (d *Dielectric) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	// Clear glass absorbs no color
	attenuation := core.NewVec3(1.0, 1.0, 1.0)

	direction := rayIn.Direction
	reflected := Reflect(direction, hit.Normal)

	// The hit normal always points out of the sphere; a positive dot means the ray is leaving the medium
	var outwardNormal core.Vec3
	var niOverNt, cosine float32
	if dot := direction.Dot(hit.Normal); dot > 0 {
		outwardNormal = hit.Normal.Negate()
		niOverNt = d.RefractiveIndex
		cosine = d.RefractiveIndex * dot / direction.Length()
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1.0 / d.RefractiveIndex
		cosine = -dot / direction.Length()
	}

	reflectProb := float32(1.0)
	refracted, canRefract := Refract(direction, outwardNormal, niOverNt)
	if canRefract {
		reflectProb = Schlick(cosine, d.RefractiveIndex)
	}

	// Always draw so total internal reflection consumes the same number of samples
	scattered := core.NewRay(hit.Point, refracted)
	if sampler.Get1D() < reflectProb {
		scattered = core.NewRay(hit.Point, reflected)
	}

	return ScatterResult{
		Scattered:   scattered,
		Attenuation: attenuation,
	}, true
}

// Refract bends v through a surface with unit normal n using Snell's law.
// It returns false on total internal reflection.
func Refract(v, n core.Vec3, niOverNt float32) (core.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1.0 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return core.Vec3{}, false
	}
	return uv.Subtract(n.Multiply(dt)).Multiply(niOverNt).Subtract(n.Multiply(math32.Sqrt(discriminant))), true
}

// Schlick approximates the Fresnel reflectance for a given cosine and refraction index
func Schlick(cosine, refractiveIndex float32) float32 {
	r0 := (1 - refractiveIndex) / (1 + refractiveIndex)
	r0 = r0 * r0
	return r0 + (1-r0)*math32.Pow(1-cosine, 5)
}
