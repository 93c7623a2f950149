package material

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// constSampler always returns the same value
type constSampler float32

func (c constSampler) Get1D() float32 { return float32(c) }

func vecClose(a, b core.Vec3, tolerance float32) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestReflect(t *testing.T) {
	tests := []struct {
		name     string
		v        core.Vec3
		n        core.Vec3
		expected core.Vec3
	}{
		{"head on", core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0), core.NewVec3(0, 1, 0)},
		{"45 degrees", core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0), core.NewVec3(1, 1, 0)},
		{"parallel to surface", core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), core.NewVec3(1, 0, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Reflect(tt.v, tt.n); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestMaterialsImplementInterface(t *testing.T) {
	var _ Material = NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	var _ Material = NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0.1)
	var _ Material = NewDielectric(1.5)
}

func TestSchlick(t *testing.T) {
	// Normal incidence reduces to R0 = ((1-n)/(1+n))^2
	if got := Schlick(1, 1.5); math.Abs(float64(got)-0.04) > 1e-6 {
		t.Errorf("Expected R0=0.04 at normal incidence, got %f", got)
	}
	// Grazing incidence reflects everything
	if got := Schlick(0, 1.5); math.Abs(float64(got)-1) > 1e-6 {
		t.Errorf("Expected reflectance 1 at grazing incidence, got %f", got)
	}
	// Reflectance grows toward grazing angles
	if Schlick(0.3, 1.5) <= Schlick(0.9, 1.5) {
		t.Error("Expected reflectance to increase as the angle becomes more grazing")
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	normal := core.NewVec3(0, 1, 0)
	incoming := core.NewVec3(1, -1, 0) // 45 degrees, unnormalized on purpose

	refracted, ok := Refract(incoming, normal, 1.0/1.5)
	if !ok {
		t.Fatal("Expected refraction from air into glass")
	}

	sinIn := float64(incoming.Normalize().X)
	sinOut := float64(refracted.Normalize().X)
	if math.Abs(sinIn/1.5-sinOut) > 1e-5 {
		t.Errorf("Snell's law violated: sin(in)/1.5=%f, sin(out)=%f", sinIn/1.5, sinOut)
	}
	if math.Abs(float64(refracted.Length())-1) > 1e-5 {
		t.Errorf("Refracted direction should be unit length, got %f", refracted.Length())
	}
	if refracted.Y >= 0 {
		t.Errorf("Refracted ray should continue into the surface, got %v", refracted)
	}
}

func TestRefract_TotalInternalReflection(t *testing.T) {
	// Leaving glass at a shallow angle against the inward-facing normal
	_, ok := Refract(core.NewVec3(1, 0.1, 0), core.NewVec3(0, -1, 0), 1.5)
	if ok {
		t.Error("Expected total internal reflection")
	}
}

func TestLambertian_AlwaysScatters(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.3, 0.3)
	lambertian := NewLambertian(albedo)
	sampler := core.NewSeededSampler(42)

	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{Point: core.NewVec3(1, 2, 3), Normal: normal, T: 1, Material: lambertian}
	ray := core.NewRay(core.NewVec3(1, 2, 5), core.NewVec3(0, 0, -1))

	for i := 0; i < 1000; i++ {
		scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
		if !didScatter {
			t.Fatal("Lambertian should always scatter")
		}
		if scatter.Attenuation != albedo {
			t.Fatalf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
		}
		if scatter.Scattered.Origin != hit.Point {
			t.Fatalf("Scattered ray should start at the hit point, got %v", scatter.Scattered.Origin)
		}
		// Direction is normal + a point inside the unit sphere
		if scatter.Scattered.Direction.Subtract(normal).Length() >= 1 {
			t.Fatalf("Direction %v is not within the unit sphere around the normal", scatter.Scattered.Direction)
		}
		if scatter.Scattered.Direction.Dot(normal) <= 0 {
			t.Fatalf("Diffuse direction should leave the surface, got %v", scatter.Scattered.Direction)
		}
	}
}

func TestNewMetal_FuzzClamp(t *testing.T) {
	tests := []struct {
		name         string
		inputFuzz    float32
		expectedFuzz float32
	}{
		{"Valid fuzz 0.0", 0.0, 0.0},
		{"Valid fuzz 0.5", 0.5, 0.5},
		{"Valid fuzz 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzz)
			if metal.Fuzz != tt.expectedFuzz {
				t.Errorf("Expected fuzz %f, got %f", tt.expectedFuzz, metal.Fuzz)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	albedo := core.NewVec3(0.9, 0.9, 0.9)
	metal := NewMetal(albedo, 0.0)

	// Ray hitting surface at 45 degrees
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -1, -1))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scatter, didScatter := metal.Scatter(rayIn, hit, core.NewSeededSampler(42))
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	expected := core.NewVec3(0, -1, 1).Normalize()
	if !vecClose(scatter.Scattered.Direction, expected, 1e-6) {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scatter.Scattered.Direction)
	}
	if scatter.Attenuation != albedo {
		t.Errorf("Attenuation should equal albedo: expected %v, got %v", albedo, scatter.Attenuation)
	}
}

func TestMetal_AbsorbsWhenFuzzPointsIntoSurface(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.7, 0.6, 0.5), 1.0)

	// Grazing ray: the ideal reflection barely leaves the surface
	rayIn := core.NewRay(core.NewVec3(-1, 0.01, 0), core.NewVec3(1, -0.01, 0))
	hit := HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 1, 0),
	}

	// 0.25 maps to the perturbation (-0.5, -0.5, -0.5), pushing the reflection below the surface
	_, didScatter := metal.Scatter(rayIn, hit, constSampler(0.25))
	if didScatter {
		t.Error("Expected metal to absorb a fuzzed reflection pointing into the surface")
	}

	// 0.75 maps to (0.5, 0.5, 0.5), keeping it above
	scatter, didScatter := metal.Scatter(rayIn, hit, constSampler(0.75))
	if !didScatter {
		t.Fatal("Expected metal to scatter when the fuzzed reflection leaves the surface")
	}
	if scatter.Scattered.Direction.Dot(hit.Normal) <= 0 {
		t.Errorf("Scattered direction must be above the surface, got %v", scatter.Scattered.Direction)
	}
}

func TestDielectric_AlwaysScattersWithWhiteAttenuation(t *testing.T) {
	glass := NewDielectric(1.5)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(1, -1, 0))
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), T: 1, Material: glass}

	sampler := core.NewSeededSampler(42)
	hasReflection, hasRefraction := false, false
	for i := 0; i < 2000; i++ {
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != core.NewVec3(1, 1, 1) {
			t.Fatalf("Expected white attenuation, got %v", result.Attenuation)
		}
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	if !hasRefraction {
		t.Error("Expected refraction in most samples")
	}
	// Schlick gives roughly 5% reflectance at 45 degrees
	if !hasReflection {
		t.Error("Expected at least one Fresnel reflection in 2000 samples")
	}
}

func TestDielectric_IndexOneIsNoOp(t *testing.T) {
	air := NewDielectric(1.0)
	normal := core.NewVec3(0, 1, 0)

	tests := []struct {
		name      string
		direction core.Vec3
	}{
		{"entering", core.NewVec3(1, -1, 0)},
		{"exiting", core.NewVec3(0.3, 1, -0.2)},
		{"head on", core.NewVec3(0, -2, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewVec3(0, 0, 0), tt.direction)
			hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal, Material: air}

			// A draw near 1 always loses against the tiny Schlick term, so the ray refracts
			result, scattered := air.Scatter(ray, hit, constSampler(0.99))
			if !scattered {
				t.Fatal("Dielectric should always scatter")
			}

			expected := tt.direction.Normalize()
			if !vecClose(result.Scattered.Direction.Normalize(), expected, 1e-5) {
				t.Errorf("Expected unbent direction %v, got %v", expected, result.Scattered.Direction)
			}
		})
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Inside the glass heading out at a shallow angle: the outward normal and the ray agree in sign
	direction := core.NewVec3(1, 0.1, 0)
	ray := core.NewRay(core.NewVec3(0, -1, 0), direction)
	hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: core.NewVec3(0, 1, 0), Material: glass}

	for _, draw := range []float32{0, 0.5, 0.999} {
		result, scattered := glass.Scatter(ray, hit, constSampler(draw))
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		expected := Reflect(direction, hit.Normal)
		if result.Scattered.Direction != expected {
			t.Errorf("Draw %f: expected reflection %v, got %v", draw, expected, result.Scattered.Direction)
		}
		if result.Scattered.Direction.Y >= 0 {
			t.Errorf("Reflected ray should stay inside (going down), got %v", result.Scattered.Direction)
		}
	}
}
