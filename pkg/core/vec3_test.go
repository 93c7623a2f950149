package core

import (
	"errors"
	"math"
	"testing"

	"github.com/golang/geo/r3"
)

func toR3(v Vec3) r3.Vector {
	return r3.Vector{X: float64(v.X), Y: float64(v.Y), Z: float64(v.Z)}
}

func closeToR3(v Vec3, ref r3.Vector, tolerance float64) bool {
	return math.Abs(float64(v.X)-ref.X) <= tolerance &&
		math.Abs(float64(v.Y)-ref.Y) <= tolerance &&
		math.Abs(float64(v.Z)-ref.Z) <= tolerance
}

func TestVec3_MatchesFloat64Reference(t *testing.T) {
	a := NewVec3(1.5, -2.25, 3)
	b := NewVec3(-0.5, 4, 0.75)
	ra, rb := toR3(a), toR3(b)

	const tolerance = 1e-5

	tests := []struct {
		name     string
		got      Vec3
		expected r3.Vector
	}{
		{"Add", a.Add(b), ra.Add(rb)},
		{"Subtract", a.Subtract(b), ra.Sub(rb)},
		{"Multiply", a.Multiply(2.5), ra.Mul(2.5)},
		{"Cross", a.Cross(b), ra.Cross(rb)},
		{"Normalize", a.Normalize(), ra.Normalize()},
		{"Negate", a.Negate(), ra.Mul(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !closeToR3(tt.got, tt.expected, tolerance) {
				t.Errorf("Expected %v, got %v", tt.expected, tt.got)
			}
		})
	}

	if got, want := float64(a.Dot(b)), ra.Dot(rb); math.Abs(got-want) > tolerance {
		t.Errorf("Dot: expected %f, got %f", want, got)
	}
	if got, want := float64(a.Length()), ra.Norm(); math.Abs(got-want) > tolerance {
		t.Errorf("Length: expected %f, got %f", want, got)
	}
	if got, want := float64(a.LengthSquared()), ra.Norm2(); math.Abs(got-want) > tolerance {
		t.Errorf("LengthSquared: expected %f, got %f", want, got)
	}
}

func TestVec3_MultiplyVec(t *testing.T) {
	got := NewVec3(0.5, 2, -1).MultiplyVec(NewVec3(4, 0.25, 3))
	want := NewVec3(2, 0.5, -3)
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestVec3_Lerp(t *testing.T) {
	white := NewVec3(1, 1, 1)
	sky := NewVec3(0.5, 0.7, 1.0)

	if got := white.Lerp(sky, 0); got != white {
		t.Errorf("Lerp(0) should return start, got %v", got)
	}
	if got := white.Lerp(sky, 1); got != sky {
		t.Errorf("Lerp(1) should return end, got %v", got)
	}
	mid := white.Lerp(sky, 0.5)
	if math.Abs(float64(mid.X)-0.75) > 1e-6 || math.Abs(float64(mid.Y)-0.85) > 1e-6 || mid.Z != 1 {
		t.Errorf("Lerp(0.5) expected (0.75, 0.85, 1), got %v", mid)
	}
}

func TestVec3_TryNormalizeZero(t *testing.T) {
	_, err := Vec3{}.TryNormalize()
	if !errors.Is(err, ErrZeroVector) {
		t.Fatalf("Expected ErrZeroVector, got %v", err)
	}
}

func TestVec3_NormalizeZeroPanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Expected panic when normalizing zero vector")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrZeroVector) {
			t.Errorf("Expected panic with ErrZeroVector, got %v", r)
		}
	}()
	_ = Vec3{}.Normalize()
}

func TestVec3_ClampAndSqrt(t *testing.T) {
	got := NewVec3(-0.5, 0.25, 4).Clamp(0, 1).Sqrt()
	want := NewVec3(0, 0.5, 1)
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestVec3_IsFinite(t *testing.T) {
	if !NewVec3(1, 2, 3).IsFinite() {
		t.Error("Expected finite vector")
	}
	inf := float32(math.Inf(1))
	if NewVec3(inf, 0, 0).IsFinite() {
		t.Error("Expected infinite component to be reported")
	}
	nan := float32(math.NaN())
	if NewVec3(0, nan, 0).IsFinite() {
		t.Error("Expected NaN component to be reported")
	}
}

func TestRay_At(t *testing.T) {
	ray := NewRay(NewVec3(1, 2, 3), NewVec3(0, 0, -2))
	if got, want := ray.At(1.5), NewVec3(1, 2, 0); got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
