package core

import (
	"errors"
	"math"
	"testing"
)

func TestStream_Deterministic(t *testing.T) {
	a := NewStream(1)
	b := NewStream(1)

	for i := 0; i < 100; i++ {
		pa, errA := a.UnitSphere()
		pb, errB := b.UnitSphere()
		if errA != nil || errB != nil {
			t.Fatalf("Unexpected errors: %v, %v", errA, errB)
		}
		if pa != pb {
			t.Fatalf("Draw %d differs: %v vs %v", i, pa, pb)
		}
	}

	c := NewStream(2)
	pa, _ := NewStream(1).UnitSphere()
	pc, _ := c.UnitSphere()
	if pa == pc {
		t.Error("Different seeds should give different draws")
	}
}

func TestStream_Derive(t *testing.T) {
	root := NewStream(42)

	first, _ := root.Derive(3, 7).UnitSphere()
	again, _ := root.Derive(3, 7).UnitSphere()
	if first != again {
		t.Errorf("Derived streams with the same keys should match: %v vs %v", first, again)
	}

	swapped, _ := root.Derive(7, 3).UnitSphere()
	if first == swapped {
		t.Error("Key order should matter for derived streams")
	}

	if root.Drawn() != 0 {
		t.Errorf("Deriving should not consume draws, got %d", root.Drawn())
	}
}

func TestStream_Exhausted(t *testing.T) {
	s := NewStream(1).WithLimit(3)
	for i := 0; i < 3; i++ {
		if _, err := s.UnitSphere(); err != nil {
			t.Fatalf("Draw %d: unexpected error %v", i, err)
		}
	}
	if _, err := s.UnitSphere(); !errors.Is(err, ErrStreamExhausted) {
		t.Fatalf("Expected ErrStreamExhausted, got %v", err)
	}
	if _, _, err := s.Jitter(); !errors.Is(err, ErrStreamExhausted) {
		t.Fatalf("Expected ErrStreamExhausted from Jitter, got %v", err)
	}
}

func TestStream_UnitSphereIsUnit(t *testing.T) {
	s := NewStream(7)
	var mean Vec3
	const n = 50000
	for i := 0; i < n; i++ {
		p, err := s.UnitSphere()
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(p.Norme()-1) > 1e-12 {
			t.Fatalf("Point %v is not on the unit sphere", p)
		}
		mean = mean.Add(p)
	}
	mean = mean.Multiply(1.0 / n)
	if mean.Norme() > 0.02 {
		t.Errorf("Uniform sphere points should average to the origin, got %v", mean)
	}
}

func TestCosWeightedRandomRay_Distribution(t *testing.T) {
	stream := NewStream(1)
	normal := NewVec3(0, 0, 3) // deliberately not unit length
	origin := NewPoint(1, 2, 3)
	unitNormal := NewVec3(0, 0, 1)

	const n = 200000
	var sum float64
	for i := 0; i < n; i++ {
		ray, err := CosWeightedRandomRay(origin, normal, stream)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if ray.Origin != origin {
			t.Fatalf("Ray should leave from the hit point, got %v", ray.Origin)
		}
		if math.Abs(ray.Direction.Norme()-1) > 1e-9 {
			t.Fatalf("Direction not unit: %v", ray.Direction)
		}
		cos := ray.Direction.Dot(unitNormal)
		if cos < -1e-12 {
			t.Fatalf("Direction below the hemisphere: cos=%g", cos)
		}
		sum += cos
	}

	// E[cosθ] = 2/3 for a cosine-weighted hemisphere
	mean := sum / n
	if math.Abs(mean-2.0/3.0) > 0.01 {
		t.Errorf("mean cos = %g, want ≈ %g", mean, 2.0/3.0)
	}
}

func TestUniformWeightedRandomRay_Distribution(t *testing.T) {
	stream := NewStream(1)
	normal := NewVec3(1, 0, 0)

	const n = 200000
	var sum float64
	for i := 0; i < n; i++ {
		ray, err := UniformWeightedRandomRay(NewPoint(0, 0, 0), normal, stream)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		cos := ray.Direction.Dot(normal)
		if cos < 0 {
			t.Fatalf("Direction below the hemisphere: cos=%g", cos)
		}
		sum += cos
	}

	// E[cosθ] = 1/2 for a uniform hemisphere
	mean := sum / n
	if math.Abs(mean-0.5) > 0.01 {
		t.Errorf("mean cos = %g, want ≈ 0.5", mean)
	}
}

func TestCosWeightedRandomRay_ZeroNormal(t *testing.T) {
	_, err := CosWeightedRandomRay(NewPoint(0, 0, 0), NewVec3(0, 0, 0), NewStream(1))
	if !errors.Is(err, ErrZeroMagnitudeVector) {
		t.Errorf("Expected ErrZeroMagnitudeVector, got %v", err)
	}
}

func TestParseSamplingScheme(t *testing.T) {
	tests := []struct {
		input    string
		expected SamplingScheme
		wantErr  bool
	}{
		{"", CosineWeighted, false},
		{"cosine", CosineWeighted, false},
		{"uniform", UniformWeighted, false},
		{"stratified", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSamplingScheme(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
