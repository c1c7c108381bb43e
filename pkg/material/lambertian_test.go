package material

import (
	"errors"
	"math"
	"testing"

	"github.com/Turtyo/rayTracing3D/pkg/core"
)

func TestDiffusedColor(t *testing.T) {
	full, _ := NewDiffusionCoefficient(1, 1, 1)
	mixed, _ := NewDiffusionCoefficient(0.5, 1, 0)

	tests := []struct {
		name      string
		diffusion DiffusionCoefficient
		direction core.Vec3
		normal    core.Vec3
		expected  Color
	}{
		{
			name:      "head-on source",
			diffusion: mixed,
			direction: core.NewVec3(0, 0, 1),
			normal:    core.NewVec3(0, 0, -1),
			expected:  Color{127, 255, 0},
		},
		{
			name:      "45 degree source",
			diffusion: full,
			direction: core.NewVec3(1, 0, 1),
			normal:    core.NewVec3(0, 0, -2), // length is irrelevant
			expected:  Color{180, 180, 180},
		},
		{
			name:      "grazing source is almost black",
			diffusion: full,
			direction: core.NewVec3(1, 0, 1e-4),
			normal:    core.NewVec3(0, 0, -1),
			expected:  Color{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(core.NewPoint(0, 0, -10), tt.direction)
			got, err := DiffusedColor(White, tt.diffusion, ray, tt.normal)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDiffusedColor_FollowsCosineLaw(t *testing.T) {
	full, _ := NewDiffusionCoefficient(1, 1, 1)
	normal := core.NewVec3(0, 0, -1)

	previous := 256
	for deg := 0; deg < 90; deg += 10 {
		theta := float64(deg) * math.Pi / 180
		ray := core.NewRay(core.NewPoint(0, 0, 0), core.NewVec3(math.Sin(theta), 0, math.Cos(theta)))
		got, err := DiffusedColor(White, full, ray, normal)
		if err != nil {
			t.Fatalf("%d degrees: %v", deg, err)
		}
		want := int(255 * math.Cos(theta))
		if math.Abs(float64(int(got.R)-want)) > 1 {
			t.Errorf("%d degrees: expected ≈%d, got %d", deg, want, got.R)
		}
		if int(got.R) > previous {
			t.Errorf("Diffused light should decrease with the angle")
		}
		previous = int(got.R)
	}
}

func TestDiffusedColor_SourceBehindSurface(t *testing.T) {
	ray := core.NewRay(core.NewPoint(0, 0, -10), core.NewVec3(0, 0, 1))

	_, err := DiffusedColor(White, White.ToDiffusionCoefficient(), ray, core.NewVec3(0, 0, 1))
	if !errors.Is(err, core.ErrSourceNotVisible) {
		t.Errorf("Expected ErrSourceNotVisible, got %v", err)
	}

	_, err = DiffusedColor(White, White.ToDiffusionCoefficient(), ray, core.NewVec3(1, 0, 0))
	if !errors.Is(err, core.ErrSourceNotVisible) {
		t.Errorf("Expected ErrSourceNotVisible for a tangent source, got %v", err)
	}
}
