package geometry

import (
	"math"
	"testing"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

func newTestObject(t *testing.T, name string, center core.Point, radius float64) *Object {
	t.Helper()
	s, err := NewSphere(center, radius)
	if err != nil {
		t.Fatalf("Failed to create sphere: %v", err)
	}
	return NewObject(name, s, material.DefaultMaterial())
}

func TestIntersect(t *testing.T) {
	tests := []struct {
		name             string
		center           core.Point
		radius           float64
		origin           core.Point
		direction        core.Vec3
		expectHit        bool
		expectedDistance float64
	}{
		{
			name:             "through the center",
			center:           core.NewPoint(0, 0, 0),
			radius:           2,
			origin:           core.NewPoint(0, 0, -10),
			direction:        core.NewVec3(0, 0, 1),
			expectHit:        true,
			expectedDistance: 8,
		},
		{
			name:             "direction is normalized internally",
			center:           core.NewPoint(0, 0, 0),
			radius:           2,
			origin:           core.NewPoint(0, 0, -10),
			direction:        core.NewVec3(0, 0, 25),
			expectHit:        true,
			expectedDistance: 8,
		},
		{
			name:      "pointing away",
			center:    core.NewPoint(0, 0, 0),
			radius:    2,
			origin:    core.NewPoint(0, 0, -10),
			direction: core.NewVec3(0, 0, -1),
		},
		{
			name:      "passing beside",
			center:    core.NewPoint(0, 0, 0),
			radius:    1,
			origin:    core.NewPoint(2, 0, -10),
			direction: core.NewVec3(0, 0, 1),
		},
		{
			name:             "tangent",
			center:           core.NewPoint(0, 0, 0),
			radius:           1,
			origin:           core.NewPoint(-5, 1, 0),
			direction:        core.NewVec3(1, 0, 0),
			expectHit:        true,
			expectedDistance: 5,
		},
		{
			name:             "origin inside",
			center:           core.NewPoint(0, 0, 0),
			radius:           1,
			origin:           core.NewPoint(0, 0, 0),
			direction:        core.NewVec3(0, 1, 0),
			expectHit:        true,
			expectedDistance: 1,
		},
		{
			name:             "off-axis origin",
			center:           core.NewPoint(3, -2, 7),
			radius:           1.5,
			origin:           core.NewPoint(3, -2, 1),
			direction:        core.NewVec3(0, 0, 1),
			expectHit:        true,
			expectedDistance: 4.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := newTestObject(t, tt.name, tt.center, tt.radius)
			hit, ok, err := Intersect(core.NewRay(tt.origin, tt.direction), obj)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if ok != tt.expectHit {
				t.Fatalf("Expected hit %t, got %t", tt.expectHit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(hit.Distance-tt.expectedDistance) > 1e-9 {
				t.Errorf("Expected distance %g, got %g", tt.expectedDistance, hit.Distance)
			}
			if hit.Object != obj {
				t.Error("HitInfo should reference the intersected object")
			}
			if !obj.Shape.PointIsOnSphere(hit.Point) {
				t.Errorf("Hit point %v is not on the sphere", hit.Point)
			}
			if math.Abs(hit.Normal.Norme()-tt.radius) > 1e-9 {
				t.Errorf("Normal magnitude should be the radius, got %g", hit.Normal.Norme())
			}
		})
	}
}

func TestIntersect_TangentPoint(t *testing.T) {
	obj := newTestObject(t, "unit", core.NewPoint(0, 0, 0), 1)
	hit, ok, err := Intersect(core.NewRay(core.NewPoint(-5, 1, 0), core.NewVec3(1, 0, 0)), obj)
	if err != nil || !ok {
		t.Fatalf("Expected a tangent hit, got ok=%t err=%v", ok, err)
	}
	if !hit.Point.ApproxEqual(core.NewPoint(0, 1, 0), core.Epsilon) {
		t.Errorf("Expected tangent point (0,1,0), got %v", hit.Point)
	}
	if hit.Normal != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected normal (0,1,0), got %v", hit.Normal)
	}
}

func TestIntersect_ZeroDirection(t *testing.T) {
	obj := newTestObject(t, "unit", core.NewPoint(0, 0, 0), 1)
	if _, _, err := Intersect(core.NewRay(core.NewPoint(0, 0, -5), core.NewVec3(0, 0, 0)), obj); err == nil {
		t.Error("Expected an error for a zero direction")
	}
}

func TestFirstPointHitByRay(t *testing.T) {
	near := newTestObject(t, "near", core.NewPoint(0, 0, 0), 1)
	far := newTestObject(t, "far", core.NewPoint(0, 0, 10), 1)
	aside := newTestObject(t, "aside", core.NewPoint(10, 0, 0), 1)
	objects := []*Object{far, aside, near}

	ray := core.NewRay(core.NewPoint(0, 0, -10), core.NewVec3(0, 0, 1))

	hit, ok, err := FirstPointHitByRay(ray, objects, nil)
	if err != nil || !ok {
		t.Fatalf("Expected a hit, got ok=%t err=%v", ok, err)
	}
	if hit.Object != near {
		t.Errorf("Expected the near sphere, got %v", hit.Object)
	}

	hit, ok, _ = FirstPointHitByRay(ray, objects, near)
	if !ok || hit.Object != far {
		t.Errorf("Ignoring the near sphere should give the far one, got %v", hit)
	}

	if _, ok, _ := FirstPointHitByRay(ray, nil, nil); ok {
		t.Error("An empty scene should not be hit")
	}
	if _, ok, _ := FirstPointHitByRay(core.NewRay(core.NewPoint(0, 0, -10), core.NewVec3(0, 1, 0)), objects, nil); ok {
		t.Error("Ray pointing away from every sphere should miss")
	}
}

func TestFirstPointHitByRay_IgnoresOriginSphere(t *testing.T) {
	sphere := newTestObject(t, "origin", core.NewPoint(0, 0, 0), 1)
	other := newTestObject(t, "other", core.NewPoint(0, 0, -5), 1)
	objects := []*Object{sphere, other}

	// Leave the surface at (0,0,-1) heading outward; floating point error
	// would otherwise re-hit the origin sphere at distance ~0.
	ray := core.NewRay(core.NewPoint(0, 0, -1), core.NewVec3(0.01, 0, -1))

	hit, ok, err := FirstPointHitByRay(ray, objects, sphere)
	if err != nil || !ok {
		t.Fatalf("Expected a hit, got ok=%t err=%v", ok, err)
	}
	if hit.Object == sphere {
		t.Fatal("The ignored sphere must never be returned")
	}

	// A distinct object with the same shape is ignored as well
	twin := NewObject("twin", sphere.Shape, sphere.Material)
	hit, ok, _ = FirstPointHitByRay(ray, []*Object{twin, other}, sphere)
	if !ok || hit.Object != other {
		t.Errorf("Expected the other sphere, got %v", hit)
	}
}

func TestFirstPointHitByRay_LaterEqualHitWins(t *testing.T) {
	first := newTestObject(t, "first", core.NewPoint(0, 0, 0), 1)
	second := newTestObject(t, "second", core.NewPoint(0, 0, 0), 1)

	ray := core.NewRay(core.NewPoint(0, 0, -10), core.NewVec3(0, 0, 1))
	hit, ok, _ := FirstPointHitByRay(ray, []*Object{first, second}, nil)
	if !ok || hit.Object != second {
		t.Errorf("Expected the later object on a tie, got %v", hit)
	}
}
