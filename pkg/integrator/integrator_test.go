package integrator

import (
	"testing"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/geometry"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// eye is where every test ray starts
var eye = core.NewPoint(0, 0, -1)

func forward() core.Ray {
	return core.NewRay(eye, core.NewVec3(0, 0, 1))
}

func newSphereObject(t *testing.T, name string, center core.Point, radius float64, mat material.Material) *geometry.Object {
	t.Helper()
	s, err := geometry.NewSphere(center, radius)
	if err != nil {
		t.Fatalf("Failed to create sphere: %v", err)
	}
	return geometry.NewObject(name, s, mat)
}

func whiteLight(t *testing.T) material.Material {
	t.Helper()
	m, err := material.NewLight(material.White, 1)
	if err != nil {
		t.Fatalf("Failed to create light: %v", err)
	}
	return m
}

func redDiffuse(t *testing.T) material.Material {
	t.Helper()
	d, err := material.NewDiffusionCoefficient(0.8, 0, 0)
	if err != nil {
		t.Fatalf("Failed to create diffusion coefficient: %v", err)
	}
	return material.NewDiffuse(d)
}

// enclosedScene puts a red diffuse sphere in front of the eye, inside a
// large white light that catches every bounce.
func enclosedScene(t *testing.T) []*geometry.Object {
	return []*geometry.Object{
		newSphereObject(t, "red", core.NewPoint(0, 0, 5), 1, redDiffuse(t)),
		newSphereObject(t, "light", core.NewPoint(0, 0, 0), 100, whiteLight(t)),
	}
}

func TestDefaultBackground(t *testing.T) {
	if got := DefaultBackground(); got != (material.Color{R: 127, G: 127, B: 127}) {
		t.Errorf("Expected mid grey, got %v", got)
	}
}
