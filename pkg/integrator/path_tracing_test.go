package integrator

import (
	"errors"
	"math"
	"testing"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/geometry"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

func TestPathTracing_MissGivesBackground(t *testing.T) {
	pt := NewPathTracingIntegrator(3, DefaultBackground(), core.CosineWeighted)

	got, err := pt.RayColor(forward(), nil, core.NewStream(1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.ToColor() != DefaultBackground() {
		t.Errorf("Expected background, got %v", got)
	}
}

func TestPathTracing_ZeroBounces(t *testing.T) {
	pt := NewPathTracingIntegrator(0, DefaultBackground(), core.CosineWeighted)

	got, err := pt.RayColor(forward(), enclosedScene(t), core.NewStream(1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != (material.Radiance{}) {
		t.Errorf("Expected black without any bounce, got %v", got)
	}
}

func TestPathTracing_DirectEmitter(t *testing.T) {
	objects := []*geometry.Object{
		newSphereObject(t, "light", core.NewPoint(0, 0, 5), 1, whiteLight(t)),
	}
	stream := core.NewStream(1)

	for _, bounces := range []int{1, 2, 5} {
		pt := NewPathTracingIntegrator(bounces, DefaultBackground(), core.CosineWeighted)
		got, err := pt.RayColor(forward(), objects, stream)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got.ToColor() != material.White {
			t.Errorf("bounces=%d: expected white, got %v", bounces, got)
		}
	}

	// Lights absorb everything, the path stops before drawing a direction
	if stream.Drawn() != 0 {
		t.Errorf("Expected no draw for a black throughput, got %d", stream.Drawn())
	}
}

func TestPathTracing_EscapedPathIsBlack(t *testing.T) {
	// A single diffuse sphere: every bounce leaves the scene
	objects := []*geometry.Object{
		newSphereObject(t, "red", core.NewPoint(0, 0, 5), 1, redDiffuse(t)),
	}
	pt := NewPathTracingIntegrator(4, DefaultBackground(), core.CosineWeighted)

	got, err := pt.RayColor(forward(), objects, core.NewStream(1))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != (material.Radiance{}) {
		t.Errorf("An escaped path should not get the background, got %v", got)
	}
}

func TestPathTracing_BounceOnDiffuseReachesLight(t *testing.T) {
	objects := enclosedScene(t)
	pt := NewPathTracingIntegrator(2, DefaultBackground(), core.CosineWeighted)
	stream := core.NewStream(3)

	for i := 0; i < 100; i++ {
		got, err := pt.RayColor(forward(), objects, stream)
		if err != nil {
			t.Fatalf("Sample %d: unexpected error: %v", i, err)
		}
		if got != (material.Color{R: 204}) {
			t.Fatalf("Sample %d: expected rgb(204, 0, 0), got %v", i, got)
		}
	}
}

func TestPathTracing_SingleBounceDoesNotDraw(t *testing.T) {
	pt := NewPathTracingIntegrator(1, DefaultBackground(), core.CosineWeighted)
	stream := core.NewStream(1).WithLimit(0)

	got, err := pt.RayColor(forward(), enclosedScene(t), stream)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got != (material.Radiance{}) {
		t.Errorf("Expected black for a non emissive first hit, got %v", got)
	}
}

func TestPathTracing_StreamExhausted(t *testing.T) {
	pt := NewPathTracingIntegrator(3, DefaultBackground(), core.CosineWeighted)
	stream := core.NewStream(1).WithLimit(0)

	_, err := pt.RayColor(forward(), enclosedScene(t), stream)
	if !errors.Is(err, core.ErrStreamExhausted) {
		t.Errorf("Expected ErrStreamExhausted, got %v", err)
	}
}

func TestPathTracing_SchemesAgree(t *testing.T) {
	// Seen from the hit point (0, 0, 4) the light fills a cone of half-angle
	// asin(0.4) around the normal. A cosine weighted lobe puts sin² of its
	// mass in that cone, so the expected red is 204 · 0.16.
	objects := []*geometry.Object{
		newSphereObject(t, "red", core.NewPoint(0, 0, 5), 1, redDiffuse(t)),
		newSphereObject(t, "light", core.NewPoint(0, 0, -6), 4, whiteLight(t)),
	}
	// Keep the eye ray clear of the light
	ray := core.NewRay(core.NewPoint(0, 0, 2.5), core.NewVec3(0, 0, 1))
	const expected = 204 * 0.16

	means := make(map[core.SamplingScheme]float64)
	for _, scheme := range []core.SamplingScheme{core.CosineWeighted, core.UniformWeighted} {
		t.Run(scheme.String(), func(t *testing.T) {
			pt := NewPathTracingIntegrator(2, DefaultBackground(), scheme)
			stream := core.NewStream(11)

			const n = 200000
			var red float64
			for i := 0; i < n; i++ {
				got, err := pt.RayColor(ray, objects, stream)
				if err != nil {
					t.Fatalf("Unexpected error: %v", err)
				}
				if got.G != 0 || got.B != 0 {
					t.Fatalf("Only red light can leave a red sphere, got %v", got)
				}
				red += got.R
			}
			mean := red / n
			means[scheme] = mean
			if math.Abs(mean-expected) > 1.5 {
				t.Errorf("Expected a mean red of %g, got %g", expected, mean)
			}
		})
	}

	if diff := math.Abs(means[core.CosineWeighted] - means[core.UniformWeighted]); diff > 1.5 {
		t.Errorf("Sampling schemes disagree: cosine %g, uniform %g", means[core.CosineWeighted], means[core.UniformWeighted])
	}
}

func TestPathTracing_UniformSamplesExceedColorRange(t *testing.T) {
	// Uniform samples close to the normal weigh almost 2, an unclamped
	// sample can go past 255 when the light is bright enough
	objects := []*geometry.Object{
		newSphereObject(t, "white", core.NewPoint(0, 0, 5), 1, material.DefaultMaterial()),
		newSphereObject(t, "light", core.NewPoint(0, 0, -6), 4, whiteLight(t)),
	}
	ray := core.NewRay(core.NewPoint(0, 0, 2.5), core.NewVec3(0, 0, 1))
	pt := NewPathTracingIntegrator(2, DefaultBackground(), core.UniformWeighted)
	stream := core.NewStream(11)

	var brightest float64
	for i := 0; i < 20000; i++ {
		got, err := pt.RayColor(ray, objects, stream)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		brightest = math.Max(brightest, got.R)
	}
	if brightest <= 255 {
		t.Errorf("Expected weighted samples above 255, brightest was %g", brightest)
	}
}

func TestPathTracing_Deterministic(t *testing.T) {
	objects := []*geometry.Object{
		newSphereObject(t, "red", core.NewPoint(0, 0, 5), 1, redDiffuse(t)),
		newSphereObject(t, "light", core.NewPoint(0, 0, -6), 4, whiteLight(t)),
	}
	ray := core.NewRay(core.NewPoint(0, 0, 2.5), core.NewVec3(0, 0, 1))
	pt := NewPathTracingIntegrator(3, DefaultBackground(), core.CosineWeighted)

	a, b := core.NewStream(5), core.NewStream(5)
	for i := 0; i < 200; i++ {
		ca, errA := pt.RayColor(ray, objects, a)
		cb, errB := pt.RayColor(ray, objects, b)
		if errA != nil || errB != nil {
			t.Fatalf("Unexpected errors: %v, %v", errA, errB)
		}
		if ca != cb {
			t.Fatalf("Sample %d differs: %v vs %v", i, ca, cb)
		}
	}
}
