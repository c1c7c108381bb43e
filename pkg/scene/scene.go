package scene

import (
	"fmt"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/geometry"
	"github.com/Turtyo/rayTracing3D/pkg/integrator"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name        string
	Description string
	Objects     []*geometry.Object // Spheres in the scene, read-only during a render
	Sampling    SamplingConfig
	Grid        GridConfig
	Background  material.Color // Seen by eye rays that miss every object
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int                 // Number of eye rays per pixel
	Bounces         int                 // Maximum number of hits along a path
	Scheme          core.SamplingScheme // Bounce direction sampling
}

// GridConfig describes the pixel grid the eye looks through
type GridConfig struct {
	Width     int
	Height    int
	PixelSize float64
}

// DefaultSamplingConfig returns 3 samples per pixel and a single bounce
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 3,
		Bounces:         1,
		Scheme:          core.CosineWeighted,
	}
}

// DefaultGridConfig returns a full HD grid of 1e-2 wide pixels
func DefaultGridConfig() GridConfig {
	return GridConfig{Width: 1920, Height: 1080, PixelSize: 1e-2}
}

// NewScene creates an empty scene with default sampling, grid and background
func NewScene(name string) *Scene {
	return &Scene{
		Name:       name,
		Objects:    make([]*geometry.Object, 0),
		Sampling:   DefaultSamplingConfig(),
		Grid:       DefaultGridConfig(),
		Background: integrator.DefaultBackground(),
	}
}

// Add appends a sphere built from center, radius and material
func (s *Scene) Add(name string, center core.Point, radius float64, mat material.Material) error {
	sphere, err := geometry.NewSphere(center, radius)
	if err != nil {
		return fmt.Errorf("object %q: %w", name, err)
	}
	s.Objects = append(s.Objects, geometry.NewObject(name, sphere, mat))
	return nil
}

// Lights returns the emissive objects
func (s *Scene) Lights() []*geometry.Object {
	var lights []*geometry.Object
	for _, obj := range s.Objects {
		if obj.Material.IsEmissive() {
			lights = append(lights, obj)
		}
	}
	return lights
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

func (s *Scene) String() string {
	return fmt.Sprintf("scene %q (%d spheres, %d lights)", s.Name, len(s.Objects), len(s.Lights()))
}
