package scene

import (
	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// NewRedLightScene creates a white light next to a red diffuse sphere. Every
// lit pixel of the sphere has zero green and blue.
func NewRedLightScene() (*Scene, error) {
	s := NewScene("red-light")
	s.Sampling.SamplesPerPixel = 20
	s.Sampling.Bounces = 2

	red, err := material.NewDiffusionCoefficient(0.8, 0, 0)
	if err != nil {
		return nil, err
	}
	light, err := material.NewLight(material.White, 1)
	if err != nil {
		return nil, err
	}

	if err := s.Add("red", core.NewPoint(0, 0, 10), 3, material.NewDiffuse(red)); err != nil {
		return nil, err
	}
	if err := s.Add("light", core.NewPoint(-8, -6, 4), 3, light); err != nil {
		return nil, err
	}
	return s, nil
}

// NewEmptyScene creates a scene without objects, every pixel is background
func NewEmptyScene() (*Scene, error) {
	return NewScene("empty"), nil
}
