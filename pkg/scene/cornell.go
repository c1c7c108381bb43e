package scene

import (
	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// wallRadius makes the wall spheres flat across the field of view
const wallRadius = 1e4

// NewCornellScene creates a Cornell box whose walls are very large spheres,
// lit by a small sphere light poking through the ceiling. The light's center
// stays inside the box since shadow rays are cast from it. The y axis points
// down, so the floor is at y = +5.
func NewCornellScene() (*Scene, error) {
	s := NewScene("cornell")
	s.Sampling.SamplesPerPixel = 32
	s.Sampling.Bounces = 4

	diffuse := func(r, g, b float64) (material.Material, error) {
		d, err := material.NewDiffusionCoefficient(r, g, b)
		if err != nil {
			return material.Material{}, err
		}
		return material.NewDiffuse(d), nil
	}

	white, err := diffuse(0.73, 0.73, 0.73)
	if err != nil {
		return nil, err
	}
	red, err := diffuse(0.65, 0.05, 0.05)
	if err != nil {
		return nil, err
	}
	green, err := diffuse(0.12, 0.45, 0.15)
	if err != nil {
		return nil, err
	}
	pale, err := diffuse(0.8, 0.8, 0.9)
	if err != nil {
		return nil, err
	}
	ivory, err := diffuse(0.9, 0.9, 0.5)
	if err != nil {
		return nil, err
	}
	light, err := material.NewLight(material.White, 1)
	if err != nil {
		return nil, err
	}

	// Box spans x in [-9, 9], y in [-5, 5] and ends at z = 20
	objects := []struct {
		name   string
		center core.Point
		radius float64
		mat    material.Material
	}{
		{"left wall", core.NewPoint(-9-wallRadius, 0, 10), wallRadius, red},
		{"right wall", core.NewPoint(9+wallRadius, 0, 10), wallRadius, green},
		{"floor", core.NewPoint(0, 5+wallRadius, 10), wallRadius, white},
		{"ceiling", core.NewPoint(0, -5-wallRadius, 10), wallRadius, white},
		{"back wall", core.NewPoint(0, 0, 20+wallRadius), wallRadius, white},
		{"ceiling light", core.NewPoint(0, -4.4, 12), 1, light},
		{"left sphere", core.NewPoint(-4, 2.5, 13), 2.5, pale},
		{"right sphere", core.NewPoint(4, 2, 10), 3, ivory},
	}
	for _, obj := range objects {
		if err := s.Add(obj.name, obj.center, obj.radius, obj.mat); err != nil {
			return nil, err
		}
	}
	return s, nil
}
