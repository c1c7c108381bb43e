package scene

import (
	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// NewSomeSpheresScene creates four small colored spheres resting on a large
// support sphere, lit by a big white light off to the right
func NewSomeSpheresScene() (*Scene, error) {
	s := NewScene("some-spheres")

	supportDiffusion, err := material.NewDiffusionCoefficient(186.0/255, 181.0/255, 120.0/255)
	if err != nil {
		return nil, err
	}
	light, err := material.NewLight(material.White, 1)
	if err != nil {
		return nil, err
	}

	spheres := []struct {
		name   string
		center core.Point
		radius float64
		mat    material.Material
	}{
		{"support", core.NewPoint(0, 40, 40), 40, material.NewDiffuse(supportDiffusion)},
		{"green", core.NewPoint(14.4437385751, 0.7296131655, 40), 2, material.NewDiffuse(material.Green.ToDiffusionCoefficient())},
		{"blue", core.NewPoint(9.0200152824, -1.9883262324, 40), 3, material.NewDiffuse(material.Blue.ToDiffusionCoefficient())},
		{"red", core.NewPoint(0.8040704898, -5.012849843, 40), 5, material.NewDiffuse(material.Red.ToDiffusionCoefficient())},
		{"white", core.NewPoint(-14.4200019067, -7.7571493705, 40), 10, material.NewDiffuse(material.White.ToDiffusionCoefficient())},
		{"light", core.NewPoint(200, -30, 30), 50, light},
	}
	for _, sp := range spheres {
		if err := s.Add(sp.name, sp.center, sp.radius, sp.mat); err != nil {
			return nil, err
		}
	}
	return s, nil
}
