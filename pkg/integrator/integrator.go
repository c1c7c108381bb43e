package integrator

import (
	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/geometry"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the light carried back along one eye ray. Every
	// random draw comes from stream, so a fixed stream gives a fixed result.
	// The radiance is not clamped, callers average samples before clamping.
	RayColor(ray core.Ray, objects []*geometry.Object, stream *core.Stream) (material.Radiance, error)
}

// DefaultBackground is the color returned for eye rays that leave the scene
func DefaultBackground() material.Color {
	// 0.5 is a valid unit intensity, the error can be ignored
	bg, _ := material.NewColorFromUnit(0.5, 0.5, 0.5)
	return bg
}
