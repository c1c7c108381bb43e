package geometry

import (
	"fmt"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// Object is a sphere with its material. Scenes hold objects by pointer and
// never mutate them during a render.
type Object struct {
	Name     string
	Shape    Sphere
	Material material.Material
}

// NewObject creates a new object
func NewObject(name string, shape Sphere, mat material.Material) *Object {
	return &Object{Name: name, Shape: shape, Material: mat}
}

func (o *Object) String() string {
	if o.Name != "" {
		return fmt.Sprintf("%s %v", o.Name, o.Shape)
	}
	return o.Shape.String()
}

// HitInfo contains information about a ray-object intersection
type HitInfo struct {
	Object   *Object    // Object that was hit, borrowed from the scene
	Point    core.Point // Point of intersection
	Normal   core.Vec3  // Outward normal, magnitude equal to the radius
	Distance float64    // Distance along the unit ray direction
}
