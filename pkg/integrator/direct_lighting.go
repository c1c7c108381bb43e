package integrator

import (
	"errors"
	"fmt"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/geometry"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// DirectLightingIntegrator shades the first hit with shadow rays cast from
// the center of every emissive sphere. There is no indirect light and no
// randomness, the stream is left untouched.
type DirectLightingIntegrator struct {
	Background material.Color
}

// NewDirectLightingIntegrator creates a new direct lighting integrator
func NewDirectLightingIntegrator(background material.Color) *DirectLightingIntegrator {
	return &DirectLightingIntegrator{Background: background}
}

// RayColor computes the directly lit color seen along ray
func (dl *DirectLightingIntegrator) RayColor(ray core.Ray, objects []*geometry.Object, _ *core.Stream) (material.Radiance, error) {
	hit, isHit, err := geometry.FirstPointHitByRay(ray, objects, nil)
	if err != nil {
		return material.Radiance{}, err
	}
	if !isHit {
		return material.RadianceOf(dl.Background), nil
	}

	color := hit.Object.Material.Emitted()
	for _, emitter := range objects {
		if emitter == hit.Object || !emitter.Material.IsEmissive() {
			continue
		}
		c, err := dl.lightFrom(emitter, hit, objects)
		if err != nil {
			return material.Radiance{}, fmt.Errorf("light %v on %v: %w", emitter, hit.Object, err)
		}
		color = color.Add(c)
	}
	return material.RadianceOf(color), nil
}

// lightFrom returns what hit receives from emitter
func (dl *DirectLightingIntegrator) lightFrom(emitter *geometry.Object, hit *geometry.HitInfo, objects []*geometry.Object) (material.Color, error) {
	visible, err := geometry.EmitterIsVisibleFrom(objects, emitter, hit)
	if err != nil || !visible {
		return material.Black, err
	}

	source := emitter.Shape.Center
	sourceRay, err := core.NewRayFromPoints(source, hit.Point)
	if err != nil {
		return material.Black, err
	}
	c, err := material.DiffusedColor(emitter.Material.Emitted(), hit.Object.Material.Diffusion(), sourceRay, hit.Normal)
	if errors.Is(err, core.ErrSourceNotVisible) {
		// Source exactly on the tangent plane
		return material.Black, nil
	}
	return c, err
}
