package integrator

import (
	"fmt"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/geometry"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// PathTracingIntegrator implements unidirectional path tracing over diffuse
// spheres. Each hit adds its emission weighted by the path throughput, then
// the path continues in a direction drawn from the sampling scheme.
type PathTracingIntegrator struct {
	Bounces    int
	Background material.Color
	Scheme     core.SamplingScheme
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(bounces int, background material.Color, scheme core.SamplingScheme) *PathTracingIntegrator {
	return &PathTracingIntegrator{
		Bounces:    bounces,
		Background: background,
		Scheme:     scheme,
	}
}

// RayColor computes the color for a single eye ray
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, objects []*geometry.Object, stream *core.Stream) (material.Radiance, error) {
	throughput := material.White
	var light material.Radiance
	// Extra estimator weight for schemes that are not cosine distributed
	weight := 1.0
	var lastHit *geometry.Object

	for bounce := 0; bounce < pt.Bounces; bounce++ {
		hit, isHit, err := geometry.FirstPointHitByRay(ray, objects, lastHit)
		if err != nil {
			return material.Radiance{}, err
		}
		if !isHit {
			if bounce == 0 {
				return material.RadianceOf(pt.Background), nil
			}
			// The path escaped the scene
			break
		}

		mat := hit.Object.Material
		light = light.Add(material.RadianceOf(throughput.Multiply(mat.Emitted())).Scale(weight))
		throughput = throughput.Filter(mat.Diffusion())
		if throughput.IsBlack() || bounce == pt.Bounces-1 {
			break
		}

		ray, err = pt.Scheme.Sample(hit.Point, hit.Normal, stream)
		if err != nil {
			return material.Radiance{}, fmt.Errorf("bounce %d on %v: %w", bounce, hit.Object, err)
		}
		weight *= pt.sampleWeight(ray, hit.Normal)
		lastHit = hit.Object
	}

	return light, nil
}

// sampleWeight is the ratio between the cosine-weighted density and the
// density of the scheme that produced ray
func (pt *PathTracingIntegrator) sampleWeight(ray core.Ray, normal core.Vec3) float64 {
	if pt.Scheme != core.UniformWeighted {
		return 1
	}
	unitNormal, err := normal.Normalize()
	if err != nil {
		return 0
	}
	return 2 * ray.Direction.Dot(unitNormal)
}
