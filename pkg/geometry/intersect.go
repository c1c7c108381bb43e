package geometry

import (
	"fmt"
	"math"

	"github.com/Turtyo/rayTracing3D/pkg/core"
)

// Intersect tests if a ray hits the object's sphere.
//
// With u the unit ray direction and CO the vector from the center to the ray
// origin, hit distances d solve d² + bd + c = 0 where b = 2(u·CO) and
// c = |CO|² - r². The smallest non-negative root is kept; spheres entirely
// behind the origin are missed.
func Intersect(ray core.Ray, obj *Object) (*HitInfo, bool, error) {
	u, err := ray.Direction.Normalize()
	if err != nil {
		return nil, false, fmt.Errorf("intersecting %v: %w", obj, err)
	}

	co := obj.Shape.Center.VectorTo(ray.Origin)
	b := 2 * u.Dot(co)
	c := co.Dot(co) - obj.Shape.Radius*obj.Shape.Radius
	delta := b*b - 4*c

	var distance float64
	switch {
	case delta < -core.Epsilon:
		return nil, false, nil
	case delta <= core.Epsilon:
		// Tangent ray, single root
		distance = -b / 2
		if distance < 0 {
			return nil, false, nil
		}
	default:
		sqrtDelta := math.Sqrt(delta)
		distance = (-b - sqrtDelta) / 2
		if distance < 0 {
			// Origin inside the sphere or sphere behind the origin
			distance = (-b + sqrtDelta) / 2
			if distance < 0 {
				return nil, false, nil
			}
		}
	}

	point := ray.Origin.Add(u.Multiply(distance))
	return &HitInfo{
		Object:   obj,
		Point:    point,
		Normal:   obj.Shape.NormalAt(point),
		Distance: distance,
	}, true, nil
}

// FirstPointHitByRay returns the closest hit among objects, skipping ignore.
// ignore is compared by identity and by shape so a ray leaving a sphere never
// re-hits it at distance ~0. Equal distances resolve to the later object.
func FirstPointHitByRay(ray core.Ray, objects []*Object, ignore *Object) (*HitInfo, bool, error) {
	var closest *HitInfo
	for _, obj := range objects {
		if ignore != nil && (obj == ignore || obj.Shape.Equal(ignore.Shape, core.Epsilon)) {
			continue
		}
		hit, ok, err := Intersect(ray, obj)
		if err != nil {
			return nil, false, err
		}
		if ok && (closest == nil || hit.Distance <= closest.Distance) {
			closest = hit
		}
	}
	return closest, closest != nil, nil
}
