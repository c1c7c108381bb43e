package geometry

import (
	"fmt"

	"github.com/Turtyo/rayTracing3D/pkg/core"
)

// ReflectedRay mirrors the surface-to-source vector about the normal at
// surfacePoint. The source has to be above the local horizon.
func ReflectedRay(source core.Point, obj *Object, surfacePoint core.Point) (core.Ray, error) {
	above, err := obj.Shape.SourceIsAboveHorizon(surfacePoint, source)
	if err != nil {
		return core.Ray{}, err
	}
	if !above {
		return core.Ray{}, fmt.Errorf("object %v, surface point %v, source %v: %w",
			obj, surfacePoint, source, core.ErrSourceNotVisible)
	}

	normal, err := obj.Shape.NormalAt(surfacePoint).Normalize()
	if err != nil {
		return core.Ray{}, err
	}
	toSource := surfacePoint.VectorTo(source)
	mirrored, err := normal.Multiply(2 * normal.Dot(toSource)).Subtract(toSource).Normalize()
	if err != nil {
		return core.Ray{}, fmt.Errorf("reflecting %v at %v: %w", source, surfacePoint, err)
	}
	return core.NewRay(surfacePoint, mirrored), nil
}

// SourceIsVisibleFromSpherePoint reports whether a ray cast from source
// reaches point on objects[index] before anything else. Points below the
// horizon are never visible and no ray is cast for them.
func SourceIsVisibleFromSpherePoint(objects []*Object, index int, point, source core.Point) (bool, error) {
	if index < 0 || index >= len(objects) {
		return false, &core.IndexOutOfRangeError{Index: index, Count: len(objects)}
	}

	above, err := objects[index].Shape.SourceIsAboveHorizon(point, source)
	if err != nil {
		return false, err
	}
	if !above {
		return false, nil
	}

	ray, err := core.NewRayFromPoints(source, point)
	if err != nil {
		return false, err
	}
	hit, ok, err := FirstPointHitByRay(ray, objects, nil)
	if err != nil {
		return false, err
	}
	if !ok {
		// The ray was built to end on objects[index]
		return false, &core.RayMissError{From: source, To: point}
	}
	return hit.Point.ApproxEqual(point, SurfaceTolerance), nil
}

// EmitterIsVisibleFrom reports whether the center of emitter sees hit.Point.
// The emitter itself is left out of the occluders since the ray starts
// inside it.
func EmitterIsVisibleFrom(objects []*Object, emitter *Object, hit *HitInfo) (bool, error) {
	occluders := make([]*Object, 0, len(objects))
	index := -1
	for _, obj := range objects {
		if obj == emitter {
			continue
		}
		if obj == hit.Object {
			index = len(occluders)
		}
		occluders = append(occluders, obj)
	}
	return SourceIsVisibleFromSpherePoint(occluders, index, hit.Point, emitter.Shape.Center)
}
