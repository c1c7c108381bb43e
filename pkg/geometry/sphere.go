package geometry

import (
	"fmt"
	"math"

	"github.com/Turtyo/rayTracing3D/pkg/core"
)

// SurfaceTolerance is the distance under which a point is considered to lie
// on a sphere surface, or to coincide with another point found by a ray.
const SurfaceTolerance = 1e-9

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Point
	Radius float64
}

// NewSphere creates a new sphere, rejecting negative or NaN radii
func NewSphere(center core.Point, radius float64) (Sphere, error) {
	if !(radius >= 0) {
		return Sphere{}, fmt.Errorf("sphere at %v with radius %g: %w", center, radius, core.ErrNegativeRadius)
	}
	return Sphere{Center: center, Radius: radius}, nil
}

// NewSphereFromPoints creates a sphere centered on center and passing through surface
func NewSphereFromPoints(center, surface core.Point) Sphere {
	return Sphere{Center: center, Radius: center.Distance(surface)}
}

// ContainsPoint reports whether point lies on the sphere surface within tolerance
func (s Sphere) ContainsPoint(point core.Point, tolerance float64) bool {
	return math.Abs(s.Center.Distance(point)-s.Radius) <= tolerance
}

// PointIsOnSphere is ContainsPoint with the default SurfaceTolerance
func (s Sphere) PointIsOnSphere(point core.Point) bool {
	return s.ContainsPoint(point, SurfaceTolerance)
}

// Equal compares centers and radii within tolerance
func (s Sphere) Equal(other Sphere, tolerance float64) bool {
	return s.Center.ApproxEqual(other.Center, tolerance) &&
		math.Abs(s.Radius-other.Radius) <= tolerance
}

// NormalAt returns the outward normal at a surface point. Its magnitude is
// the radius, callers normalize when they need a direction.
func (s Sphere) NormalAt(point core.Point) core.Vec3 {
	return s.Center.VectorTo(point)
}

// SourceIsAboveHorizon reports whether source is on the visible side of the
// tangent plane at point. The point has to be on the sphere, otherwise the
// outward normal is meaningless and a PointNotOnSurfaceError is returned.
func (s Sphere) SourceIsAboveHorizon(point, source core.Point) (bool, error) {
	if !s.PointIsOnSphere(point) {
		return false, &core.PointNotOnSurfaceError{Point: point, Center: s.Center, Radius: s.Radius}
	}
	return s.NormalAt(point).Dot(point.VectorTo(source)) >= 0, nil
}

func (s Sphere) String() string {
	return fmt.Sprintf("sphere{center: %v, radius: %g}", s.Center, s.Radius)
}
