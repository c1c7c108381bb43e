package core

import "fmt"

// Ray represents a ray with an origin and direction.
// The direction does not need to be unit length.
type Ray struct {
	Origin    Point
	Direction Vec3
}

// NewRay creates a new ray
func NewRay(origin Point, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayFromPoints creates a ray starting at origin and passing through destination
func NewRayFromPoints(origin, destination Point) (Ray, error) {
	direction, err := origin.VectorTo(destination).Normalize()
	if err != nil {
		return Ray{}, fmt.Errorf("ray from %v to %v: %w", origin, destination, err)
	}
	return Ray{Origin: origin, Direction: direction}, nil
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point {
	return r.Origin.Add(r.Direction.Multiply(t))
}
