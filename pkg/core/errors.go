package core

import (
	"errors"
	"fmt"
)

// Error kinds raised by the rendering core. Every one of them aborts the
// render: they signal malformed scene data or a sampling bug, never a
// transient condition.
var (
	ErrZeroMagnitudeVector   = errors.New("zero-magnitude vector")
	ErrPointNotOnSurface     = errors.New("point not on sphere surface")
	ErrIndexOutOfRange       = errors.New("no sphere at index")
	ErrRayDoesNotReachPoint  = errors.New("ray does not reach expected point")
	ErrSourceNotVisible      = errors.New("source not visible from point")
	ErrCoefficientOutOfRange = errors.New("coefficient out of range [0, 1]")
	ErrStreamExhausted       = errors.New("sampling stream depleted")
	ErrNegativeRadius        = errors.New("negative sphere radius")
	ErrInvalidRenderConfig   = errors.New("invalid render configuration")
)

// IndexOutOfRangeError reports a sphere lookup past the end of the object list
type IndexOutOfRangeError struct {
	Index int
	Count int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("there is no sphere of index %d, the number of spheres is %d", e.Index, e.Count)
}

func (e *IndexOutOfRangeError) Unwrap() error { return ErrIndexOutOfRange }

// PointNotOnSurfaceError reports a surface query made with a point that is
// not on the sphere
type PointNotOnSurfaceError struct {
	Point  Point
	Center Point
	Radius float64
}

func (e *PointNotOnSurfaceError) Error() string {
	return fmt.Sprintf("the point %v is not on the sphere of center %v and radius %g (distance to center %g)",
		e.Point, e.Center, e.Radius, e.Point.Distance(e.Center))
}

func (e *PointNotOnSurfaceError) Unwrap() error { return ErrPointNotOnSurface }

// RayMissError reports a ray built between two points that did not hit anything
type RayMissError struct {
	From, To Point
}

func (e *RayMissError) Error() string {
	return fmt.Sprintf("the ray from point %v doesn't reach the point %v", e.From, e.To)
}

func (e *RayMissError) Unwrap() error { return ErrRayDoesNotReachPoint }

// CoefficientError reports which value fell outside [0, 1]
type CoefficientError struct {
	Name  string
	Value float64
}

func (e *CoefficientError) Error() string {
	return fmt.Sprintf("%s should be a float coefficient between 0 and 1, got: %g", e.Name, e.Value)
}

func (e *CoefficientError) Unwrap() error { return ErrCoefficientOutOfRange }

// CheckCoefficient returns a CoefficientError when value is outside [0, 1]
func CheckCoefficient(name string, value float64) error {
	if !(value >= 0 && value <= 1) {
		return &CoefficientError{Name: name, Value: value}
	}
	return nil
}
