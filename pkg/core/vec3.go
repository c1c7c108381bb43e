package core

import (
	"fmt"
	"math"
)

// Epsilon is the default tolerance used for floating-point comparisons.
// Points closer than a picometer-scale distance are considered equal.
const Epsilon = 1e-12

// Vec3 represents a 3D vector. It carries both direction and magnitude and
// is never implicitly normalized.
type Vec3 struct {
	X, Y, Z float64
}

// NewVec3 creates a new Vec3
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Subtract returns v - other, computed as v + (-1)*other
func (v Vec3) Subtract(other Vec3) Vec3 {
	return v.Add(other.Multiply(-1))
}

// Multiply returns the vector scaled by a scalar
func (v Vec3) Multiply(scalar float64) Vec3 {
	return Vec3{v.X * scalar, v.Y * scalar, v.Z * scalar}
}

// Negate returns the negative of the vector
func (v Vec3) Negate() Vec3 {
	return v.Multiply(-1)
}

// Dot returns the scalar product of two vectors
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Norme returns the magnitude of the vector
func (v Vec3) Norme() float64 {
	return math.Sqrt(v.Dot(v))
}

// Length is an alias of Norme
func (v Vec3) Length() float64 {
	return v.Norme()
}

// IsZero reports whether the vector magnitude is numerically zero
func (v Vec3) IsZero() bool {
	return v.Norme() <= math.SmallestNonzeroFloat64
}

// Normalize returns a unit vector in the same direction.
// A zero-magnitude vector has no direction and yields ErrZeroMagnitudeVector.
func (v Vec3) Normalize() (Vec3, error) {
	length := v.Norme()
	if length <= math.SmallestNonzeroFloat64 || math.IsNaN(length) {
		return Vec3{}, fmt.Errorf("can't create vector of norme 1 from %v: %w", v, ErrZeroMagnitudeVector)
	}
	return Vec3{v.X / length, v.Y / length, v.Z / length}, nil
}

// AngleWith returns the angle in radians, in [0, π], between v and other.
// The result is NaN when either operand has zero magnitude.
func (v Vec3) AngleWith(other Vec3) float64 {
	cos := v.Dot(other) / (v.Norme() * other.Norme())
	// rounding can push |cos| slightly above 1 for parallel vectors
	cos = max(-1, min(1, cos))
	return math.Acos(cos)
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(other Vec3) (Vec3, error) {
	if v.IsZero() || other.IsZero() {
		return Vec3{}, fmt.Errorf("cross product of %v and %v: %w", v, other, ErrZeroMagnitudeVector)
	}
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}, nil
}

// ApproxEqual compares two vectors componentwise with the given tolerance
func (v Vec3) ApproxEqual(other Vec3, tolerance float64) bool {
	return FloatsApproxEqual(v.X, other.X, tolerance) &&
		FloatsApproxEqual(v.Y, other.Y, tolerance) &&
		FloatsApproxEqual(v.Z, other.Z, tolerance)
}

// FloatsApproxEqual reports whether a and b are within epsilon of each other
// or at most 2 ULP apart.
func FloatsApproxEqual(a, b, epsilon float64) bool {
	if a == b {
		return true
	}
	if math.Abs(a-b) <= epsilon {
		return true
	}
	if math.Signbit(a) != math.Signbit(b) || math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	ua, ub := math.Float64bits(a), math.Float64bits(b)
	if ua > ub {
		return ua-ub <= 2
	}
	return ub-ua <= 2
}
