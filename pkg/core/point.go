package core

// Point is a position in scene space.
//
// Axis orientation used throughout the renderer:
//
//	z
//	X--> x
//	|
//	v
//	y
//
// x grows to the right, y grows downward and z points into the scene.
type Point struct {
	X, Y, Z float64
}

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// Add returns the point displaced by v
func (p Point) Add(v Vec3) Point {
	return Point{p.X + v.X, p.Y + v.Y, p.Z + v.Z}
}

// VectorTo returns the vector going from p to other
func (p Point) VectorTo(other Point) Vec3 {
	return Vec3{other.X - p.X, other.Y - p.Y, other.Z - p.Z}
}

// Distance returns the euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return p.VectorTo(other).Norme()
}

// ApproxEqual reports whether the two points are closer than tolerance
func (p Point) ApproxEqual(other Point, tolerance float64) bool {
	return p.Distance(other) <= tolerance
}
