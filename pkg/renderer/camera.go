package renderer

import (
	"github.com/Turtyo/rayTracing3D/pkg/core"
)

const (
	DefaultWidth     = 1920
	DefaultHeight    = 1080
	DefaultPixelSize = 1e-2
)

// Camera is a pinhole eye looking through a pixel grid lying in the plane
// z = Center.Z. Pixel (0, 0) is the top-left one.
type Camera struct {
	Eye       core.Point
	Center    core.Point // Center of the pixel grid
	PixelSize float64
	Width     int
	Height    int
}

// NewCamera creates the default eye at (0, 0, -1) looking through a grid
// centered on the origin
func NewCamera(width, height int, pixelSize float64) *Camera {
	return &Camera{
		Eye:       core.NewPoint(0, 0, -1),
		Center:    core.NewPoint(0, 0, 0),
		PixelSize: pixelSize,
		Width:     width,
		Height:    height,
	}
}

// DefaultCamera is a 1920x1080 grid of 1e-2 wide pixels
func DefaultCamera() *Camera {
	return NewCamera(DefaultWidth, DefaultHeight, DefaultPixelSize)
}

// PixelPoint returns the point of pixel (i, j) at offset (dx, dy), both in
// [0, 1). (0.5, 0.5) is the pixel center.
func (c *Camera) PixelPoint(i, j int, dx, dy float64) core.Point {
	halfWidth := float64(c.Width) / 2
	halfHeight := float64(c.Height) / 2
	return core.NewPoint(
		(dx+float64(i)-halfWidth)*c.PixelSize+c.Center.X,
		(dy+float64(j)-halfHeight)*c.PixelSize+c.Center.Y,
		c.Center.Z,
	)
}

// GetRay returns the eye ray through pixel (i, j) at offset (dx, dy)
func (c *Camera) GetRay(i, j int, dx, dy float64) (core.Ray, error) {
	return core.NewRayFromPoints(c.Eye, c.PixelPoint(i, j, dx, dy))
}
