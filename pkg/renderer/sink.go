package renderer

import (
	"context"
	"fmt"

	"github.com/Turtyo/rayTracing3D/pkg/geometry"
)

// Sink receives the finished raster as tightly packed 8-bit RGB rows
type Sink interface {
	WriteImage(pix []uint8, width, height int) error
}

// RayTraceImage renders objects and hands the raster to sink. Nothing is
// written when the render fails. A nil sink only returns the grid.
func RayTraceImage(ctx context.Context, samples, bounces int, objects []*geometry.Object, sink Sink, opts ...Option) (*Grid, error) {
	grid, _, err := NewRaytracer(objects, samples, bounces, opts...).Render(ctx)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		return grid, nil
	}
	if err := sink.WriteImage(grid.RGB(), grid.Width, grid.Height); err != nil {
		return nil, fmt.Errorf("writing %v: %w", grid, err)
	}
	return grid, nil
}
