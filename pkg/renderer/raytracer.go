package renderer

import (
	"context"
	"fmt"
	"time"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/geometry"
	"github.com/Turtyo/rayTracing3D/pkg/integrator"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// Config contains rendering configuration
type Config struct {
	SamplesPerPixel int                 // Number of eye rays per pixel
	Bounces         int                 // Maximum number of hits along a path
	Seed            uint64              // Root seed, every pixel derives its own stream
	Jitter          bool                // Spread eye rays over the pixel instead of its center
	Scheme          core.SamplingScheme // Bounce direction sampling
	Background      material.Color      // Color of eye rays leaving the scene
}

// DefaultConfig returns the default 3 samples, 1 bounce render
func DefaultConfig() Config {
	return Config{
		SamplesPerPixel: 3,
		Bounces:         1,
		Seed:            1,
		Scheme:          core.CosineWeighted,
		Background:      integrator.DefaultBackground(),
	}
}

// Option customizes a Raytracer
type Option func(*Raytracer)

// WithCamera replaces the default camera
func WithCamera(camera *Camera) Option {
	return func(rt *Raytracer) { rt.camera = camera }
}

// WithSeed sets the root seed
func WithSeed(seed uint64) Option {
	return func(rt *Raytracer) { rt.config.Seed = seed }
}

// WithJitter enables sub-pixel jitter of the eye rays
func WithJitter(jitter bool) Option {
	return func(rt *Raytracer) { rt.config.Jitter = jitter }
}

// WithScheme selects the bounce sampling scheme
func WithScheme(scheme core.SamplingScheme) Option {
	return func(rt *Raytracer) { rt.config.Scheme = scheme }
}

// WithBackground sets the color of eye rays that miss every object
func WithBackground(c material.Color) Option {
	return func(rt *Raytracer) { rt.config.Background = c }
}

// WithIntegrator replaces the path tracing integrator
func WithIntegrator(i integrator.Integrator) Option {
	return func(rt *Raytracer) { rt.integrator = i }
}

// WithLogger sets the progress logger
func WithLogger(logger core.Logger) Option {
	return func(rt *Raytracer) { rt.logger = logger }
}

// Raytracer handles the rendering process. The object list is only read.
type Raytracer struct {
	objects    []*geometry.Object
	camera     *Camera
	config     Config
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a new raytracer
func NewRaytracer(objects []*geometry.Object, samples, bounces int, opts ...Option) *Raytracer {
	config := DefaultConfig()
	config.SamplesPerPixel = samples
	config.Bounces = bounces

	rt := &Raytracer{
		objects: objects,
		camera:  DefaultCamera(),
		config:  config,
		logger:  core.NopLogger{},
	}
	for _, opt := range opts {
		opt(rt)
	}
	if rt.integrator == nil {
		rt.integrator = integrator.NewPathTracingIntegrator(rt.config.Bounces, rt.config.Background, rt.config.Scheme)
	}
	return rt
}

// Config returns the effective configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Validate checks the render parameters
func (rt *Raytracer) Validate() error {
	switch {
	case rt.config.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d: %w", rt.config.SamplesPerPixel, core.ErrInvalidRenderConfig)
	case rt.config.Bounces < 0:
		return fmt.Errorf("bounces must not be negative, got %d: %w", rt.config.Bounces, core.ErrInvalidRenderConfig)
	case rt.camera == nil || rt.camera.Width <= 0 || rt.camera.Height <= 0:
		return fmt.Errorf("grid must have a positive size: %w", core.ErrInvalidRenderConfig)
	case !(rt.camera.PixelSize > 0):
		return fmt.Errorf("pixel size must be positive, got %g: %w", rt.camera.PixelSize, core.ErrInvalidRenderConfig)
	}
	return nil
}

// drawsPerPixel bounds each pixel stream: one jitter draw plus at most one
// direction per bounce, for every sample
func (rt *Raytracer) drawsPerPixel() int {
	return rt.config.SamplesPerPixel * (rt.config.Bounces + 1)
}

// RenderPixel traces every sample of pixel (i, j) with its own sub-stream
// of root, returning the mean color and the number of draws used
func (rt *Raytracer) RenderPixel(i, j int, root *core.Stream) (material.Color, int, error) {
	stream := root.Derive(uint64(i), uint64(j)).WithLimit(rt.drawsPerPixel())

	var stats PixelStats
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		dx, dy := 0.5, 0.5
		if rt.config.Jitter {
			var err error
			if dx, dy, err = stream.Jitter(); err != nil {
				return material.Black, stream.Drawn(), err
			}
		}

		ray, err := rt.camera.GetRay(i, j, dx, dy)
		if err != nil {
			return material.Black, stream.Drawn(), err
		}
		c, err := rt.integrator.RayColor(ray, rt.objects, stream)
		if err != nil {
			return material.Black, stream.Drawn(), err
		}
		stats.AddSample(c)
	}
	return stats.GetColor(), stream.Drawn(), nil
}

// Render traces the whole grid row by row. The first pixel error aborts the
// render and no grid is returned.
func (rt *Raytracer) Render(ctx context.Context) (*Grid, RenderStats, error) {
	if err := rt.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	start := time.Now()
	width, height := rt.camera.Width, rt.camera.Height
	grid := NewGrid(width, height)
	root := core.NewStream(rt.config.Seed)
	stats := RenderStats{
		TotalPixels:     width * height,
		TotalSamples:    width * height * rt.config.SamplesPerPixel,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		Bounces:         rt.config.Bounces,
	}

	rt.logger.Printf("Rendering %d objects on a %dx%d grid: %d samples per pixel, %d bounces, %v sampling\n",
		len(rt.objects), width, height, rt.config.SamplesPerPixel, rt.config.Bounces, rt.config.Scheme)

	progressStep := max(1, height/10)
	for j := 0; j < height; j++ {
		if err := ctx.Err(); err != nil {
			return nil, RenderStats{}, err
		}
		for i := 0; i < width; i++ {
			c, draws, err := rt.RenderPixel(i, j, root)
			if err != nil {
				return nil, RenderStats{}, fmt.Errorf("pixel (%d, %d): %w", i, j, err)
			}
			grid.Set(i, j, c)
			stats.Draws += draws
		}
		if (j+1)%progressStep == 0 || j+1 == height {
			rt.logger.Printf("Rendered %d/%d rows (%.0f%%) in %v\n",
				j+1, height, 100*float64(j+1)/float64(height), time.Since(start).Round(time.Millisecond))
		}
	}

	stats.Duration = time.Since(start)
	stats.AverageLuminance = CalculateAverageLuminance(grid)
	rt.logger.Printf("Render completed in %v: %d samples, %d draws, average luminance %.3f\n",
		stats.Duration.Round(time.Millisecond), stats.TotalSamples, stats.Draws, stats.AverageLuminance)
	return grid, stats, nil
}
