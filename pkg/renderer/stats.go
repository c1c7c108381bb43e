package renderer

import (
	"time"

	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	SamplesPerPixel  int           // Samples taken for every pixel
	Bounces          int           // Bounce budget of every path
	Draws            int           // Random draws consumed by all pixels
	AverageLuminance float64       // Mean luminance of the final image in [0, 1]
	Duration         time.Duration // Wall time of the render
}

// PixelStats accumulates the samples of a single pixel. Samples are summed
// unclamped; only the mean is brought back to 8 bits.
type PixelStats struct {
	Sum         material.Radiance
	SampleCount int
}

// AddSample adds a new sample to the pixel statistics
func (ps *PixelStats) AddSample(r material.Radiance) {
	ps.Sum = ps.Sum.Add(r)
	ps.SampleCount++
}

// GetColor returns the mean of the samples, truncated and clamped to 8 bits
func (ps *PixelStats) GetColor() material.Color {
	if ps.SampleCount == 0 {
		return material.Black
	}
	n := float64(ps.SampleCount)
	mean := material.Radiance{R: ps.Sum.R / n, G: ps.Sum.G / n, B: ps.Sum.B / n}
	return mean.ToColor()
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of the grid
func CalculateAverageLuminance(g *Grid) float64 {
	if len(g.Pixels) == 0 {
		return 0
	}
	var total float64
	for _, c := range g.Pixels {
		total += (0.2126*float64(c.R) + 0.7152*float64(c.G) + 0.0722*float64(c.B)) / 255
	}
	return total / float64(len(g.Pixels))
}
