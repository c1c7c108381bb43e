package scene

import (
	"fmt"
	"math"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB in [0, 1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) (float64, float64, float64) {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	clamp := func(v float64) float64 { return math.Max(0, math.Min(1, v)) }
	return clamp(r), clamp(g), clamp(blue)
}

// Sphere grid layout
const (
	gridColumns  = 6
	gridRows     = 4
	gridSpacing  = 3.0
	gridRadius   = 0.6
	groundLevel  = 4.0 // y of the ground, the y axis points down
	groundRadius = 1e3
)

// NewSphereGridScene creates a grid of diffuse spheres resting on a large
// ground sphere. Hue varies across columns and chroma across rows.
func NewSphereGridScene() (*Scene, error) {
	s := NewScene("sphere-grid")
	s.Sampling.SamplesPerPixel = 16
	s.Sampling.Bounces = 3

	grey, err := material.NewDiffusionCoefficient(0.5, 0.5, 0.5)
	if err != nil {
		return nil, err
	}
	sun, err := material.NewLight(material.White, 1)
	if err != nil {
		return nil, err
	}
	if err := s.Add("ground", core.NewPoint(0, groundLevel+groundRadius, 15), groundRadius, material.NewDiffuse(grey)); err != nil {
		return nil, err
	}
	if err := s.Add("sun", core.NewPoint(20, -25, 5), 8, sun); err != nil {
		return nil, err
	}

	const (
		baseLightness = 0.65
		minChroma     = 0.05
		maxChroma     = 0.25
	)
	for i := 0; i < gridColumns; i++ {
		for j := 0; j < gridRows; j++ {
			x := (float64(i) - float64(gridColumns-1)/2) * gridSpacing
			z := 10 + float64(j)*gridSpacing

			hue := float64(i) / float64(gridColumns) * 360.0
			chroma := minChroma + float64(j)/float64(gridRows-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			d, err := material.NewDiffusionCoefficient(oklchToRGB(lightness, chroma, hue))
			if err != nil {
				return nil, err
			}
			center := core.NewPoint(x, groundLevel-gridRadius, z)
			if err := s.Add(fmt.Sprintf("sphere %d,%d", i, j), center, gridRadius, material.NewDiffuse(d)); err != nil {
				return nil, err
			}
		}
	}
	return s, nil
}
