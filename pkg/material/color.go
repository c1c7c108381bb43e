package material

import (
	"fmt"
	"math"

	"github.com/Turtyo/rayTracing3D/pkg/core"
)

// Color is a displayable 8-bit RGB light value.
// Arithmetic on colors never wraps: sums saturate and scaled values are
// clamped to the 8-bit range.
type Color struct {
	R, G, B uint8
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
	Red   = Color{255, 0, 0}
	Green = Color{0, 255, 0}
	Blue  = Color{0, 0, 255}
)

// NewColorFromUnit builds a color from channel intensities in [0, 1]
func NewColorFromUnit(r, g, b float64) (Color, error) {
	for _, c := range []struct {
		name  string
		value float64
	}{{"red channel", r}, {"green channel", g}, {"blue channel", b}} {
		if err := core.CheckCoefficient(c.name, c.value); err != nil {
			return Color{}, err
		}
	}
	return Color{clampChannel(r * 255), clampChannel(g * 255), clampChannel(b * 255)}, nil
}

// Add returns the per-channel saturating sum
func (c Color) Add(other Color) Color {
	return Color{
		R: saturatingAdd(c.R, other.R),
		G: saturatingAdd(c.G, other.G),
		B: saturatingAdd(c.B, other.B),
	}
}

// Scale multiplies every channel by factor, truncating toward zero and
// clamping into [0, 255]
func (c Color) Scale(factor float64) Color {
	return Color{
		R: clampChannel(float64(c.R) * factor),
		G: clampChannel(float64(c.G) * factor),
		B: clampChannel(float64(c.B) * factor),
	}
}

// Multiply filters c by other, each channel acting as a fraction of 255
func (c Color) Multiply(other Color) Color {
	return Color{
		R: uint8(uint16(c.R) * uint16(other.R) / 255),
		G: uint8(uint16(c.G) * uint16(other.G) / 255),
		B: uint8(uint16(c.B) * uint16(other.B) / 255),
	}
}

// Filter attenuates c by a diffusion coefficient
func (c Color) Filter(d DiffusionCoefficient) Color {
	return Color{
		R: clampChannel(float64(c.R) * d.r),
		G: clampChannel(float64(c.G) * d.g),
		B: clampChannel(float64(c.B) * d.b),
	}
}

// IsBlack reports whether every channel is zero
func (c Color) IsBlack() bool {
	return c == Black
}

// ToDiffusionCoefficient interprets the color as an albedo
func (c Color) ToDiffusionCoefficient() DiffusionCoefficient {
	return DiffusionCoefficient{
		r: float64(c.R) / 255,
		g: float64(c.G) / 255,
		b: float64(c.B) / 255,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

func saturatingAdd(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(sum)
}

// clampChannel converts like a saturating float to u8 cast: NaN and
// negatives become 0, anything above 255 becomes 255.
func clampChannel(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(v)
}

// DiffusionCoefficient is a per-channel albedo in [0, 1]
type DiffusionCoefficient struct {
	r, g, b float64
}

// NewDiffusionCoefficient validates and builds a diffusion coefficient
func NewDiffusionCoefficient(r, g, b float64) (DiffusionCoefficient, error) {
	for _, c := range []struct {
		name  string
		value float64
	}{{"red diffusion", r}, {"green diffusion", g}, {"blue diffusion", b}} {
		if err := core.CheckCoefficient(c.name, c.value); err != nil {
			return DiffusionCoefficient{}, err
		}
	}
	return DiffusionCoefficient{r: r, g: g, b: b}, nil
}

// R returns the red albedo
func (d DiffusionCoefficient) R() float64 { return d.r }

// G returns the green albedo
func (d DiffusionCoefficient) G() float64 { return d.g }

// B returns the blue albedo
func (d DiffusionCoefficient) B() float64 { return d.b }

func (d DiffusionCoefficient) String() string {
	return fmt.Sprintf("diffusion(%g, %g, %g)", d.r, d.g, d.b)
}
