package material

import "fmt"

// Radiance is light measured in 8-bit color units but kept in float64 and
// never clamped, so that weighted samples can exceed 255 and still average
// to the right pixel value.
type Radiance struct {
	R, G, B float64
}

// RadianceOf converts a color to radiance
func RadianceOf(c Color) Radiance {
	return Radiance{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

// Add returns the per-channel sum
func (r Radiance) Add(other Radiance) Radiance {
	return Radiance{R: r.R + other.R, G: r.G + other.G, B: r.B + other.B}
}

// Scale multiplies every channel by factor
func (r Radiance) Scale(factor float64) Radiance {
	return Radiance{R: r.R * factor, G: r.G * factor, B: r.B * factor}
}

// ToColor truncates and clamps every channel into the 8-bit range
func (r Radiance) ToColor() Color {
	return Color{R: clampChannel(r.R), G: clampChannel(r.G), B: clampChannel(r.B)}
}

func (r Radiance) String() string {
	return fmt.Sprintf("radiance(%g, %g, %g)", r.R, r.G, r.B)
}
