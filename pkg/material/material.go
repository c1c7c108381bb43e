package material

import (
	"fmt"

	"github.com/Turtyo/rayTracing3D/pkg/core"
)

// Material describes how a sphere emits and diffuses light.
// All coefficients are validated once by NewMaterial.
type Material struct {
	emissionColor    Color
	emissionStrength float64
	diffusion        DiffusionCoefficient
	reflection       float64 // reserved for specular transport, unused by the integrators
}

// NewMaterial creates a material, failing with ErrCoefficientOutOfRange when
// the emission strength or reflection coefficient is outside [0, 1]
func NewMaterial(emissionColor Color, emissionStrength float64, diffusion DiffusionCoefficient, reflection float64) (Material, error) {
	if err := core.CheckCoefficient("emission strength", emissionStrength); err != nil {
		return Material{}, err
	}
	if err := core.CheckCoefficient("reflection coefficient", reflection); err != nil {
		return Material{}, err
	}
	return Material{
		emissionColor:    emissionColor,
		emissionStrength: emissionStrength,
		diffusion:        diffusion,
		reflection:       reflection,
	}, nil
}

// DefaultMaterial is a non-emissive white diffuser
func DefaultMaterial() Material {
	return Material{
		emissionColor: Black,
		diffusion:     White.ToDiffusionCoefficient(),
	}
}

// NewDiffuse creates a non-emissive material with the given albedo
func NewDiffuse(diffusion DiffusionCoefficient) Material {
	return Material{emissionColor: Black, diffusion: diffusion}
}

// EmissionColor returns the color emitted when the surface acts as a light
func (m Material) EmissionColor() Color { return m.emissionColor }

// EmissionStrength returns the emission scale in [0, 1]
func (m Material) EmissionStrength() float64 { return m.emissionStrength }

// Diffusion returns the albedo applied to bounced light
func (m Material) Diffusion() DiffusionCoefficient { return m.diffusion }

// ReflectionCoefficient returns the reserved specular coefficient
func (m Material) ReflectionCoefficient() float64 { return m.reflection }

func (m Material) String() string {
	return fmt.Sprintf("material{emission: %v x %g, %v, reflection: %g}",
		m.emissionColor, m.emissionStrength, m.diffusion, m.reflection)
}
