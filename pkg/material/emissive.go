package material

// NewLight creates an emitter that absorbs all incoming light
func NewLight(color Color, strength float64) (Material, error) {
	return NewMaterial(color, strength, Black.ToDiffusionCoefficient(), 0)
}

// Emitted returns the emission color scaled by the emission strength
func (m Material) Emitted() Color {
	return m.emissionColor.Scale(m.emissionStrength)
}

// IsEmissive reports whether the material contributes any light
func (m Material) IsEmissive() bool {
	return !m.Emitted().IsBlack()
}
