package material

import (
	"fmt"

	"github.com/Turtyo/rayTracing3D/pkg/core"
)

// DiffusedColor computes the light diffused toward the viewer by a
// Lambertian surface lit by a single source: sourceColor filtered by the
// diffusion coefficient and scaled by the cosine of the angle between the
// surface-to-source direction and the surface normal.
//
// sourceRay travels from the source to the surface. A source on or behind
// the tangent plane yields ErrSourceNotVisible.
func DiffusedColor(sourceColor Color, diffusion DiffusionCoefficient, sourceRay core.Ray, normal core.Vec3) (Color, error) {
	toSource, err := sourceRay.Direction.Negate().Normalize()
	if err != nil {
		return Color{}, err
	}
	unitNormal, err := normal.Normalize()
	if err != nil {
		return Color{}, err
	}

	cosine := toSource.Dot(unitNormal)
	if cosine <= 0 {
		return Color{}, fmt.Errorf("surface normal %v faces away from the source ray %v: %w", normal, sourceRay.Direction, core.ErrSourceNotVisible)
	}

	return sourceColor.Filter(diffusion).Scale(cosine), nil
}
