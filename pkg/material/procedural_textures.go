package material

import (
	"math"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

// NewCheckerboard creates a checkerboard pattern with cellsPerUnit checks
// along each unit of U and V
func NewCheckerboard(cellsPerUnit float64, even, odd core.Color) UVColorFunc {
	return func(u, v float64) core.Color {
		// Determine which check we're in
		checkU := int64(math.Floor(u * cellsPerUnit))
		checkV := int64(math.Floor(v * cellsPerUnit))

		if (checkU+checkV)%2 == 0 {
			return even
		}
		return odd
	}
}

// NewUVDebug creates a texture showing UV coordinates as colors.
// U maps to the red channel and V to green, normalized by the surface size.
func NewUVDebug(width, height float64) UVColorFunc {
	return func(u, v float64) core.Color {
		return core.NewRGB(u/width, v/height, 0.0)
	}
}
