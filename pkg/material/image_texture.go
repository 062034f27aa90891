package material

import (
	"math"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

// NewImageTexture stretches a row-major image over a uWidth x vHeight
// surface using nearest-neighbor lookup. V runs up the image; UV outside the
// surface wraps around.
func NewImageTexture(width, height int, pixels []core.Color, uWidth, vHeight float64) UVColorFunc {
	return func(u, v float64) core.Color {
		// Wrap to [0, 1)
		s := u/uWidth - math.Floor(u/uWidth)
		t := v/vHeight - math.Floor(v/vHeight)

		// Flip V for image coordinates where origin is top-left
		x := int(s * float64(width))
		y := int((1.0 - t) * float64(height))

		// Clamp to image bounds
		if x >= width {
			x = width - 1
		}
		if y >= height {
			y = height - 1
		}
		if x < 0 {
			x = 0
		}
		if y < 0 {
			y = 0
		}

		return pixels[y*width+x]
	}
}
