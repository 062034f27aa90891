package material

import (
	"github.com/df07/go-shadow-raytracer/pkg/core"
)

// UVColorFunc maps surface UV coordinates to a color
type UVColorFunc func(u, v float64) core.Color

// NewSolidColor returns a UVColorFunc that ignores UV entirely
func NewSolidColor(color core.Color) UVColorFunc {
	return func(u, v float64) core.Color {
		return color
	}
}

// NormalColor visualizes a unit normal by mapping each component from
// [-1,1] onto a [0,1] color channel
func NormalColor(normal core.Vec3) core.Color {
	return core.Color{
		R: (normal.X + 1.0) / 2.0,
		G: (normal.Y + 1.0) / 2.0,
		B: (normal.Z + 1.0) / 2.0,
		A: 1.0,
	}
}
