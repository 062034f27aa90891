package scene

import "github.com/df07/go-shadow-raytracer/pkg/core"

// SkyFunc returns the background color for a ray that hits nothing
type SkyFunc func(ray core.Ray) core.Color

// SolidSky returns the same color in every direction
func SolidSky(color core.Color) SkyFunc {
	return func(ray core.Ray) core.Color {
		return color
	}
}

// GradientSky blends from bottom (looking straight down) to top (straight up)
func GradientSky(top, bottom core.Color) SkyFunc {
	return func(ray core.Ray) core.Color {
		unitDirection := ray.Direction.Normalize()

		// Map y from [-1,1] to [0,1]
		t := 0.5 * (unitDirection.Y + 1.0)

		// Linear interpolation: (1-t)*bottom + t*top
		return core.Color{
			R: (1.0-t)*bottom.R + t*top.R,
			G: (1.0-t)*bottom.G + t*top.G,
			B: (1.0-t)*bottom.B + t*top.B,
			A: (1.0-t)*bottom.A + t*top.A,
		}
	}
}
