package lights

import "github.com/df07/go-shadow-raytracer/pkg/core"

// PointLight emits light equally in all directions from a single position
type PointLight struct {
	Color    core.Color
	Position core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position core.Vec3, color core.Color) PointLight {
	return PointLight{Color: color, Position: position}
}

// Type implements the Light interface
func (pl PointLight) Type() LightType {
	return LightTypePoint
}

// Sample implements the Light interface
func (pl PointLight) Sample(point core.Vec3) LightSample {
	direction := pl.Position.Subtract(point).Normalize()
	return LightSample{
		Direction: direction,
		ShadowRay: core.NewRay(point.Add(direction.Multiply(ShadowBias)), direction),
		Color:     pl.Color,
	}
}
