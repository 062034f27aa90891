package lights

import "github.com/df07/go-shadow-raytracer/pkg/core"

// UniformLight is a directional light, e.g. the sun: every point receives
// light travelling along the same Direction
type UniformLight struct {
	Color     core.Color
	Direction core.Vec3 // Unit direction the light travels, from the light into the scene
}

// NewUniformLight creates a new directional light
func NewUniformLight(direction core.Vec3, color core.Color) UniformLight {
	return UniformLight{Color: color, Direction: direction.Normalize()}
}

// Type implements the Light interface
func (ul UniformLight) Type() LightType {
	return LightTypeDirectional
}

// Sample implements the Light interface
func (ul UniformLight) Sample(point core.Vec3) LightSample {
	return LightSample{
		Direction: ul.Direction.Multiply(-1.0),
		ShadowRay: core.NewRay(point.Subtract(ul.Direction.Multiply(ShadowBias)), ul.Direction.Multiply(-1.0)),
		Color:     ul.Color,
	}
}
