package lights

import "github.com/df07/go-shadow-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint       LightType = "point"
	LightTypeDirectional LightType = "directional"
)

// ShadowBias is how far a shadow ray starts from the shaded point, along
// the direction to the light, so it does not re-hit its own surface
const ShadowBias = 0.01

// Light interface for lights that illuminate a point along a single direction
type Light interface {
	Type() LightType

	// Sample returns the direction from point toward the light together with
	// the shadow ray that tests whether the light is visible from point
	Sample(point core.Vec3) LightSample
}

// LightSample contains the incident light at a shading point
type LightSample struct {
	Direction core.Vec3  // Unit direction from the shading point to the light
	ShadowRay core.Ray   // Occlusion test ray, offset by ShadowBias
	Color     core.Color // Light color
}
