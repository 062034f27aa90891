package geometry

import (
	"math"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

// Sphere represents a sphere shape
type Sphere struct {
	Center core.Vec3
	Radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) Sphere {
	return Sphere{Center: center, Radius: radius}
}

// Intersect returns the ray parameters where the ray crosses the sphere.
// The direction is assumed to be unit length, so the quadratic has a = 1.
func (s Sphere) Intersect(ray core.Ray) []float64 {
	// |O + tD - C|² = r²  =>  t² + 2t(oc·D) + oc·oc - r² = 0
	oc := ray.Origin.Subtract(s.Center)
	b := 2.0 * oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := b*b - 4.0*c
	if discriminant < 0 {
		return nil
	}
	if discriminant == 0 {
		return []float64{-b / 2.0}
	}

	sqrtD := math.Sqrt(discriminant)
	return []float64{(-b + sqrtD) / 2.0, (-b - sqrtD) / 2.0}
}

// Normal returns the outward unit normal at a point on the surface
func (s Sphere) Normal(point core.Vec3) core.Vec3 {
	return point.Subtract(s.Center).Multiply(1.0 / s.Radius)
}
