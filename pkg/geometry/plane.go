package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

// parallelEpsilon is the dead zone around a zero denominator; rays inside it
// (or hitting the back face) miss.
const parallelEpsilon = 1e-10

// ErrDegenerateBasis is returned when a UV basis vector has no usable
// component inside the plane.
var ErrDegenerateBasis = errors.New("basis vector is parallel to the plane normal")

// Plane is an infinite one-sided plane through Reference. Rays approaching
// from the side the normal points to hit it; rays from behind pass through.
type Plane struct {
	Normal    core.Vec3 // Unit normal, facing the visible side
	Reference core.Vec3 // Any point on the plane
}

// NewPlane creates a new plane
func NewPlane(reference, normal core.Vec3) Plane {
	return Plane{
		Normal:    normal.Normalize(),
		Reference: reference,
	}
}

// Intersect returns the single ray parameter at which the ray meets the
// front face of the plane, or nil.
func (p Plane) Intersect(ray core.Ray) []float64 {
	// How far along the normal the ray travels per unit of t
	denom := p.Normal.Dot(ray.Direction)
	if denom >= -parallelEpsilon {
		return nil
	}

	normalDistance := p.Normal.Dot(p.Reference.Subtract(ray.Origin))
	return []float64{normalDistance / denom}
}

// PlaneSegment is a rectangular patch of a plane spanned by U and V from
// the plane's reference point.
type PlaneSegment struct {
	Plane   Plane
	U       core.Vec3 // Unit vector in the plane
	V       core.Vec3 // Unit vector in the plane
	UWidth  float64
	VHeight float64
}

// NewPlaneSegment creates a segment of width uWidth along u and height
// vHeight along v. Any component of u or v along the normal is projected out.
func NewPlaneSegment(plane Plane, u, v core.Vec3, uWidth, vHeight float64) (PlaneSegment, error) {
	uVector, err := inPlane(plane.Normal, u)
	if err != nil {
		return PlaneSegment{}, fmt.Errorf("u vector %v: %w", u, err)
	}
	vVector, err := inPlane(plane.Normal, v)
	if err != nil {
		return PlaneSegment{}, fmt.Errorf("v vector %v: %w", v, err)
	}

	return PlaneSegment{
		Plane:   plane,
		U:       uVector,
		V:       vVector,
		UWidth:  uWidth,
		VHeight: vHeight,
	}, nil
}

// inPlane removes the normal component of vec and normalizes what is left
func inPlane(normal, vec core.Vec3) (core.Vec3, error) {
	residual := vec.Subtract(normal.Multiply(vec.Dot(normal)))
	if residual.Length() < parallelEpsilon {
		return core.Vec3{}, ErrDegenerateBasis
	}
	return residual.Normalize(), nil
}

// UV projects a point onto the segment's basis
func (s PlaneSegment) UV(point core.Vec3) (u, v float64) {
	offset := point.Subtract(s.Plane.Reference)
	return offset.Dot(s.U), offset.Dot(s.V)
}

// Intersect returns the plane intersection if it falls strictly inside the segment
func (s PlaneSegment) Intersect(ray core.Ray) []float64 {
	candidates := s.Plane.Intersect(ray)
	if len(candidates) == 0 {
		return nil
	}

	u, v := s.UV(ray.At(candidates[0]))
	if u > 0 && u < s.UWidth && v > 0 && v < s.VHeight {
		return candidates
	}
	return nil
}
