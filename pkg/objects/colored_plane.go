package objects

import (
	"github.com/df07/go-shadow-raytracer/pkg/core"
	"github.com/df07/go-shadow-raytracer/pkg/geometry"
	"github.com/df07/go-shadow-raytracer/pkg/material"
)

// ColoredPlane is a plane segment textured by a function of its UV coordinates
type ColoredPlane struct {
	Segment geometry.PlaneSegment
	Color   material.UVColorFunc
}

// NewColoredPlane creates a new UV-textured plane segment
func NewColoredPlane(segment geometry.PlaneSegment, color material.UVColorFunc) *ColoredPlane {
	return &ColoredPlane{
		Segment: segment,
		Color:   color,
	}
}

// Intersect implements core.Tracable
func (cp *ColoredPlane) Intersect(ray core.Ray) []float64 {
	return cp.Segment.Intersect(ray)
}

// MaterialColor implements core.Renderable
func (cp *ColoredPlane) MaterialColor(ray core.Ray, point core.Vec3) core.Color {
	u, v := cp.Segment.UV(point)
	return cp.Color(u, v)
}

// Normal implements core.Renderable; it is the same everywhere on the plane
func (cp *ColoredPlane) Normal(point core.Vec3) core.Vec3 {
	return cp.Segment.Plane.Normal
}
