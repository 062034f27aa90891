package objects

import (
	"github.com/df07/go-shadow-raytracer/pkg/core"
	"github.com/df07/go-shadow-raytracer/pkg/geometry"
	"github.com/df07/go-shadow-raytracer/pkg/material"
)

// NormalSphere is a sphere colored by its own surface normal
type NormalSphere struct {
	Sphere geometry.Sphere
}

// NewNormalSphere creates a new normal-visualizing sphere
func NewNormalSphere(sphere geometry.Sphere) *NormalSphere {
	return &NormalSphere{Sphere: sphere}
}

// Intersect implements core.Tracable
func (ns *NormalSphere) Intersect(ray core.Ray) []float64 {
	return ns.Sphere.Intersect(ray)
}

// MaterialColor implements core.Renderable
func (ns *NormalSphere) MaterialColor(ray core.Ray, point core.Vec3) core.Color {
	return material.NormalColor(ns.Sphere.Normal(point))
}

// Normal implements core.Renderable
func (ns *NormalSphere) Normal(point core.Vec3) core.Vec3 {
	return ns.Sphere.Normal(point)
}
