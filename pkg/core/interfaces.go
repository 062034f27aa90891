package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Tracable is anything a ray can be intersected with
type Tracable interface {
	// Intersect returns the ray parameters of every intersection, including
	// those behind the ray origin. No ordering is guaranteed.
	Intersect(ray Ray) []float64
}

// Renderable supplies the surface properties at a point already known to be on the object
type Renderable interface {
	MaterialColor(ray Ray, point Vec3) Color
	Normal(point Vec3) Vec3
}

// Drawable is a scene object: geometry plus material
type Drawable interface {
	Tracable
	Renderable
}
