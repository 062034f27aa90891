package core

// Color is a linear RGBA color. Channels are nominally in [0,1] but are
// not clamped; clamping happens when pixels are written out.
type Color struct {
	R, G, B, A float64
}

// NewColor creates a new Color
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// NewRGB creates an opaque Color
func NewRGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}
