package renderer

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetColor(ray core.Ray) core.Color
}

// Raytracer runs the per-pixel loop: one primary ray per pixel
type Raytracer struct {
	scene  Scene
	camera *Camera
}

// NewRaytracer creates a new raytracer
func NewRaytracer(scene Scene, camera *Camera) *Raytracer {
	return &Raytracer{
		scene:  scene,
		camera: camera,
	}
}

// RenderPass renders the whole image on the calling goroutine
func (rt *Raytracer) RenderPass() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, rt.camera.Width(), rt.camera.Height()))
	rt.RenderBounds(img.Bounds(), img)
	return img
}

// RenderPassContext renders the whole image on the calling goroutine,
// checking ctx between rows. A cancelled render returns ctx.Err().
func (rt *Raytracer) RenderPassContext(ctx context.Context) (*image.RGBA, error) {
	img := image.NewRGBA(image.Rect(0, 0, rt.camera.Width(), rt.camera.Height()))
	for j := 0; j < rt.camera.Height(); j++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rt.RenderBounds(image.Rect(0, j, rt.camera.Width(), j+1), img)
	}
	return img, nil
}

// RenderBounds renders the pixels inside bounds into img. Calls with
// non-overlapping bounds may share img across goroutines.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, img *image.RGBA) {
	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ray := rt.camera.GetRay(i, j)
			img.SetRGBA(i, j, ColorToRGBA(rt.scene.GetColor(ray)))
		}
	}
}

// ColorToRGBA converts a linear color to 8-bit channels. Alpha is dropped
// and the pixel is written opaque.
func ColorToRGBA(c core.Color) color.RGBA {
	return color.RGBA{
		R: channelToByte(c.R),
		G: channelToByte(c.G),
		B: channelToByte(c.B),
		A: 255,
	}
}

// channelToByte scales to [0,255] and truncates, saturating out-of-range
// values; NaN maps to 0
func channelToByte(c float64) uint8 {
	v := math.Trunc(c * 255)
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
