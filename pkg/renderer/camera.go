package renderer

import (
	"fmt"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

// CameraConfig describes a pinhole camera looking through a fixed image
// plane at z = 0. Pixel (0, 0) is the top-left corner of the image.
type CameraConfig struct {
	Origin core.Vec3 // Camera position
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
	XMin   float64   // Image plane bounds
	XMax   float64
	YMin   float64
	YMax   float64
}

// DefaultCameraConfig returns the camera used by the built-in scenes
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Origin: core.NewVec3(0, 0, -2),
		Width:  400,
		Height: 400,
		XMin:   -2,
		XMax:   2,
		YMin:   -2,
		YMax:   2,
	}
}

// MergeCameraConfig overlays the non-zero fields of override onto base
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base

	if override.Origin != (core.Vec3{}) {
		result.Origin = override.Origin
	}
	if override.Width != 0 {
		result.Width = override.Width
	}
	if override.Height != 0 {
		result.Height = override.Height
	}
	// Bounds only make sense as a pair
	if override.XMin != 0 || override.XMax != 0 {
		result.XMin = override.XMin
		result.XMax = override.XMax
	}
	if override.YMin != 0 || override.YMax != 0 {
		result.YMin = override.YMin
		result.YMax = override.YMax
	}

	return result
}

// Validate reports configurations that cannot produce an image
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.XMax <= c.XMin {
		return fmt.Errorf("x bounds must be increasing, got [%g, %g]", c.XMin, c.XMax)
	}
	if c.YMax <= c.YMin {
		return fmt.Errorf("y bounds must be increasing, got [%g, %g]", c.YMin, c.YMax)
	}
	return nil
}

// Camera generates primary rays for pixels
type Camera struct {
	config CameraConfig
}

// NewCamera creates a new camera
func NewCamera(config CameraConfig) *Camera {
	return &Camera{config: config}
}

// Width returns the image width in pixels
func (c *Camera) Width() int {
	return c.config.Width
}

// Height returns the image height in pixels
func (c *Camera) Height() int {
	return c.config.Height
}

// ImagePlanePoint returns the point on the image plane for pixel (px, py)
func (c *Camera) ImagePlanePoint(px, py int) core.Vec3 {
	cfg := c.config
	x := cfg.XMin + float64(px)/float64(cfg.Width)*(cfg.XMax-cfg.XMin)
	y := cfg.YMax - float64(py)/float64(cfg.Height)*(cfg.YMax-cfg.YMin)
	return core.NewVec3(x, y, 0)
}

// GetRay returns the unit-direction ray from the camera through pixel (px, py)
func (c *Camera) GetRay(px, py int) core.Ray {
	direction := c.ImagePlanePoint(px, py).Subtract(c.config.Origin).Normalize()
	return core.NewRay(c.config.Origin, direction)
}
