// Package output writes rendered images to disk or streams.
package output

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// EncodePNG writes img to w as PNG. An opaque render is stored as 8-bit RGB.
func EncodePNG(w io.Writer, img *image.RGBA) error {
	dc := gg.NewContextForRGBA(img)
	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes img to path, creating parent directories as needed
func SavePNG(path string, img *image.RGBA) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	dc := gg.NewContextForRGBA(img)
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save PNG %s: %w", path, err)
	}
	return nil
}
