package material

import (
	"testing"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

func TestImageTexture(t *testing.T) {
	white := core.NewRGB(1, 1, 1)
	black := core.NewRGB(0, 0, 0)

	// Layout:
	//   white black
	//   black white
	pixels := []core.Color{
		white, black, // Row 0 (top in image coords)
		black, white, // Row 1 (bottom in image coords)
	}

	// Stretched over a 4x2 surface
	texture := NewImageTexture(2, 2, pixels, 4, 2)

	tests := []struct {
		name     string
		u, v     float64
		expected core.Color
	}{
		{"bottom-left", 0.4, 0.2, black},
		{"bottom-right", 3.6, 0.2, white},
		{"top-left", 0.4, 1.8, white},
		{"top-right", 3.6, 1.8, black},
		{"wraps past width", 4.4, 0.2, black},
		{"wraps below zero", -0.4, 0.2, white},
		{"far edge clamps", 4 - 1e-12, 2 - 1e-12, black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture(tt.u, tt.v); got != tt.expected {
				t.Errorf("texture(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.expected)
			}
		})
	}
}

func TestImageTexture_SinglePixel(t *testing.T) {
	red := core.NewRGB(1, 0, 0)
	texture := NewImageTexture(1, 1, []core.Color{red}, 1, 1)

	for _, uv := range [][2]float64{{0, 0}, {0.5, 0.5}, {0.999, 0.999}, {7.3, -2.1}} {
		if got := texture(uv[0], uv[1]); got != red {
			t.Errorf("texture(%v, %v) = %v, want %v", uv[0], uv[1], got, red)
		}
	}
}
