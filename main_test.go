package main

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/df07/go-shadow-raytracer/pkg/renderer"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		// Built-in scenes
		{"default scene", "default", false},
		{"shadows scene", "shadows", false},
		{"uv-debug scene", "uv-debug", false},

		// Scene files, by name and by path
		{"scene file by name", "sunset", false},
		{"scene file by path", "scenes/default.json", false},

		// Invalid scenes
		{"unknown scene", "nonexistent", true},
		{"missing scene file", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(tt.sceneType, renderer.CameraConfig{})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s'", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if err := s.CameraConfig.Validate(); err != nil {
				t.Errorf("Scene camera is invalid: %v", err)
			}
			if len(s.Objects()) == 0 {
				t.Error("Expected scene to contain objects")
			}
		})
	}
}

func TestCreateScene_SizeOverride(t *testing.T) {
	s, err := createScene("scenes/sunset.json", renderer.CameraConfig{Width: 32})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if s.CameraConfig.Width != 32 || s.CameraConfig.Height != 360 {
		t.Errorf("Expected 32x360 camera, got %dx%d", s.CameraConfig.Width, s.CameraConfig.Height)
	}
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

	tests := []struct {
		sceneType string
		explicit  string
		expected  string
	}{
		{"default", "", filepath.Join("output", "default", "render_20240305_140709.png")},
		{"scenes/sunset.json", "", filepath.Join("output", "sunset", "render_20240305_140709.png")},
		{"default", "out.png", "out.png"},
	}

	for _, tt := range tests {
		if got := outputPath(tt.sceneType, tt.explicit, now); got != tt.expected {
			t.Errorf("outputPath(%q, %q) = %q, want %q", tt.sceneType, tt.explicit, got, tt.expected)
		}
	}
}

type discardLogger struct{}

func (discardLogger) Printf(format string, args ...interface{}) {}

func TestRenderImage_SerialMatchesParallel(t *testing.T) {
	s, err := createScene("shadows", renderer.CameraConfig{Width: 48, Height: 32})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}

	serial, err := renderImage(context.Background(), s, renderOptions{Serial: true}, discardLogger{})
	if err != nil {
		t.Fatalf("Serial render failed: %v", err)
	}
	parallel, err := renderImage(context.Background(), s, renderOptions{TileSize: 16, Workers: 3}, discardLogger{})
	if err != nil {
		t.Fatalf("Parallel render failed: %v", err)
	}

	if serial.Bounds() != parallel.Bounds() {
		t.Fatalf("Bounds differ: %v vs %v", serial.Bounds(), parallel.Bounds())
	}
	for i := range serial.Pix {
		if serial.Pix[i] != parallel.Pix[i] {
			t.Fatalf("Images differ at byte %d", i)
		}
	}
}

func TestRenderImage_Cancelled(t *testing.T) {
	s, err := createScene("default", renderer.CameraConfig{Width: 64, Height: 64})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, opts := range []renderOptions{
		{TileSize: 8, Workers: 2},
		{Serial: true},
	} {
		_, err := renderImage(ctx, s, opts, discardLogger{})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected cancelled render to fail with context.Canceled (serial=%v), got %v", opts.Serial, err)
		}
	}
}
