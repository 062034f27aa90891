package renderer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"sync/atomic"
	"testing"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

// MockScene implements Scene for testing
type MockScene struct {
	colorFn func(ray core.Ray) core.Color
	calls   atomic.Int64
}

func (m *MockScene) GetColor(ray core.Ray) core.Color {
	m.calls.Add(1)
	return m.colorFn(ray)
}

// newGradientScene colors by ray direction so every pixel differs
func newGradientScene() *MockScene {
	return &MockScene{colorFn: func(ray core.Ray) core.Color {
		d := ray.Direction
		return core.NewRGB(0.5*(d.X+1), 0.5*(d.Y+1), d.Z)
	}}
}

func smallCamera() *Camera {
	return NewCamera(MergeCameraConfig(DefaultCameraConfig(), CameraConfig{Width: 37, Height: 23}))
}

func TestColorToRGBA(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected uint8
	}{
		{"zero", 0, 0},
		{"one", 1, 255},
		{"half truncates", 0.5, 127},
		{"just below one", 0.999, 254},
		{"over range saturates", 1.5, 255},
		{"negative saturates", -0.2, 0},
		{"NaN", math.NaN(), 0},
		{"positive infinity", math.Inf(1), 255},
		{"negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ColorToRGBA(core.NewColor(tt.input, tt.input, tt.input, 0.3))
			expected := color.RGBA{R: tt.expected, G: tt.expected, B: tt.expected, A: 255}
			if got != expected {
				t.Errorf("Expected %v, got %v", expected, got)
			}
		})
	}
}

func TestRaytracer_RenderPass(t *testing.T) {
	scene := newGradientScene()
	camera := smallCamera()
	img := NewRaytracer(scene, camera).RenderPass()

	if img.Bounds() != image.Rect(0, 0, 37, 23) {
		t.Fatalf("Expected 37x23 image, got %v", img.Bounds())
	}
	if scene.calls.Load() != 37*23 {
		t.Errorf("Expected one primary ray per pixel (%d), got %d", 37*23, scene.calls.Load())
	}

	for _, p := range []image.Point{{0, 0}, {36, 0}, {18, 11}, {0, 22}, {36, 22}} {
		expected := ColorToRGBA(scene.colorFn(camera.GetRay(p.X, p.Y)))
		if got := img.RGBAAt(p.X, p.Y); got != expected {
			t.Errorf("Pixel %v: expected %v, got %v", p, expected, got)
		}
	}

	// Rows run top to bottom: the top row looks up, so it is greener
	if img.RGBAAt(18, 0).G <= img.RGBAAt(18, 22).G {
		t.Errorf("Expected top row to be greener than bottom row")
	}
}

func TestRaytracer_RenderPassContext(t *testing.T) {
	camera := smallCamera()
	want := NewRaytracer(newGradientScene(), camera).RenderPass()

	got, err := NewRaytracer(newGradientScene(), camera).RenderPassContext(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !bytes.Equal(got.Pix, want.Pix) {
		t.Error("Expected the same pixels as RenderPass")
	}
}

func TestRaytracer_RenderPassContext_StopsBetweenRows(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Cancel while the first row is being traced
	scene := newGradientScene()
	inner := scene.colorFn
	scene.colorFn = func(ray core.Ray) core.Color {
		cancel()
		return inner(ray)
	}

	img, err := NewRaytracer(scene, smallCamera()).RenderPassContext(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Error("Expected no image from a cancelled render")
	}
	if got := scene.calls.Load(); got != 37 {
		t.Errorf("Expected only the first row (37 pixels) to be traced, got %d", got)
	}
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(10, 7, 4)
	if len(tiles) != 6 {
		t.Fatalf("Expected 6 tiles, got %d", len(tiles))
	}

	covered := make(map[image.Point]int)
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile ID %d, got %d", i, tile.ID)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[image.Pt(x, y)]++
			}
		}
	}

	if len(covered) != 70 {
		t.Errorf("Expected all 70 pixels covered, got %d", len(covered))
	}
	for p, count := range covered {
		if count != 1 {
			t.Errorf("Pixel %v covered %d times", p, count)
		}
	}
	if last := tiles[len(tiles)-1].Bounds; last != image.Rect(8, 4, 10, 7) {
		t.Errorf("Expected clipped last tile, got %v", last)
	}
}

func TestParallelRaytracer_MatchesSerial(t *testing.T) {
	scene := newGradientScene()
	camera := smallCamera()
	serial := NewRaytracer(scene, camera).RenderPass()

	for _, workers := range []int{1, 3, 8} {
		pr := NewParallelRaytracer(scene, camera, ParallelConfig{TileSize: 7, NumWorkers: workers}, NewDefaultLogger())
		img, stats, err := pr.Render(context.Background(), nil)
		if err != nil {
			t.Fatalf("Unexpected error with %d workers: %v", workers, err)
		}
		if !bytes.Equal(img.Pix, serial.Pix) {
			t.Errorf("Parallel render with %d workers differs from serial render", workers)
		}
		if stats.TotalPixels != 37*23 || stats.TotalTiles != 24 || stats.NumWorkers != workers {
			t.Errorf("Unexpected stats %+v", stats)
		}
	}
}

func TestParallelRaytracer_TileCallback(t *testing.T) {
	scene := newGradientScene()
	camera := smallCamera()
	pr := NewParallelRaytracer(scene, camera, ParallelConfig{TileSize: 16, NumWorkers: 2}, NewDefaultLogger())

	var results []TileCompletionResult
	img, _, err := pr.Render(context.Background(), func(result TileCompletionResult) {
		results = append(results, result)
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(results) != 6 {
		t.Fatalf("Expected 6 callbacks, got %d", len(results))
	}

	seen := make(map[image.Rectangle]bool)
	for i, result := range results {
		if result.TileNumber != i+1 || result.TotalTiles != 6 {
			t.Errorf("Unexpected progress %d/%d at callback %d", result.TileNumber, result.TotalTiles, i)
		}
		seen[result.Bounds] = true

		if result.TileImage.Bounds() != image.Rect(0, 0, result.Bounds.Dx(), result.Bounds.Dy()) {
			t.Errorf("Tile image has bounds %v for tile %v", result.TileImage.Bounds(), result.Bounds)
		}
		if result.TileX != result.Bounds.Min.X/16 || result.TileY != result.Bounds.Min.Y/16 {
			t.Errorf("Unexpected tile coordinates (%d,%d) for %v", result.TileX, result.TileY, result.Bounds)
		}
		corner := result.Bounds.Min
		if got, expected := result.TileImage.RGBAAt(0, 0), img.RGBAAt(corner.X, corner.Y); got != expected {
			t.Errorf("Tile %v corner is %v, image has %v", result.Bounds, got, expected)
		}
	}
	if len(seen) != 6 {
		t.Errorf("Expected 6 distinct tiles, got %d", len(seen))
	}
}

func TestParallelRaytracer_Cancelled(t *testing.T) {
	scene := newGradientScene()
	pr := NewParallelRaytracer(scene, smallCamera(), ParallelConfig{TileSize: 8, NumWorkers: 2}, NewDefaultLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	img, _, err := pr.Render(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if img != nil {
		t.Errorf("Expected no image from a cancelled render")
	}
	if scene.calls.Load() != 0 {
		t.Errorf("Expected no pixels traced after cancellation, got %d", scene.calls.Load())
	}
}
