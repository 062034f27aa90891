package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ParallelConfig contains configuration for tile-parallel rendering
type ParallelConfig struct {
	TileSize   int // Size of each tile (64x64 recommended)
	NumWorkers int // Number of parallel workers (0 = use CPU count)
}

// DefaultParallelConfig returns sensible default values
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		TileSize:   64,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// TileCompletionResult contains information about a completed tile for callbacks
type TileCompletionResult struct {
	TileX     int // Tile coordinates (not pixel coordinates)
	TileY     int
	Bounds    image.Rectangle // Pixel bounds within the full image
	TileImage *image.RGBA     // Image data for just this tile

	// Progress information
	TileNumber int // Completed tile count so far (1-based)
	TotalTiles int // Total number of tiles in the image
}

// ParallelRaytracer splits the image into tiles and renders them on a worker pool.
// The output is identical to Raytracer.RenderPass.
type ParallelRaytracer struct {
	raytracer *Raytracer
	camera    *Camera
	config    ParallelConfig
	tiles     []*Tile
	logger    core.Logger
}

// NewParallelRaytracer creates a new parallel raytracer
func NewParallelRaytracer(scene Scene, camera *Camera, config ParallelConfig, logger core.Logger) *ParallelRaytracer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultParallelConfig().TileSize
	}
	if logger == nil {
		logger = NewDefaultLogger()
	}

	return &ParallelRaytracer{
		raytracer: NewRaytracer(scene, camera),
		camera:    camera,
		config:    config,
		tiles:     NewTileGrid(camera.Width(), camera.Height(), config.TileSize),
		logger:    logger,
	}
}

// Render renders every tile and returns the assembled image. tileCallback,
// if non-nil, is invoked from the calling goroutine as each tile finishes.
// Cancelling ctx stops the render between tiles and returns ctx.Err().
func (pr *ParallelRaytracer) Render(ctx context.Context, tileCallback func(TileCompletionResult)) (*image.RGBA, RenderStats, error) {
	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, pr.camera.Width(), pr.camera.Height()))

	workerPool := NewWorkerPool(pr.raytracer, len(pr.tiles), pr.config.NumWorkers)
	workerPool.Start(ctx)
	defer workerPool.Stop()

	pr.logger.Printf("Rendering %dx%d in %d tiles (using %d workers)...\n",
		pr.camera.Width(), pr.camera.Height(), len(pr.tiles), workerPool.GetNumWorkers())

	for taskID, tile := range pr.tiles {
		workerPool.SubmitTask(TileTask{
			Tile:   tile,
			TaskID: taskID,
			Image:  img,
		})
	}

	// Collect results; callbacks are dispatched here, one at a time
	for i := 0; i < len(pr.tiles); i++ {
		result, ok := workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			pr.logger.Printf("Render stopped after %d of %d tiles: %v\n", i, len(pr.tiles), result.Error)
			return nil, RenderStats{}, result.Error
		}

		if tileCallback != nil {
			tile := pr.tiles[result.TaskID]
			tileCallback(TileCompletionResult{
				TileX:      tile.Bounds.Min.X / pr.config.TileSize,
				TileY:      tile.Bounds.Min.Y / pr.config.TileSize,
				Bounds:     tile.Bounds,
				TileImage:  extractTileImage(img, tile.Bounds),
				TileNumber: i + 1,
				TotalTiles: len(pr.tiles),
			})
		}
	}

	stats := RenderStats{
		TotalPixels: pr.camera.Width() * pr.camera.Height(),
		TotalTiles:  len(pr.tiles),
		NumWorkers:  workerPool.GetNumWorkers(),
		Duration:    time.Since(startTime),
	}
	pr.logger.Printf("Render completed in %v (%.0f pixels/s)\n", stats.Duration, stats.PixelsPerSecond())

	return img, stats, nil
}
