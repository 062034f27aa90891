package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-shadow-raytracer/pkg/core"
	"github.com/df07/go-shadow-raytracer/pkg/output"
	"github.com/df07/go-shadow-raytracer/pkg/renderer"
	"github.com/df07/go-shadow-raytracer/pkg/scene"
)

func main() {
	app := cli.NewApp()
	app.Name = "go-shadow-raytracer"
	app.Usage = "render a scene with direct lighting and hard shadows to PNG"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "scene",
			Value: "default",
			Usage: "built-in scene name, scene file name under scenes/, or path to a .json scene",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "image width in pixels (0 keeps the scene's camera)",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "image height in pixels (0 keeps the scene's camera)",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "number of parallel workers (0 = CPU count)",
		},
		cli.IntFlag{
			Name:  "tile-size",
			Value: renderer.DefaultParallelConfig().TileSize,
			Usage: "tile edge in pixels for parallel rendering",
		},
		cli.StringFlag{
			Name:  "output",
			Usage: "output PNG path (default output/<scene>/render_<timestamp>.png)",
		},
		cli.BoolFlag{
			Name:  "serial",
			Usage: "render on a single goroutine",
		},
		cli.BoolFlag{
			Name:  "list",
			Usage: "list available scenes and exit",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// renderOptions holds the render settings taken from the command line
type renderOptions struct {
	Serial   bool
	TileSize int
	Workers  int
}

func run(c *cli.Context) error {
	if c.Bool("list") {
		return listScenes()
	}

	if c.Int("width") < 0 || c.Int("height") < 0 {
		return fmt.Errorf("width and height must not be negative")
	}

	sceneType := c.String("scene")
	fmt.Printf("Loading scene %q...\n", sceneType)
	selectedScene, err := createScene(sceneType, renderer.CameraConfig{
		Width:  c.Int("width"),
		Height: c.Int("height"),
	})
	if err != nil {
		return err
	}
	if err := selectedScene.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("invalid camera: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := renderOptions{
		Serial:   c.Bool("serial"),
		TileSize: c.Int("tile-size"),
		Workers:  c.Int("workers"),
	}
	img, err := renderImage(ctx, selectedScene, opts, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	filename := outputPath(sceneType, c.String("output"), time.Now())
	if err := output.SavePNG(filename, img); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene builds a built-in scene, a scene file from scenes/, or a JSON file by path
func createScene(sceneType string, override renderer.CameraConfig) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("scene name must not be empty")
	}

	if strings.HasSuffix(sceneType, ".json") {
		return scene.NewJSONScene(sceneType, override)
	}

	s, err := scene.Create(sceneType, override)
	if err == nil {
		return s, nil
	}

	// Fall back to scenes/<name>.json
	jsonScenes, listErr := scene.ListJSONScenes()
	if listErr != nil {
		return nil, listErr
	}
	for _, info := range jsonScenes {
		if info.Name == sceneType {
			return scene.NewJSONScene(info.FilePath, override)
		}
	}
	return nil, err
}

// renderImage renders the scene serially or tile-parallel
func renderImage(ctx context.Context, s *scene.Scene, opts renderOptions, logger core.Logger) (*image.RGBA, error) {
	camera := renderer.NewCamera(s.CameraConfig)

	if opts.Serial {
		startTime := time.Now()
		img, err := renderer.NewRaytracer(s, camera).RenderPassContext(ctx)
		if err != nil {
			return nil, fmt.Errorf("render failed: %w", err)
		}
		logger.Printf("Serial render completed in %v\n", time.Since(startTime))
		return img, nil
	}

	config := renderer.ParallelConfig{
		TileSize:   opts.TileSize,
		NumWorkers: opts.Workers,
	}
	img, _, err := renderer.NewParallelRaytracer(s, camera, config, logger).Render(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("render failed: %w", err)
	}
	return img, nil
}

// outputPath returns explicit if set, otherwise a timestamped file under output/<scene>
func outputPath(sceneType, explicit string, now time.Time) string {
	if explicit != "" {
		return explicit
	}
	name := strings.TrimSuffix(filepath.Base(sceneType), filepath.Ext(sceneType))
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", name, fmt.Sprintf("render_%s.png", timestamp))
}

func listScenes() error {
	fmt.Println("Built-in scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Printf("  %-12s %s\n", info.Name, info.Description)
	}

	jsonScenes, err := scene.ListJSONScenes()
	if err != nil {
		return err
	}
	if len(jsonScenes) > 0 {
		fmt.Println()
		fmt.Println("Scene files:")
		for _, info := range jsonScenes {
			fmt.Printf("  %-12s %s (%s)\n", info.Name, info.DisplayName, info.FilePath)
		}
	}
	return nil
}
