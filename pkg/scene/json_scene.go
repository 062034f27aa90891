package scene

import (
	"fmt"
	"path/filepath"

	"github.com/df07/go-shadow-raytracer/pkg/geometry"
	"github.com/df07/go-shadow-raytracer/pkg/lights"
	"github.com/df07/go-shadow-raytracer/pkg/loaders"
	"github.com/df07/go-shadow-raytracer/pkg/material"
	"github.com/df07/go-shadow-raytracer/pkg/objects"
	"github.com/df07/go-shadow-raytracer/pkg/renderer"
)

// NewJSONScene creates a scene from a JSON scene file
func NewJSONScene(path string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	sceneFile, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load JSON scene: %w", err)
	}
	return BuildJSONScene(sceneFile, filepath.Dir(path), cameraOverrides...)
}

// BuildJSONScene converts a parsed scene file. Image texture paths are
// resolved relative to baseDir.
func BuildJSONScene(sceneFile *loaders.SceneFile, baseDir string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	s := New()

	s.CameraConfig = convertCamera(sceneFile.Camera)
	if len(cameraOverrides) > 0 {
		s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: camera: %w", loaders.ErrInvalidScene, err)
	}

	if sceneFile.Sky != nil {
		sky, err := convertSky(sceneFile.Sky)
		if err != nil {
			return nil, fmt.Errorf("sky: %w", err)
		}
		s.SetSkybox(sky)
	}

	// Spheres are added before planes, each in file order
	for _, sphere := range sceneFile.Spheres {
		s.AddObject(objects.NewNormalSphere(geometry.NewSphere(sphere.Center.Vec3(), sphere.Radius)))
	}

	for i, planeCfg := range sceneFile.Planes {
		plane, err := convertPlane(planeCfg, baseDir)
		if err != nil {
			return nil, fmt.Errorf("plane %d: %w", i, err)
		}
		s.AddObject(plane)
	}

	for i, lightCfg := range sceneFile.PointLights {
		color, err := lightCfg.Color.Color()
		if err != nil {
			return nil, fmt.Errorf("point light %d: %w", i, err)
		}
		s.AddPointLight(lights.NewPointLight(lightCfg.Position.Vec3(), color))
	}

	for i, lightCfg := range sceneFile.DirectionalLights {
		color, err := lightCfg.Color.Color()
		if err != nil {
			return nil, fmt.Errorf("directional light %d: %w", i, err)
		}
		s.AddDirectionalLight(lights.NewUniformLight(lightCfg.Direction.Vec3(), color))
	}

	return s, nil
}

// convertCamera overlays the file's camera settings on the default camera
func convertCamera(cfg *loaders.CameraCfg) renderer.CameraConfig {
	config := renderer.DefaultCameraConfig()
	if cfg == nil {
		return config
	}

	config = renderer.MergeCameraConfig(config, renderer.CameraConfig{
		Width:  cfg.Width,
		Height: cfg.Height,
	})
	// Explicit values may be zero, which a merge would ignore
	if cfg.XMin != nil && cfg.XMax != nil {
		config.XMin, config.XMax = *cfg.XMin, *cfg.XMax
	}
	if cfg.YMin != nil && cfg.YMax != nil {
		config.YMin, config.YMax = *cfg.YMin, *cfg.YMax
	}
	if cfg.Origin != nil {
		config.Origin = cfg.Origin.Vec3()
	}
	return config
}

func convertSky(cfg *loaders.SkyCfg) (SkyFunc, error) {
	switch cfg.Type {
	case "solid":
		color, err := cfg.Color.Color()
		if err != nil {
			return nil, err
		}
		return SolidSky(color), nil
	case "gradient":
		top, err := cfg.Top.Color()
		if err != nil {
			return nil, fmt.Errorf("top: %w", err)
		}
		bottom, err := cfg.Bottom.Color()
		if err != nil {
			return nil, fmt.Errorf("bottom: %w", err)
		}
		return GradientSky(top, bottom), nil
	default:
		return nil, fmt.Errorf("unknown sky type %q", cfg.Type)
	}
}

func convertPlane(cfg loaders.PlaneCfg, baseDir string) (*objects.ColoredPlane, error) {
	plane := geometry.NewPlane(cfg.Reference.Vec3(), cfg.Normal.Vec3())
	segment, err := geometry.NewPlaneSegment(plane, cfg.U.Vec3(), cfg.V.Vec3(), cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}

	texture, err := convertTexture(cfg.Texture, cfg.Width, cfg.Height, baseDir)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}

	return objects.NewColoredPlane(segment, texture), nil
}

func convertTexture(cfg loaders.TextureCfg, width, height float64, baseDir string) (material.UVColorFunc, error) {
	switch cfg.Type {
	case "solid":
		color, err := cfg.Color.Color()
		if err != nil {
			return nil, err
		}
		return material.NewSolidColor(color), nil
	case "checker":
		even, err := cfg.Even.Color()
		if err != nil {
			return nil, fmt.Errorf("even: %w", err)
		}
		odd, err := cfg.Odd.Color()
		if err != nil {
			return nil, fmt.Errorf("odd: %w", err)
		}
		return material.NewCheckerboard(cfg.CellsPerUnit, even, odd), nil
	case "uvdebug":
		return material.NewUVDebug(width, height), nil
	case "image":
		path := cfg.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		img, err := loaders.LoadImage(path)
		if err != nil {
			return nil, err
		}
		if img.Width == 0 || img.Height == 0 {
			return nil, fmt.Errorf("image %s is empty", path)
		}
		return material.NewImageTexture(img.Width, img.Height, img.Pixels, width, height), nil
	default:
		return nil, fmt.Errorf("unknown texture type %q", cfg.Type)
	}
}
