package loaders

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-shadow-raytracer/pkg/core"
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

// Vec3 converts to a core.Vec3
func (v Vec3Cfg) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// ColorCfg is a color written as [r, g, b] or [r, g, b, a]; alpha defaults to 1
type ColorCfg []float64

// Color converts to a core.Color
func (c ColorCfg) Color() (core.Color, error) {
	switch len(c) {
	case 3:
		return core.NewRGB(c[0], c[1], c[2]), nil
	case 4:
		return core.NewColor(c[0], c[1], c[2], c[3]), nil
	default:
		return core.Color{}, fmt.Errorf("color needs 3 or 4 components, got %d", len(c))
	}
}

// CameraCfg overrides the default camera. Absent or zero sizes keep their
// default; image plane bounds are given as pairs.
type CameraCfg struct {
	Origin *Vec3Cfg `json:"origin,omitempty"`
	Width  int      `json:"width,omitempty"`
	Height int      `json:"height,omitempty"`
	XMin   *float64 `json:"xMin,omitempty"`
	XMax   *float64 `json:"xMax,omitempty"`
	YMin   *float64 `json:"yMin,omitempty"`
	YMax   *float64 `json:"yMax,omitempty"`
}

func (c *CameraCfg) validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("image size must not be negative, got %dx%d", c.Width, c.Height)
	}
	if err := validateBounds("x", c.XMin, c.XMax); err != nil {
		return err
	}
	return validateBounds("y", c.YMin, c.YMax)
}

func validateBounds(axis string, lo, hi *float64) error {
	if (lo == nil) != (hi == nil) {
		return fmt.Errorf("%sMin and %sMax must be set together", axis, axis)
	}
	if lo != nil && *hi <= *lo {
		return fmt.Errorf("%s bounds must be increasing, got [%g, %g]", axis, *lo, *hi)
	}
	return nil
}

type SkyCfg struct {
	Type   string   `json:"type"` // "solid" or "gradient"
	Color  ColorCfg `json:"color,omitempty"`
	Top    ColorCfg `json:"top,omitempty"`
	Bottom ColorCfg `json:"bottom,omitempty"`
}

type SphereCfg struct {
	Center Vec3Cfg `json:"center"`
	Radius float64 `json:"radius"`
}

// TextureCfg selects the UV color function of a plane
type TextureCfg struct {
	Type         string   `json:"type"` // "solid", "checker", "uvdebug" or "image"
	Color        ColorCfg `json:"color,omitempty"`
	CellsPerUnit float64  `json:"cellsPerUnit,omitempty"`
	Even         ColorCfg `json:"even,omitempty"`
	Odd          ColorCfg `json:"odd,omitempty"`
	Path         string   `json:"path,omitempty"` // image file, relative to the scene file
}

type PlaneCfg struct {
	Reference Vec3Cfg    `json:"reference"`
	Normal    Vec3Cfg    `json:"normal"`
	U         Vec3Cfg    `json:"u"`
	V         Vec3Cfg    `json:"v"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	Texture   TextureCfg `json:"texture"`
}

type PointLightCfg struct {
	Position Vec3Cfg  `json:"position"`
	Color    ColorCfg `json:"color"`
}

type DirectionalLightCfg struct {
	Direction Vec3Cfg  `json:"direction"`
	Color     ColorCfg `json:"color"`
}

// SceneFile is the parsed contents of a JSON scene description
type SceneFile struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group,omitempty"`

	Camera            *CameraCfg            `json:"camera,omitempty"`
	Sky               *SkyCfg               `json:"sky,omitempty"`
	Spheres           []SphereCfg           `json:"spheres,omitempty"`
	Planes            []PlaneCfg            `json:"planes,omitempty"`
	PointLights       []PointLightCfg       `json:"pointLights,omitempty"`
	DirectionalLights []DirectionalLightCfg `json:"directionalLights,omitempty"`
}

// LoadSceneFile reads and validates a JSON scene file
func LoadSceneFile(filename string) (*SceneFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	return ParseSceneFile(file)
}

// ParseSceneFile decodes and validates a JSON scene description.
// Unknown fields are rejected so typos do not silently fall back to defaults.
func ParseSceneFile(r io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var sf SceneFile
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

// ErrInvalidScene is wrapped by every error Validate returns
var ErrInvalidScene = errors.New("invalid scene file")

// Validate checks values that would otherwise fail at render time
func (sf *SceneFile) Validate() error {
	if err := sf.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}
	return nil
}

func (sf *SceneFile) validate() error {
	if sf.Camera != nil {
		if err := sf.Camera.validate(); err != nil {
			return fmt.Errorf("camera: %w", err)
		}
	}

	if sf.Sky != nil {
		if err := sf.Sky.validate(); err != nil {
			return fmt.Errorf("sky: %w", err)
		}
	}

	for i, sphere := range sf.Spheres {
		if sphere.Radius <= 0 {
			return fmt.Errorf("sphere %d: radius must be > 0, got %g", i, sphere.Radius)
		}
	}

	for i, plane := range sf.Planes {
		if plane.Width <= 0 || plane.Height <= 0 {
			return fmt.Errorf("plane %d: size must be > 0, got %gx%g", i, plane.Width, plane.Height)
		}
		if plane.Normal == (Vec3Cfg{}) {
			return fmt.Errorf("plane %d: normal must not be zero", i)
		}
		if err := plane.Texture.validate(); err != nil {
			return fmt.Errorf("plane %d: texture: %w", i, err)
		}
	}

	for i, light := range sf.PointLights {
		if _, err := light.Color.Color(); err != nil {
			return fmt.Errorf("point light %d: %w", i, err)
		}
	}

	for i, light := range sf.DirectionalLights {
		if light.Direction == (Vec3Cfg{}) {
			return fmt.Errorf("directional light %d: direction must not be zero", i)
		}
		if _, err := light.Color.Color(); err != nil {
			return fmt.Errorf("directional light %d: %w", i, err)
		}
	}

	return nil
}

func (s *SkyCfg) validate() error {
	switch s.Type {
	case "solid":
		_, err := s.Color.Color()
		return err
	case "gradient":
		if _, err := s.Top.Color(); err != nil {
			return fmt.Errorf("top: %w", err)
		}
		if _, err := s.Bottom.Color(); err != nil {
			return fmt.Errorf("bottom: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unknown sky type %q", s.Type)
	}
}

func (t *TextureCfg) validate() error {
	switch t.Type {
	case "solid":
		_, err := t.Color.Color()
		return err
	case "checker":
		if t.CellsPerUnit <= 0 {
			return fmt.Errorf("cellsPerUnit must be > 0, got %g", t.CellsPerUnit)
		}
		if _, err := t.Even.Color(); err != nil {
			return fmt.Errorf("even: %w", err)
		}
		if _, err := t.Odd.Color(); err != nil {
			return fmt.Errorf("odd: %w", err)
		}
		return nil
	case "uvdebug":
		return nil
	case "image":
		if t.Path == "" {
			return fmt.Errorf("image texture needs a path")
		}
		return nil
	default:
		return fmt.Errorf("unknown texture type %q", t.Type)
	}
}
