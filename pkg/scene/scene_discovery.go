package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/df07/go-shadow-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned by Create for names that are not built in
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to scene file (json type only)
}

// Factory builds a scene, optionally overriding its camera
type Factory func(cameraOverrides ...renderer.CameraConfig) (*Scene, error)

type builtinScene struct {
	info    SceneInfo
	factory Factory
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID: "default", Name: "default", DisplayName: "Sphere on Checkerboard",
			Description: "Normal-shaded unit sphere on a checkerboard with a point and a directional light",
		},
		factory: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID: "shadows", Name: "shadows", DisplayName: "Overlapping Shadows",
			Description: "Three spheres on a wide floor under three lights",
		},
		factory: NewShadowScene,
	},
	{
		info: SceneInfo{
			ID: "uv-debug", Name: "uv-debug", DisplayName: "UV Debug Wall",
			Description: "A plane segment colored by its own UV coordinates",
		},
		factory: NewUVDebugScene,
	},
}

// ListScenes returns the built-in scenes
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, builtin := range builtinScenes {
		info := builtin.info
		info.Group = "Built-in Scenes"
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// Create builds the named built-in scene
func Create(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, builtin := range builtinScenes {
		if builtin.info.Name == name {
			return builtin.factory(cameraOverrides...)
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}

// ListJSONScenes scans the scenes directory and returns discovered JSON scene files
func ListJSONScenes() ([]SceneInfo, error) {
	// Try different possible paths for scenes directory
	possiblePaths := []string{"scenes", "../scenes"}
	var scenesDir string

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			scenesDir = path
			break
		}
	}

	if scenesDir == "" {
		// No scenes directory found, return empty list
		return []SceneInfo{}, nil
	}

	return ListJSONScenesIn(scenesDir)
}

// ListJSONScenesIn returns the JSON scene files found directly in dir
func ListJSONScenesIn(dir string) ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		sceneInfo, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Log warning but continue processing other files
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, sceneInfo)
	}

	// Sort scenes by display name
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ParseSceneMetadata reads the descriptive top-level fields of a JSON scene file
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:          fmt.Sprintf("json:%s", nameWithoutExt),
		Name:        nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Group:       "Scene Files",
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, err
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, err
	}

	if header.Name != "" {
		sceneInfo.DisplayName = header.Name
	}
	sceneInfo.Description = header.Description
	if header.Group != "" {
		sceneInfo.Group = header.Group
	}

	return sceneInfo, nil
}

// titleCase converts "my-scene_name" to "My Scene Name"
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}
	return strings.Join(words, " ")
}
