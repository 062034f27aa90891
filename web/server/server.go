package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/df07/go-shadow-raytracer/pkg/loaders"
	"github.com/df07/go-shadow-raytracer/pkg/output"
	"github.com/df07/go-shadow-raytracer/pkg/renderer"
	"github.com/df07/go-shadow-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer preview
type Server struct {
	port      int
	scenesDir string
	mux       *http.ServeMux
	upgrader  websocket.Upgrader
}

// NewServer creates a new web server serving JSON scenes from scenesDir
func NewServer(port int, scenesDir string) *Server {
	s := &Server{
		port:      port,
		scenesDir: scenesDir,
		mux:       http.NewServeMux(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	// API endpoints
	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/stream", s.handleStream)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene    string // Built-in scene name or "json:<file name>"
	Width    int    // Image width (0 keeps the scene's camera)
	Height   int    // Image height (0 keeps the scene's camera)
	TileSize int    // Tile edge in pixels
	Workers  int    // Worker count (0 = CPU count)
}

// Handler returns the HTTP handler for all endpoints
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes followed by the JSON scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	scenes := scene.ListScenes()
	jsonScenes, err := s.listJSONScenes()
	if err != nil {
		log.Printf("Error listing scene files: %v", err)
	}
	scenes = append(scenes, jsonScenes...)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(scenes)
}

func (s *Server) listJSONScenes() ([]scene.SceneInfo, error) {
	if s.scenesDir == "" {
		return nil, nil
	}
	return scene.ListJSONScenesIn(s.scenesDir)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}

	if sceneName := r.URL.Query().Get("scene"); sceneName != "" {
		req.Scene = sceneName
	} else {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(r.URL.Query(), "width", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(r.URL.Query(), "height", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.TileSize, err = parseIntParam(r.URL.Query(), "tileSize", renderer.DefaultParallelConfig().TileSize, 8, 512); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(r.URL.Query(), "workers", 0, 1, 256); err != nil {
		return nil, err
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// createScene creates the requested scene with the requested image size
func (s *Server) createScene(req *RenderRequest) (*scene.Scene, error) {
	override := renderer.CameraConfig{Width: req.Width, Height: req.Height}

	if !strings.HasPrefix(req.Scene, "json:") {
		return scene.Create(req.Scene, override)
	}

	jsonScenes, err := s.listJSONScenes()
	if err != nil {
		return nil, err
	}
	for _, info := range jsonScenes {
		if info.ID == req.Scene {
			return scene.NewJSONScene(info.FilePath, override)
		}
	}
	return nil, fmt.Errorf("%w: %q", scene.ErrUnknownScene, req.Scene)
}

// sceneErrorStatus maps scene creation errors to HTTP status codes
func sceneErrorStatus(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) {
		return http.StatusNotFound
	}
	if errors.Is(err, loaders.ErrInvalidScene) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img *image.RGBA) (string, error) {
	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// writeJSONError writes {"error": message} with the given status
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
