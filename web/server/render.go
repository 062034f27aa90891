package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"

	"github.com/df07/go-shadow-raytracer/pkg/core"
	"github.com/df07/go-shadow-raytracer/pkg/output"
	"github.com/df07/go-shadow-raytracer/pkg/renderer"
	"github.com/df07/go-shadow-raytracer/pkg/scene"
)

// StreamMessage is a single message on the /api/stream websocket
type StreamMessage struct {
	Type    string          `json:"type"` // "console", "tile", "complete", "error"
	Console *ConsoleMessage `json:"console,omitempty"`
	Tile    *TileUpdate     `json:"tile,omitempty"`
	Stats   *StatsUpdate    `json:"stats,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// TileUpdate carries one finished tile
type TileUpdate struct {
	TileX      int    `json:"tileX"`
	TileY      int    `json:"tileY"`
	X          int    `json:"x"` // Pixel position of the tile's top-left corner
	Y          int    `json:"y"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	ImageData  string `json:"imageData"`  // Base64 encoded PNG of just this tile
	TileNumber int    `json:"tileNumber"` // Tiles finished so far (1-based)
	TotalTiles int    `json:"totalTiles"`
}

// StatsUpdate is sent with the final "complete" message
type StatsUpdate struct {
	Width       int   `json:"width"`
	Height      int   `json:"height"`
	TotalPixels int   `json:"totalPixels"`
	TotalTiles  int   `json:"totalTiles"`
	NumWorkers  int   `json:"numWorkers"`
	ElapsedMs   int64 `json:"elapsedMs"`
}

// newRaytracer builds the parallel raytracer for a request
func newRaytracer(sceneObj *scene.Scene, req *RenderRequest, logger core.Logger) *renderer.ParallelRaytracer {
	config := renderer.ParallelConfig{
		TileSize:   req.TileSize,
		NumWorkers: req.Workers,
	}
	return renderer.NewParallelRaytracer(sceneObj, renderer.NewCamera(sceneObj.CameraConfig), config, logger)
}

// handleRender renders the whole image and returns it as a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSONError(w, sceneErrorStatus(err), err.Error())
		return
	}

	img, stats, err := newRaytracer(sceneObj, req, nil).Render(r.Context(), nil)
	if err != nil {
		if r.Context().Err() != nil {
			// Client went away
			return
		}
		writeJSONError(w, http.StatusInternalServerError, fmt.Sprintf("Render error: %v", err))
		return
	}

	var buf bytes.Buffer
	if err := output.EncodePNG(&buf, img); err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.Header().Set("X-Render-Tiles", strconv.Itoa(stats.TotalTiles))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleStream renders over a websocket, sending each tile as it finishes
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading websocket: %q", err.Error())
		return
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Close frames are only processed while reading; stop the render when the client leaves
	go func() {
		defer cancel()
		for {
			if _, _, err := ws.NextReader(); err != nil {
				return
			}
		}
	}()

	// Single writer goroutine; gorilla connections allow one concurrent writer
	messages := make(chan StreamMessage, 100)
	writerDone := make(chan struct{})
	go s.writeStreamMessages(ws, cancel, messages, writerDone)

	s.streamRender(ctx, req, messages)

	close(messages)
	<-writerDone
	ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}

// streamRender runs one render, posting every event to messages
func (s *Server) streamRender(ctx context.Context, req *RenderRequest, messages chan<- StreamMessage) {
	sceneObj, err := s.createScene(req)
	if err != nil {
		messages <- StreamMessage{Type: "error", Error: err.Error()}
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go s.streamConsoleMessages(consoleChan, messages, consoleDone)

	startTime := time.Now()
	_, stats, err := newRaytracer(sceneObj, req, webLogger).Render(ctx, func(result renderer.TileCompletionResult) {
		s.handleTileUpdate(result, messages)
	})

	// Rendering has returned, nothing logs to consoleChan any more
	close(consoleChan)
	<-consoleDone
	if dropped := webLogger.Dropped(); dropped > 0 {
		log.Printf("Dropped %d console messages for a slow stream client", dropped)
	}

	if err != nil {
		messages <- StreamMessage{Type: "error", Error: fmt.Sprintf("Rendering failed: %v", err)}
		return
	}

	messages <- StreamMessage{
		Type: "complete",
		Stats: &StatsUpdate{
			Width:       sceneObj.CameraConfig.Width,
			Height:      sceneObj.CameraConfig.Height,
			TotalPixels: stats.TotalPixels,
			TotalTiles:  stats.TotalTiles,
			NumWorkers:  stats.NumWorkers,
			ElapsedMs:   time.Since(startTime).Milliseconds(),
		},
	}
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)
	return consoleChan, webLogger
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(consoleChan <-chan ConsoleMessage, messages chan<- StreamMessage, done chan<- struct{}) {
	defer close(done)
	for consoleMsg := range consoleChan {
		msg := consoleMsg
		messages <- StreamMessage{Type: "console", Console: &msg}
	}
}

// handleTileUpdate encodes a finished tile and queues it
func (s *Server) handleTileUpdate(result renderer.TileCompletionResult, messages chan<- StreamMessage) {
	tileData, err := s.imageToBase64PNG(result.TileImage)
	if err != nil {
		log.Printf("Error encoding tile image (%d, %d): %v", result.TileX, result.TileY, err)
		return
	}

	messages <- StreamMessage{
		Type: "tile",
		Tile: &TileUpdate{
			TileX:      result.TileX,
			TileY:      result.TileY,
			X:          result.Bounds.Min.X,
			Y:          result.Bounds.Min.Y,
			Width:      result.Bounds.Dx(),
			Height:     result.Bounds.Dy(),
			ImageData:  tileData,
			TileNumber: result.TileNumber,
			TotalTiles: result.TotalTiles,
		},
	}
}

// writeStreamMessages writes queued messages until the channel is closed.
// After a write error it cancels the render and drains without writing.
func (s *Server) writeStreamMessages(ws *websocket.Conn, cancel context.CancelFunc, messages <-chan StreamMessage, done chan<- struct{}) {
	defer close(done)

	failed := false
	for msg := range messages {
		if failed {
			continue
		}
		if err := ws.WriteJSON(msg); err != nil {
			log.Printf("Error writing to stream socket: %q", err.Error())
			failed = true
			cancel()
		}
	}
}
