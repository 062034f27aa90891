package server

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
)

// ConsoleMessage is one renderer log line forwarded to a stream client
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info" or "warning"
}

// consoleLevel classifies a renderer log line. The renderer only reports
// problems when a render is cut short.
func consoleLevel(message string) string {
	lower := strings.ToLower(message)
	if strings.Contains(lower, "stopped") || strings.Contains(lower, "failed") {
		return "warning"
	}
	return "info"
}

// WebLogger is the core.Logger handed to a streamed render. Lines go to
// stdout tagged with the render ID and, without blocking, to the client.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	dropped     atomic.Int64
}

// NewWebLogger creates a logger for one render. consoleChan may be nil.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
	}
}

func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Printf("[%s] %s", wl.renderID, message)

	if wl.consoleChan == nil {
		return
	}

	msg := ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     consoleLevel(message),
	}
	select {
	case wl.consoleChan <- msg:
	default:
		wl.dropped.Add(1)
	}
}

// Dropped returns how many lines were not delivered because the channel was full
func (wl *WebLogger) Dropped() int64 {
	return wl.dropped.Load()
}
