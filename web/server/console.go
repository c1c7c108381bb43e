package server

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Turtyo/rayTracing3D/pkg/core"
)

const (
	levelInfo    = "info"
	levelWarning = "warning"
	levelError   = "error"
)

// ConsoleMessage is one line of render output forwarded to the browser
type ConsoleMessage struct {
	RenderID  string    `json:"renderId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
}

// WebLogger is the core.Logger handed to a web render. Every line goes to the
// server log; lines are also offered to the console channel, and dropped
// when the stream consumer falls behind.
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

var _ core.Logger = (*WebLogger)(nil)

// Printf logs at info level
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	wl.send(levelInfo, fmt.Sprintf(format, args...))
}

// Warnf logs at warning level
func (wl *WebLogger) Warnf(format string, args ...interface{}) {
	wl.send(levelWarning, fmt.Sprintf(format, args...))
}

// Errorf logs at error level
func (wl *WebLogger) Errorf(format string, args ...interface{}) {
	wl.send(levelError, fmt.Sprintf(format, args...))
}

// Dropped returns how many messages did not fit in the console channel
func (wl *WebLogger) Dropped() int64 {
	return wl.dropped.Load()
}

func (wl *WebLogger) send(level, message string) {
	log.Printf("[%s] %s", wl.renderID, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		RenderID:  wl.renderID,
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	}:
	default:
		wl.dropped.Add(1)
	}
}
