package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/export"
	"github.com/Turtyo/rayTracing3D/pkg/integrator"
	"github.com/Turtyo/rayTracing3D/pkg/renderer"
	"github.com/Turtyo/rayTracing3D/pkg/scene"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// CompleteUpdate is sent once the image is finished
type CompleteUpdate struct {
	ImageData        string  `json:"imageData"` // Base64 encoded PNG
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	ElapsedMs        int64   `json:"elapsedMs"`
	TotalSamples     int     `json:"totalSamples"`
	Draws            int     `json:"draws"`
	AverageLuminance float64 `json:"averageLuminance"`
	PrimitiveCount   int     `json:"primitiveCount"`
	DroppedMessages  int64   `json:"droppedMessages"`
}

// renderOptions configures a render of sceneObj for req. The pixel size is
// scaled so that the image covers the same horizontal extent as the scene's grid.
func (s *Server) renderOptions(req *RenderRequest, sceneObj *scene.Scene, logger core.Logger) []renderer.Option {
	pixelSize := sceneObj.Grid.PixelSize * float64(sceneObj.Grid.Width) / float64(req.Width)

	opts := []renderer.Option{
		renderer.WithCamera(renderer.NewCamera(req.Width, req.Height, pixelSize)),
		renderer.WithSeed(req.Seed),
		renderer.WithJitter(req.Jitter),
		renderer.WithScheme(req.Scheme),
		renderer.WithBackground(sceneObj.Background),
		renderer.WithLogger(logger),
	}
	if req.Integrator == "direct" {
		opts = append(opts, renderer.WithIntegrator(integrator.NewDirectLightingIntegrator(sceneObj.Background)))
	}
	return opts
}

// handleRender renders the whole image and returns it encoded
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
		return
	}
	format, err := export.FormatFromPath("render." + req.Format)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request: " + err.Error()})
		return
	}

	logger := NewWebLogger(fmt.Sprintf("render-%d", time.Now().UnixNano()), nil)
	sink := &export.MemorySink{}
	opts := s.renderOptions(req, sceneObj, logger)
	if _, err := renderer.RayTraceImage(r.Context(), req.Samples, req.Bounces, sceneObj.Objects, sink, opts...); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Rendering failed: " + err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, sink.Image(), format); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Encoding failed: " + err.Error()})
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// handleRenderStream renders the image and streams the render log via SSE,
// ending with a "complete" event that carries the image
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine, drained before the handler returns
	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(ctx, w, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	startTime := time.Now()
	rt := renderer.NewRaytracer(sceneObj.Objects, req.Samples, req.Bounces, s.renderOptions(req, sceneObj, webLogger)...)
	grid, stats, err := rt.Render(ctx)

	// The logger is no longer used, flush what it queued
	if err != nil {
		webLogger.Errorf("render failed: %v\n", err)
	}
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	imageData, err := imageToBase64PNG(grid)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Encoding failed: %v", err))
		return
	}

	data, err := json.Marshal(CompleteUpdate{
		ImageData:        imageData,
		Width:            grid.Width,
		Height:           grid.Height,
		ElapsedMs:        time.Since(startTime).Milliseconds(),
		TotalSamples:     stats.TotalSamples,
		Draws:            stats.Draws,
		AverageLuminance: stats.AverageLuminance,
		PrimitiveCount:   sceneObj.GetPrimitiveCount(),
		DroppedMessages:  webLogger.Dropped(),
	})
	if err != nil {
		log.Printf("Error marshaling completion: %v", err)
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes every SSE event of a request from a single goroutine
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				// Client disconnected during write
				return
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			log.Printf("Error marshaling console message: %v", err)
			continue
		}

		select {
		case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
		case <-ctx.Done():
		default:
			// Channel full, skip message to avoid blocking
		}
	}
}

// imageToBase64PNG converts a grid to a base64-encoded PNG
func imageToBase64PNG(grid *renderer.Grid) (string, error) {
	img, err := export.ToImage(grid.RGB(), grid.Width, grid.Height)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := export.Encode(&buf, img, export.PNG); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan<- SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
		// Client disconnected, don't block
	}
}
