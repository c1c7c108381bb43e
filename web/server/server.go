package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Turtyo/rayTracing3D/pkg/core"
	"github.com/Turtyo/rayTracing3D/pkg/loaders"
	"github.com/Turtyo/rayTracing3D/pkg/scene"
)

const (
	defaultScene    = "some-spheres"
	shutdownTimeout = 5 * time.Second
)

// Server handles web requests for the path tracer
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene      string              `json:"scene"`      // Built-in name or "file:<name>" scene ID
	Width      int                 `json:"width"`      // Image width
	Height     int                 `json:"height"`     // Image height
	Samples    int                 `json:"samples"`    // Samples per pixel
	Bounces    int                 `json:"bounces"`    // Maximum bounces per path
	Seed       uint64              `json:"seed"`       // Root seed
	Jitter     bool                `json:"jitter"`     // Sub-pixel jitter of eye rays
	Scheme     core.SamplingScheme `json:"-"`          // Bounce sampling scheme
	Integrator string              `json:"integrator"` // "path" or "direct"
	Format     string              `json:"format"`     // Image encoding of /api/render
}

// Handler returns the routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/render/stream", s.handleRenderStream)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting web server on http://localhost%s", httpServer.Addr)
		errChan <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	log.Printf("Shutting down web server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes and the JSON scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default sampling of a scene with the
// request limits
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = defaultScene
	}

	sceneObj, err := s.createScene(sceneName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":       sceneName,
		"description": sceneObj.Description,
		"spheres":     sceneObj.GetPrimitiveCount(),
		"lights":      len(sceneObj.Lights()),
		"defaults": map[string]interface{}{
			"samples":  sceneObj.Sampling.SamplesPerPixel,
			"bounces":  sceneObj.Sampling.Bounces,
			"sampling": sceneObj.Sampling.Scheme.String(),
			"width":    sceneObj.Grid.Width,
			"height":   sceneObj.Grid.Height,
		},
		"limits": map[string]interface{}{
			"width":   map[string]int{"min": minSize, "max": maxSize},
			"height":  map[string]int{"min": minSize, "max": maxSize},
			"samples": map[string]int{"min": 1, "max": maxSamples},
			"bounces": map[string]int{"min": 0, "max": maxBounces},
		},
	})
}

// Request limits
const (
	minSize    = 1
	maxSize    = 2000
	maxSamples = 10000
	maxBounces = 100
)

// parseCommonSceneParams parses the scene and image size shared by the
// render and inspect endpoints
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	if sceneName := r.URL.Query().Get("scene"); sceneName != "" {
		req.Scene = sceneName
	} else {
		req.Scene = defaultScene
	}

	var err error
	if req.Width, err = parseIntParam(r.URL.Query(), "width", 320, minSize, maxSize); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(r.URL.Query(), "height", 180, minSize, maxSize); err != nil {
		return err
	}
	return nil
}

// parseRenderRequest parses request parameters. Sampling defaults come from
// the scene.
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, nil, err
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, nil, err
	}

	query := r.URL.Query()
	if req.Samples, err = parseIntParam(query, "samples", sceneObj.Sampling.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, nil, err
	}
	if req.Bounces, err = parseIntParam(query, "bounces", sceneObj.Sampling.Bounces, 0, maxBounces); err != nil {
		return nil, nil, err
	}
	seed, err := parseIntParam(query, "seed", 1, 0, int(^uint32(0)>>1))
	if err != nil {
		return nil, nil, err
	}
	req.Seed = uint64(seed)
	if req.Jitter, err = parseBoolParam(query, "jitter"); err != nil {
		return nil, nil, err
	}

	req.Scheme = sceneObj.Sampling.Scheme
	if name := query.Get("sampling"); name != "" {
		if req.Scheme, err = core.ParseSamplingScheme(name); err != nil {
			return nil, nil, err
		}
	}

	req.Integrator = query.Get("integrator")
	switch req.Integrator {
	case "":
		req.Integrator = "path"
	case "path", "direct":
	default:
		return nil, nil, fmt.Errorf("unknown integrator: %s", req.Integrator)
	}

	req.Format = strings.ToLower(query.Get("format"))
	if req.Format == "" {
		req.Format = "png"
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, sceneObj, nil
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

// parseBoolParam parses an optional boolean parameter, false when absent
func parseBoolParam(values url.Values, key string) (bool, error) {
	value := values.Get(key)
	if value == "" {
		return false, nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %s", key, value)
	}
	return parsed, nil
}

// createScene builds a built-in scene or loads a discovered scene file
func (s *Server) createScene(id string) (*scene.Scene, error) {
	if !strings.HasPrefix(id, "file:") {
		return scene.Create(id)
	}

	files, err := scene.ListSceneFiles()
	if err != nil {
		return nil, err
	}
	for _, info := range files {
		if info.ID == id {
			sceneObj, err := loaders.LoadSceneFile(info.FilePath)
			if err != nil {
				return nil, err
			}
			sceneObj.Description = info.Description
			return sceneObj, nil
		}
	}
	return nil, fmt.Errorf("unknown scene: %s", id)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
