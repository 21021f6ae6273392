package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"net/http"
	"net/url"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"k8s.io/klog/v2"

	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

const (
	defaultScene = "default"

	minImageSize    = 16
	maxImageSize    = 2000
	maxAntiAliasing = 16
	maxDepthLimit   = 50
	maxBeamRays     = 256
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	registry  *prometheus.Registry
	metrics   *renderer.Metrics
}

// NewServer creates a new web server. An empty scenesDir searches the
// default scene locations.
func NewServer(port int, scenesDir string) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		port:      port,
		scenesDir: scenesDir,
		registry:  registry,
		metrics:   renderer.NewMetrics(registry),
	}
}

// RenderRequest represents a render or inspect request from the client
type RenderRequest struct {
	Scene          string `json:"scene"`          // Scene ID (e.g., "default" or "yaml:mirror-room")
	Width          int    `json:"width"`          // Image width
	Height         int    `json:"height"`         // Image height
	AntiAliasing   int    `json:"antiAliasing"`   // Rays per pixel side
	Adaptive       bool   `json:"adaptive"`       // Adaptive super-sampling
	MaxDepth       int    `json:"maxDepth"`       // Maximum recursion depth
	GlossyRays     int    `json:"glossyRays"`     // Rays per glossy or blurry beam
	SoftShadowRays int    `json:"softShadowRays"` // Shadow rays per area light
}

// Validate checks the request against the server limits
func (r RenderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Scene, validation.Required),
		validation.Field(&r.Width, validation.Required, validation.Min(minImageSize), validation.Max(maxImageSize)),
		validation.Field(&r.Height, validation.Required, validation.Min(minImageSize), validation.Max(maxImageSize)),
		validation.Field(&r.AntiAliasing, validation.Required, validation.Min(1), validation.Max(maxAntiAliasing)),
		validation.Field(&r.MaxDepth, validation.Required, validation.Min(1), validation.Max(maxDepthLimit)),
		validation.Field(&r.GlossyRays, validation.Required, validation.Min(1), validation.Max(maxBeamRays)),
		validation.Field(&r.SoftShadowRays, validation.Required, validation.Min(1), validation.Max(maxBeamRays)),
	)
}

// Stats represents render statistics
type Stats struct {
	TotalPixels      int     `json:"totalPixels"`
	TotalRays        int     `json:"totalRays"`
	AverageRays      float64 `json:"averageRays"`
	AverageLuminance float64 `json:"averageLuminance"`
	PrimitiveCount   int     `json:"primitiveCount"`
}

// Handler returns the server's routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	klog.Infof("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in and file scenes, grouped for the scene picker
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	groups, err := scene.ListAllScenes(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

// handleSceneConfig returns the default configuration for a scene
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

	config := sceneObj.SamplingConfig
	maxDepth := config.MaxDepth
	if maxDepth <= 0 {
		maxDepth = renderer.DefaultMaxDepth
	}

	response := map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]interface{}{
			"width":          config.Width,
			"height":         config.Height,
			"antiAliasing":   config.AntiAliasing,
			"maxDepth":       maxDepth,
			"glossyRays":     1,
			"softShadowRays": 1,
		},
		"limits": map[string]interface{}{
			"width":          map[string]int{"min": minImageSize, "max": maxImageSize},
			"height":         map[string]int{"min": minImageSize, "max": maxImageSize},
			"antiAliasing":   map[string]int{"min": 1, "max": maxAntiAliasing},
			"maxDepth":       map[string]int{"min": 1, "max": maxDepthLimit},
			"glossyRays":     map[string]int{"min": 1, "max": maxBeamRays},
			"softShadowRays": map[string]int{"min": 1, "max": maxBeamRays},
		},
	}
	writeJSON(w, http.StatusOK, response)
}

// createScene creates a scene from a built-in or file scene ID
func (s *Server) createScene(sceneName string) (*scene.Scene, error) {
	return loaders.ResolveScene(sceneName, s.scenesDir)
}

// parseSceneRequest parses the scene and image parameters, taking defaults
// from the scene itself
func (s *Server) parseSceneRequest(values url.Values) (*RenderRequest, *scene.Scene, error) {
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = defaultScene
	}

	sceneObj, err := s.createScene(req.Scene)
	if err != nil {
		return nil, nil, err
	}
	defaults := sceneObj.SamplingConfig
	maxDepth := defaults.MaxDepth
	if maxDepth <= 0 {
		maxDepth = renderer.DefaultMaxDepth
	}

	if req.Width, err = parseIntParam(values, "width", defaults.Width); err != nil {
		return nil, nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaults.Height); err != nil {
		return nil, nil, err
	}
	if req.AntiAliasing, err = parseIntParam(values, "antiAliasing", defaults.AntiAliasing); err != nil {
		return nil, nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", maxDepth); err != nil {
		return nil, nil, err
	}
	if req.GlossyRays, err = parseIntParam(values, "glossyRays", 1); err != nil {
		return nil, nil, err
	}
	if req.SoftShadowRays, err = parseIntParam(values, "softShadowRays", 1); err != nil {
		return nil, nil, err
	}
	if v := values.Get("adaptive"); v != "" {
		if req.Adaptive, err = strconv.ParseBool(v); err != nil {
			return nil, nil, fmt.Errorf("invalid adaptive: %s", v)
		}
	}

	if err := req.Validate(); err != nil {
		return nil, nil, err
	}

	// Performance warning
	if req.Width*req.Height > 800*600 && req.AntiAliasing*req.GlossyRays > 64 {
		klog.Warningf("Render warning: large image with many rays per pixel may render slowly")
	}
	return req, sceneObj, nil
}

// parseIntParam parses an integer parameter from URL query
func parseIntParam(values url.Values, key string, defaultValue int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		klog.Warningf("Error encoding response: %v", err)
	}
}
