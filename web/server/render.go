package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"k8s.io/klog/v2"

	"github.com/df07/go-whitted-raytracer/pkg/camera"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// progressInterval is the percentage step between progress console messages
const progressInterval = 10

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "complete", "error"
	Data string `json:"data"` // JSON-encoded data
}

// RenderResult is the final event of a render
type RenderResult struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// RenderingPipeline contains the configured scene, camera and raytracer
type RenderingPipeline struct {
	Scene     *scene.Scene
	Camera    *camera.Camera
	Raytracer *renderer.Raytracer
	Config    renderer.RenderConfig
}

// handleRender renders a scene and streams console output and the final image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	// Single writer goroutine; it drains the channel until the handler closes it
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

	req, sceneObj, err := s.parseSceneRequest(r.URL.Query())
	if err != nil {
		sseEventChan <- SSEEvent{Type: "error", Data: fmt.Sprintf("Invalid request: %v", err)}
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(consoleChan, sseEventChan)
	}()

	result, err := s.runRender(ctx, req, sceneObj, webLogger)

	// Render has returned, so nothing logs to the console channel any more
	close(consoleChan)
	<-consoleDone

	if err != nil {
		sseEventChan <- SSEEvent{Type: "error", Data: fmt.Sprintf("Rendering failed: %v", err)}
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		sseEventChan <- SSEEvent{Type: "error", Data: fmt.Sprintf("Encoding result: %v", err)}
		return
	}
	sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}
}

// setupRenderingPipeline creates the camera and raytracer for a parsed request
func (s *Server) setupRenderingPipeline(req *RenderRequest, sceneObj *scene.Scene, logger core.Logger) (*RenderingPipeline, error) {
	cam, err := camera.New(sceneObj.CameraConfig)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", sceneObj.Name, err)
	}

	tracer := renderer.NewRaytracer(sceneObj, renderer.TracerConfig{
		MaxDepth:       req.MaxDepth,
		GlossyRays:     req.GlossyRays,
		SoftShadowRays: req.SoftShadowRays,
	})

	return &RenderingPipeline{
		Scene:     sceneObj,
		Camera:    cam,
		Raytracer: tracer,
		Config: renderer.RenderConfig{
			AntiAliasing:  req.AntiAliasing,
			Adaptive:      req.Adaptive,
			PrintInterval: progressInterval,
			Logger:        logger,
			Metrics:       s.metrics,
		},
	}, nil
}

// runRender renders the request and encodes the finished image
func (s *Server) runRender(ctx context.Context, req *RenderRequest, sceneObj *scene.Scene, logger core.Logger) (*RenderResult, error) {
	pipeline, err := s.setupRenderingPipeline(req, sceneObj, logger)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()
	writer := renderer.NewImageWriter(sceneObj.Name, req.Width, req.Height)
	stats, err := renderer.Render(ctx, pipeline.Camera, pipeline.Raytracer, writer, pipeline.Config)
	if err != nil {
		return nil, err
	}

	imageData, err := imageToBase64PNG(writer.Image())
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &RenderResult{
		ImageData: imageData,
		Width:     req.Width,
		Height:    req.Height,
		Stats: Stats{
			TotalPixels:      stats.TotalPixels,
			TotalRays:        stats.TotalRays,
			AverageRays:      stats.AverageRays,
			AverageLuminance: stats.AverageLuminance,
			PrimitiveCount:   sceneObj.GetPrimitiveCount(),
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents writes every event until the channel is closed. Events
// arriving after the client disconnects are drained and dropped.
func (s *Server) writeSSEEvents(ctx context.Context, w http.ResponseWriter, sseEventChan <-chan SSEEvent) {
	flusher, _ := w.(http.Flusher)
	for event := range sseEventChan {
		if ctx.Err() != nil {
			continue
		}
		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
			klog.V(2).Infof("SSE write failed: %v", err)
			continue
		}
		if flusher != nil {
			flusher.Flush()
		}
	}
}

// streamConsoleMessages forwards console messages as SSE events until the console channel is closed
func (s *Server) streamConsoleMessages(consoleChan <-chan ConsoleMessage, sseEventChan chan<- SSEEvent) {
	for consoleMsg := range consoleChan {
		data, err := json.Marshal(consoleMsg)
		if err != nil {
			klog.Warningf("Error marshaling console message: %v", err)
			continue
		}
		sseEventChan <- SSEEvent{Type: "console", Data: string(data)}
	}
}
