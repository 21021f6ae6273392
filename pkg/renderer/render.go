package renderer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/atomic"

	"github.com/df07/go-whitted-raytracer/pkg/camera"
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// RenderConfig contains configuration for rendering a full image
type RenderConfig struct {
	AntiAliasing  int         // Rays per pixel side; <= 1 traces the pixel center
	Adaptive      bool        // Use adaptive super-sampling instead of a uniform grid
	NumWorkers    int         // Number of parallel workers (0 = use CPU count)
	PrintInterval float64     // Progress is logged every PrintInterval percent; <= 0 disables it
	Logger        core.Logger // Progress output; nil discards it
	Metrics       *Metrics    // Optional collectors
}

// DefaultRenderConfig returns sensible default values
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		AntiAliasing:  1,
		NumWorkers:    0, // Auto-detect CPU count
		PrintInterval: 10,
		Logger:        NewDefaultLogger(),
	}
}

// progress counts finished rows from many workers and logs each time another
// interval percent of the image is done
type progress struct {
	total    int
	interval float64
	done     atomic.Int64
	reported atomic.Int64
	logger   core.Logger
}

func (p *progress) rowDone() {
	done := p.done.Inc()
	if p.interval <= 0 {
		return
	}
	percent := 100 * float64(done) / float64(p.total)
	step := int64(percent / p.interval)
	for {
		last := p.reported.Load()
		if step <= last {
			return
		}
		if p.reported.CompareAndSwap(last, step) {
			p.logger.Printf("%.1f%%\n", percent)
			return
		}
	}
}

// Render traces every pixel of w through cam, one row per task. Rows not yet
// started when ctx is cancelled are skipped and ctx.Err() is returned.
func Render(ctx context.Context, cam *camera.Camera, rt *Raytracer, w *ImageWriter, cfg RenderConfig) (RenderStats, error) {
	nX, nY := w.Width(), w.Height()
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	if nX == 0 || nY == 0 {
		return RenderStats{}, nil
	}

	start := time.Now()
	prog := &progress{total: nY, interval: cfg.PrintInterval, logger: logger}

	renderRow := func(task RowTask) RowResult {
		if err := ctx.Err(); err != nil {
			return RowResult{Error: err}
		}
		cfg.Metrics.rowStarted()
		rays := 0
		for j := 0; j < nX; j++ {
			color, n := rt.renderPixel(cam, nX, nY, j, task.Row, cfg)
			w.WritePixel(j, task.Row, color)
			rays += n
		}
		cfg.Metrics.rowDone(nX, rays)
		prog.rowDone()
		return RowResult{Pixels: nX, Rays: rays}
	}

	pool := NewWorkerPool(renderRow, nY, cfg.NumWorkers)
	logger.Printf("Rendering %s (%dx%d) using %d workers...\n", w.Name(), nX, nY, pool.GetNumWorkers())

	pool.Start()
	for i := 0; i < nY; i++ {
		pool.SubmitTask(RowTask{Row: i, TaskID: i})
	}
	pool.Stop()

	var stats RenderStats
	skipped := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			skipped++
			continue
		}
		stats.addRow(result)
	}

	elapsed := time.Since(start)
	stats.finalize(w.Image(), elapsed)
	cfg.Metrics.observeRender(elapsed)

	if err := ctx.Err(); err != nil {
		logger.Printf("Rendering cancelled after %d of %d pixels (%d rows skipped)\n", stats.TotalPixels, nX*nY, skipped)
		return stats, fmt.Errorf("render %s: %w", w.Name(), err)
	}
	logger.Printf("Render completed in %v (%.2f rays/pixel)\n", elapsed, stats.AverageRays)
	return stats, nil
}

// renderPixel returns the color of pixel (j, i) and the number of primary rays traced for it
func (rt *Raytracer) renderPixel(cam *camera.Camera, nX, nY, j, i int, cfg RenderConfig) (core.Color, int) {
	n := cfg.AntiAliasing
	switch {
	case n <= 1:
		return rt.TraceRay(cam.ConstructRay(nX, nY, j, i)), 1
	case cfg.Adaptive:
		return rt.adaptiveSuperSample(cam, nX, nY, j, i, n)
	default:
		rays := cam.ConstructRays(nX, nY, j, i, n)
		return rt.TraceRays(rays), len(rays)
	}
}
