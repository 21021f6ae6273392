package main

import (
	"context"
	"errors"
	goflag "flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/df07/go-whitted-raytracer/pkg/camera"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// options holds the command line settings. Zero image settings fall back to the scene's.
type options struct {
	sceneName      string
	scenesDir      string
	outputDir      string
	width          int
	height         int
	antiAliasing   int
	adaptive       bool
	workers        int
	maxDepth       int
	glossyRays     int
	softShadowRays int
	metricsAddr    string
	list           bool
}

func main() {
	klog.InitFlags(goflag.CommandLine)
	defer klog.Flush()

	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "raytracer",
		Short: "Whitted Raytracer",
		Long: "Renders a built-in or YAML scene with recursive Whitted ray tracing.\n\n" +
			"Output will be saved to <out>/<scene>/render_<timestamp>.png",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			if opts.list {
				return listScenes(opts.scenesDir)
			}
			return run(ctx, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.sceneName, "scene", "default", "Built-in scene ID, yaml:<name> or path to a YAML scene file")
	flags.StringVar(&opts.scenesDir, "scenes-dir", "", "Directory of YAML scene files (default ./scenes)")
	flags.StringVar(&opts.outputDir, "out", "output", "Output directory")
	flags.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	flags.IntVar(&opts.height, "height", 0, "Image height in pixels (0 = scene default)")
	flags.IntVar(&opts.antiAliasing, "anti-aliasing", 0, "Rays per pixel side (0 = scene default)")
	flags.BoolVar(&opts.adaptive, "adaptive", false, "Use adaptive super-sampling")
	flags.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	flags.IntVar(&opts.maxDepth, "depth", 0, "Maximum recursion depth (0 = scene default)")
	flags.IntVar(&opts.glossyRays, "glossy-rays", 1, "Rays per glossy reflection or blurry refraction")
	flags.IntVar(&opts.softShadowRays, "soft-shadow-rays", 1, "Shadow rays per area light")
	flags.StringVar(&opts.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while rendering")
	flags.BoolVar(&opts.list, "list", false, "List available scenes and exit")

	// klog's -v, -logtostderr and friends
	cmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	return cmd
}

func run(ctx context.Context, opts *options) error {
	selectedScene, err := createScene(opts.sceneName, opts.scenesDir)
	if err != nil {
		return err
	}
	klog.V(1).Infof("Using scene %q with %d primitives", selectedScene.Name, selectedScene.GetPrimitiveCount())

	sampling := applyOverrides(selectedScene.SamplingConfig, opts)

	cam, err := camera.New(selectedScene.CameraConfig)
	if err != nil {
		return fmt.Errorf("scene %s: %w", selectedScene.Name, err)
	}

	var metrics *renderer.Metrics
	if opts.metricsAddr != "" {
		registry := prometheus.NewRegistry()
		metrics = renderer.NewMetrics(registry)
		server := serveMetrics(opts.metricsAddr, registry)
		defer server.Close()
	}

	tracer := renderer.NewRaytracer(selectedScene, renderer.TracerConfig{
		MaxDepth:       sampling.MaxDepth,
		GlossyRays:     opts.glossyRays,
		SoftShadowRays: opts.softShadowRays,
	})
	writer := renderer.NewImageWriter(selectedScene.Name, sampling.Width, sampling.Height)

	stats, err := renderer.Render(ctx, cam, tracer, writer, renderer.RenderConfig{
		AntiAliasing:  sampling.AntiAliasing,
		Adaptive:      opts.adaptive,
		NumWorkers:    opts.workers,
		PrintInterval: 10,
		Logger:        renderer.NewKlogLogger(0),
		Metrics:       metrics,
	})
	if err != nil {
		return err
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(createOutputDir(opts.outputDir, opts.sceneName), fmt.Sprintf("render_%s.png", timestamp))
	if err := writer.WritePNG(filename); err != nil {
		return err
	}

	fmt.Printf("Render completed in %v (%d pixels, %.2f rays/pixel, luminance %.3f)\n",
		stats.Duration, stats.TotalPixels, stats.AverageRays, stats.AverageLuminance)
	fmt.Printf("Render saved as %s\n", filename)
	return nil
}

// applyOverrides merges the non-zero command line image settings into the scene's
func applyOverrides(sampling scene.SamplingConfig, opts *options) scene.SamplingConfig {
	if opts.width > 0 {
		sampling.Width = opts.width
	}
	if opts.height > 0 {
		sampling.Height = opts.height
	}
	if opts.antiAliasing > 0 {
		sampling.AntiAliasing = opts.antiAliasing
	}
	if opts.maxDepth > 0 {
		sampling.MaxDepth = opts.maxDepth
	}
	return sampling
}

// createScene resolves a built-in scene ID, a yaml:<name> ID from the scenes
// directory, or a path to a YAML scene file
func createScene(name, scenesDir string) (*scene.Scene, error) {
	return loaders.ResolveScene(name, scenesDir)
}

// createOutputDir returns the directory renders of a scene are written to
func createOutputDir(root, sceneName string) string {
	base := strings.TrimPrefix(sceneName, "yaml:")
	base = strings.TrimSuffix(filepath.Base(base), filepath.Ext(base))
	return filepath.Join(root, base)
}

func listScenes(scenesDir string) error {
	groups, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, group := range groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Printf("  %-20s %s\n", info.ID, info.DisplayName)
			if info.Description != "" {
				fmt.Printf("  %-20s %s\n", "", info.Description)
			}
		}
	}
	return nil
}

func serveMetrics(addr string, registry *prometheus.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Addr: addr, Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Warningf("metrics server on %s: %v", addr, err)
		}
	}()
	klog.V(1).Infof("Serving metrics on http://%s/metrics", addr)
	return server
}
