package renderer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "raytracer"

// Metrics holds the render loop's Prometheus collectors. A nil *Metrics records nothing.
type Metrics struct {
	pixelsRendered prometheus.Counter
	raysTraced     prometheus.Counter
	rowsInFlight   prometheus.Gauge
	renderDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		pixelsRendered: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "pixels_rendered_total",
			Help:      "Number of pixels written to the image.",
		}),
		raysTraced: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "primary_rays_traced_total",
			Help:      "Number of camera rays traced.",
		}),
		rowsInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "rows_in_flight",
			Help:      "Number of image rows currently being rendered.",
		}),
		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "render_duration_seconds",
			Help:      "Wall time of complete renders.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 12),
		}),
	}
}

func (m *Metrics) rowStarted() {
	if m != nil {
		m.rowsInFlight.Inc()
	}
}

func (m *Metrics) rowDone(pixels, rays int) {
	if m == nil {
		return
	}
	m.rowsInFlight.Dec()
	m.pixelsRendered.Add(float64(pixels))
	m.raysTraced.Add(float64(rays))
}

func (m *Metrics) observeRender(d time.Duration) {
	if m != nil {
		m.renderDuration.Observe(d.Seconds())
	}
}
