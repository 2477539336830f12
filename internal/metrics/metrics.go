// Package metrics exposes editor counters in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sketchpad"

// Collector records frame, renderer and scene metrics on its own registry.
type Collector struct {
	registry         *prometheus.Registry
	frames           prometheus.Counter
	frameDuration    prometheus.Histogram
	rendererFailures *prometheus.CounterVec
	entities         prometheus.Gauge
	toolSwitches     *prometheus.CounterVec
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Frames drawn by the render pipeline.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_duration_seconds",
			Help:      "Time spent drawing one frame.",
			Buckets:   []float64{.0005, .001, .002, .004, .008, .016, .033, .066},
		}),
		rendererFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renderer_failures_total",
			Help:      "Renderer and overlay failures caught during a frame.",
		}, []string{"renderer"}),
		entities: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "entities",
			Help:      "Entities in the current space.",
		}),
		toolSwitches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_switches_total",
			Help:      "Times a tool became current.",
		}, []string{"tool"}),
	}
	c.registry.MustRegister(c.frames, c.frameDuration, c.rendererFailures, c.entities, c.toolSwitches)
	return c
}

func (c *Collector) FrameRendered(d time.Duration) {
	c.frames.Inc()
	c.frameDuration.Observe(d.Seconds())
}

func (c *Collector) RendererFailed(name string) {
	c.rendererFailures.WithLabelValues(name).Inc()
}

func (c *Collector) EntitiesChanged(n int) {
	c.entities.Set(float64(n))
}

func (c *Collector) ToolSwitched(id string) {
	if id == "" {
		id = "none"
	}
	c.toolSwitches.WithLabelValues(id).Inc()
}

// Registry returns the registry the collectors live on.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
