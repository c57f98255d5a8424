// Package metrics implements ports.MetricsRecorder with Prometheus collectors.
// Each Recorder owns its registry so several can coexist (tests, embedded use).
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder implements ports.MetricsRecorder.
type Recorder struct {
	registry *prometheus.Registry

	fetchTotal       *prometheus.CounterVec
	fetchDuration    *prometheus.HistogramVec
	cacheTotal       *prometheus.CounterVec
	generateTotal    prometheus.Counter
	generateDuration prometheus.Histogram
	tagsEmitted      prometheus.Histogram
}

// NewRecorder creates a Recorder with a fresh registry that also carries the
// standard Go runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		fetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taggenie_fetch_total",
				Help: "External lookups by source and outcome",
			},
			[]string{"source", "status"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "taggenie_fetch_duration_seconds",
				Help:    "Duration of external lookups in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		cacheTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "taggenie_cache_lookups_total",
				Help: "Response cache lookups by source and result",
			},
			[]string{"source", "result"},
		),
		generateTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "taggenie_generate_total",
			Help: "Tag generations served",
		}),
		generateDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "taggenie_generate_duration_seconds",
			Help:    "End-to-end duration of tag generation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		tagsEmitted: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "taggenie_tags_emitted",
			Help:    "Number of tags returned per generation",
			Buckets: []float64{0, 5, 10, 18, 25, 40},
		}),
	}
}

// ObserveFetch records one external lookup.
func (r *Recorder) ObserveFetch(source string, elapsed time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	r.fetchTotal.WithLabelValues(source, status).Inc()
	r.fetchDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveCache records a cache hit or miss.
func (r *Recorder) ObserveCache(source string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheTotal.WithLabelValues(source, result).Inc()
}

// ObserveGenerate records one completed generation.
func (r *Recorder) ObserveGenerate(elapsed time.Duration, tags int) {
	r.generateTotal.Inc()
	r.generateDuration.Observe(elapsed.Seconds())
	r.tagsEmitted.Observe(float64(tags))
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
