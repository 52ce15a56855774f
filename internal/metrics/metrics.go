// Package metrics exposes conversion pipeline metrics in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/JonMunkholm/TableConverter/internal/core"
)

const namespace = "tableconverter"

// Collector records pipeline stage and file outcomes. It implements
// core.StageObserver.
type Collector struct {
	registry      *prometheus.Registry
	stages        *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	files         *prometheus.CounterVec
	requests      *prometheus.CounterVec
}

var _ core.StageObserver = (*Collector)(nil)

// New creates a Collector on its own registry, including the Go runtime and
// process collectors.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		stages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_stages_total",
			Help:      "Pipeline stages run, by stage and outcome.",
		}, []string{"stage", "outcome"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of completed pipeline stages.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5, 15},
		}, []string{"stage"}),
		files: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "files_processed_total",
			Help:      "Files processed, by source format and outcome.",
		}, []string{"format", "outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests, by route pattern and status code class.",
		}, []string{"route", "code"}),
	}

	c.registry.MustRegister(
		c.stages,
		c.stageDuration,
		c.files,
		c.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveStage records one stage run. Failed stages are counted but their
// duration is not observed.
func (c *Collector) ObserveStage(stage core.Stage, outcome string, d time.Duration) {
	c.stages.WithLabelValues(string(stage), outcome).Inc()
	if outcome != core.OutcomeError {
		c.stageDuration.WithLabelValues(string(stage)).Observe(d.Seconds())
	}
}

// ObserveFile records the final outcome of one file.
func (c *Collector) ObserveFile(format string, outcome string) {
	c.files.WithLabelValues(format, outcome).Inc()
}

// ObserveRequest records one HTTP request. code is the status class ("2xx").
func (c *Collector) ObserveRequest(route string, status int) {
	c.requests.WithLabelValues(route, statusClass(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
