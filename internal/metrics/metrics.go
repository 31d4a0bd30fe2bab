// Package metrics exposes Prometheus collectors for HTTP traffic, pipeline
// runs and the loaded dataset.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"edudash.insights.org/internal/pipeline"
)

const namespace = "edudash"

// Pipeline outcome label values. An empty selection is answered normally,
// so it is counted apart from errors.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Collectors owns a private registry so tests and multiple servers in one
// process never collide on the global one. A nil *Collectors is valid and
// records nothing.
type Collectors struct {
	registry         *prometheus.Registry
	requests         *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	pipelineRuns     *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec
	datasetRecords   prometheus.Gauge
}

func New() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route, method and status code.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "code"}),
		pipelineRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Pipeline operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		pipelineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Pipeline operation latency.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"operation"}),
		datasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Records in the loaded dataset.",
		}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.requests,
		c.requestDuration,
		c.pipelineRuns,
		c.pipelineDuration,
		c.datasetRecords,
	)
	return c
}

func (c *Collectors) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the exposition format for the private registry.
func (c *Collectors) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Instrument counts and times requests to h under the given route label.
func (c *Collectors) Instrument(route string, h http.Handler) http.Handler {
	if c == nil {
		return h
	}
	labels := prometheus.Labels{"route": route}
	return promhttp.InstrumentHandlerDuration(
		c.requestDuration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(c.requests.MustCurryWith(labels), h),
	)
}

// ObservePipeline records one pipeline call that started at start.
func (c *Collectors) ObservePipeline(operation string, start time.Time, err error) {
	if c == nil {
		return
	}
	c.pipelineRuns.WithLabelValues(operation, pipelineOutcome(err)).Inc()
	c.pipelineDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func pipelineOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, pipeline.ErrEmptyInput):
		return OutcomeEmpty
	default:
		return OutcomeError
	}
}

func (c *Collectors) SetDatasetRecords(n int) {
	if c == nil {
		return
	}
	c.datasetRecords.Set(float64(n))
}
