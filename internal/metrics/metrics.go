// Package metrics exposes Prometheus collectors for tool calls and
// backend requests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "cronty"

// Status labels for tool calls.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// PrometheusMetrics groups the collectors. A nil *PrometheusMetrics is a
// valid no-op recorder.
type PrometheusMetrics struct {
	gatherer        prometheus.Gatherer
	toolCalls       *prometheus.CounterVec
	toolDuration    *prometheus.HistogramVec
	toolsInFlight   prometheus.Gauge
	backendRequests *prometheus.CounterVec
}

// InitPrometheusMetrics creates and registers the collectors on reg. When
// reg is nil a private registry is used.
func InitPrometheusMetrics(namespace string, reg *prometheus.Registry) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}

	m := &PrometheusMetrics{
		gatherer: reg,
		toolCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total number of tool calls",
			},
			[]string{"tool", "status"},
		),
		toolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Duration of tool calls",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"tool"},
		),
		toolsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "tool_calls_in_flight",
				Help:      "Number of tool calls currently executing",
			},
		),
		backendRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_requests_total",
				Help:      "Requests to the scheduler and notification backends by outcome",
			},
			[]string{"backend", "outcome"},
		),
	}

	reg.MustRegister(
		m.toolCalls,
		m.toolDuration,
		m.toolsInFlight,
		m.backendRequests,
	)

	return m
}

// StartToolCall marks a call as running and returns the function that
// records its outcome.
func (m *PrometheusMetrics) StartToolCall(tool string) func(err error) {
	if m == nil {
		return func(error) {}
	}

	start := time.Now()
	m.toolsInFlight.Inc()

	return func(err error) {
		m.toolsInFlight.Dec()
		m.RecordToolCall(tool, err, time.Since(start))
	}
}

// RecordToolCall counts one finished call.
func (m *PrometheusMetrics) RecordToolCall(tool string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	m.toolCalls.WithLabelValues(tool, status).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(duration.Seconds())
}

// ObserveBackend counts one backend request.
func (m *PrometheusMetrics) ObserveBackend(backend, outcome string) {
	if m == nil {
		return
	}
	m.backendRequests.WithLabelValues(backend, outcome).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *PrometheusMetrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
