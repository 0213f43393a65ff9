// Package metrics holds the Prometheus collectors of the service
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Side effects whose failure degrades a write
const (
	SideEffectAudit = "audit"
	SideEffectEvent = "event"
)

// Metrics groups the service collectors on a private registry
type Metrics struct {
	registry *prometheus.Registry

	IdeasSubmitted      prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
	SideEffectFailures  *prometheus.CounterVec
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		IdeasSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "idea_mgt",
			Name:      "ideas_submitted_total",
			Help:      "Number of ideas submitted.",
		}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idea_mgt",
			Name:      "status_transitions_total",
			Help:      "Number of idea status transitions by source and target status.",
		}, []string{"from", "to"}),
		SideEffectFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idea_mgt",
			Name:      "side_effect_failures_total",
			Help:      "Number of best-effort side effects that failed after a committed write.",
		}, []string{"kind"}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "idea_mgt",
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "idea_mgt",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		m.IdeasSubmitted,
		m.StatusTransitions,
		m.SideEffectFailures,
		m.HTTPRequests,
		m.HTTPRequestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry holding the collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
