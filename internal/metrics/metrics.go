// Package metrics exposes Prometheus instrumentation for calculations and
// the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"payoff/core/types"
)

const namespace = "payoff"

// Metrics holds the collectors registered on a private registry
type Metrics struct {
	registry *prometheus.Registry

	calculations *prometheus.CounterVec
	verdicts     *prometheus.CounterVec
	nonFinite    prometheus.Counter
	invalid      prometheus.Counter
	requests     *prometheus.HistogramVec
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Completed normalizations by mode and category.",
		}, []string{"mode", "banding", "category"}),
		verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdicts_total",
			Help:      "Verdicts handed out.",
		}, []string{"verdict"}),
		nonFinite: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "non_finite_results_total",
			Help:      "Normalizations whose unit cost was NaN or infinite.",
		}),
		invalid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_inputs_total",
			Help:      "Inputs rejected by form validation.",
		}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		m.calculations,
		m.verdicts,
		m.nonFinite,
		m.invalid,
		m.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordResult counts one normalization
func (m *Metrics) RecordResult(r types.Result) {
	m.calculations.WithLabelValues(r.Mode.String(), r.Banding.String(), r.Category.String()).Inc()
	m.verdicts.WithLabelValues(r.Verdict.String()).Inc()
	if !r.Finite {
		m.nonFinite.Inc()
	}
}

// RecordInvalid counts one rejected input
func (m *Metrics) RecordInvalid() {
	m.invalid.Inc()
}

// ObserveRequest records the latency of one HTTP request
func (m *Metrics) ObserveRequest(route string, status int, d time.Duration) {
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
