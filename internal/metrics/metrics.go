// Package metrics provides Prometheus metrics for checklist evaluation and
// configuration.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Configuration results.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultFailed   = "failed"
)

// Metrics holds the requisite collectors on a private registry.
// All methods are safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	// Configuration submissions by result
	Configurations *prometheus.CounterVec

	// Checklist evaluations and their latency
	Evaluations     prometheus.Counter
	EvaluateLatency prometheus.Histogram

	// Applicable requirements per state after the last evaluation
	RequirementStates *prometheus.GaugeVec

	// Manifest reloads by outcome ("ok", "error")
	Reloads *prometheus.CounterVec

	// Predicate failures that were turned into false, by check
	PredicateErrors *prometheus.CounterVec
}

// New creates a Metrics instance with all collectors registered on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Configurations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "requisite_configurations_total",
			Help: "Configuration submissions by result",
		}, []string{"requirement", "result"}),

		Evaluations: factory.NewCounter(prometheus.CounterOpts{
			Name: "requisite_evaluations_total",
			Help: "Total checklist evaluations",
		}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "requisite_evaluate_duration_seconds",
			Help:    "Duration of a full checklist evaluation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		RequirementStates: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "requisite_requirements",
			Help: "Applicable requirements by state after the last evaluation",
		}, []string{"state"}),

		Reloads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "requisite_manifest_reloads_total",
			Help: "Manifest reloads by outcome",
		}, []string{"outcome"}),

		PredicateErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "requisite_predicate_errors_total",
			Help: "Predicate evaluations that failed and were treated as false",
		}, []string{"check"}),
	}
}

// Registry returns the Prometheus registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// IncrementConfiguration records a configuration submission.
func (m *Metrics) IncrementConfiguration(requirementID, result string) {
	if m != nil {
		m.Configurations.WithLabelValues(requirementID, result).Inc()
	}
}

// ObserveEvaluation records one evaluation and the resulting state counts.
func (m *Metrics) ObserveEvaluation(d time.Duration, states map[string]int) {
	if m == nil {
		return
	}
	m.Evaluations.Inc()
	m.EvaluateLatency.Observe(d.Seconds())
	for state, n := range states {
		m.RequirementStates.WithLabelValues(state).Set(float64(n))
	}
}

// IncrementReload records a manifest reload.
func (m *Metrics) IncrementReload(ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.Reloads.WithLabelValues(outcome).Inc()
}

// IncrementPredicateError records a predicate failure.
func (m *Metrics) IncrementPredicateError(check string) {
	if m != nil {
		m.PredicateErrors.WithLabelValues(check).Inc()
	}
}
