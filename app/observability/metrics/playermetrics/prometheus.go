package playermetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type prometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	registrations      *prometheus.CounterVec
}

func NewPrometheusMetrics(registry *prometheus.Registry) PlayerMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "player_operation_attempts_total",
			Help: "Total player operation attempts by operation name.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "player_operation_successes_total",
			Help: "Total successful player operations by operation name.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "player_operation_failures_total",
			Help: "Total failed player operations by operation name.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "player_operation_duration_seconds",
			Help:    "Duration of player operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "player_registrations_total",
			Help: "Total player registrations by league.",
		}, []string{"league_id"}),
	}

	registry.MustRegister(
		m.operationAttempts,
		m.operationSuccesses,
		m.operationFailures,
		m.operationDuration,
		m.registrations,
	)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operationSuccesses.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operationFailures.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordRegistration(_ context.Context, leagueID string) {
	m.registrations.WithLabelValues(leagueID).Inc()
}
