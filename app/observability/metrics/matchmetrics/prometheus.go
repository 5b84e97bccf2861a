package matchmetrics

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

	matchesCompleted   *prometheus.CounterVec
	ratingDelta        prometheus.Histogram
	grandmasterChanges *prometheus.CounterVec
}

// NewPrometheusMetrics registers the match collectors on the registry.
func NewPrometheusMetrics(registry *prometheus.Registry) MatchMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_operation_attempts_total",
			Help: "Total match operation attempts by operation name.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_operation_successes_total",
			Help: "Total successful match operations by operation name.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_operation_failures_total",
			Help: "Total failed match operations by operation name.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "match_operation_duration_seconds",
			Help:    "Duration of match operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		matchesCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_completed_total",
			Help: "Total completed matches by league.",
		}, []string{"league_id"}),
		ratingDelta: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "match_rating_delta",
			Help:    "Rating points transferred per completed match.",
			Buckets: []float64{4, 8, 16, 24, 32, 48, 64},
		}),
		grandmasterChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "match_grandmaster_changes_total",
			Help: "Total Grandmaster reassignments by league.",
		}, []string{"league_id"}),
	}

	registry.MustRegister(
		m.operationAttempts,
		m.operationSuccesses,
		m.operationFailures,
		m.operationDuration,
		m.matchesCompleted,
		m.ratingDelta,
		m.grandmasterChanges,
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

func (m *prometheusMetrics) RecordMatchCompleted(_ context.Context, leagueID string) {
	m.matchesCompleted.WithLabelValues(leagueID).Inc()
}

func (m *prometheusMetrics) RecordRatingDelta(_ context.Context, delta int) {
	m.ratingDelta.Observe(float64(delta))
}

func (m *prometheusMetrics) RecordGrandmasterChange(_ context.Context, leagueID string) {
	m.grandmasterChanges.WithLabelValues(leagueID).Inc()
}
