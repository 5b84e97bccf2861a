package leaguemetrics

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
	leaguesCreated     *prometheus.CounterVec
	standingsExports   *prometheus.CounterVec
}

func NewPrometheusMetrics(registry *prometheus.Registry) LeagueMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_operation_attempts_total",
			Help: "Total league operation attempts by operation name.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_operation_successes_total",
			Help: "Total successful league operations by operation name.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_operation_failures_total",
			Help: "Total failed league operations by operation name.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "league_operation_duration_seconds",
			Help:    "Duration of league operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		leaguesCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_created_total",
			Help: "Total leagues created by guild.",
		}, []string{"guild_id"}),
		standingsExports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "league_standings_exports_total",
			Help: "Total standings spreadsheet exports by league.",
		}, []string{"league_id"}),
	}

	registry.MustRegister(
		m.operationAttempts,
		m.operationSuccesses,
		m.operationFailures,
		m.operationDuration,
		m.leaguesCreated,
		m.standingsExports,
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

func (m *prometheusMetrics) RecordLeagueCreated(_ context.Context, guildID string) {
	m.leaguesCreated.WithLabelValues(guildID).Inc()
}

func (m *prometheusMetrics) RecordStandingsExport(_ context.Context, leagueID string) {
	m.standingsExports.WithLabelValues(leagueID).Inc()
}
