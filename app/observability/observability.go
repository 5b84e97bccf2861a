// Package observability wires logging, metrics, and tracing for the
// service. Modules receive a Provider and pull what they need from it.
package observability

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/ladderleague/ladder-bot/app/observability/metrics/leaguemetrics"
	"github.com/ladderleague/ladder-bot/app/observability/metrics/matchmetrics"
	"github.com/ladderleague/ladder-bot/app/observability/metrics/playermetrics"
)

// Config selects log output and verbosity.
type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"log_level"`
}

// Provider bundles the observability dependencies handed to modules.
type Provider struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Tracer   trace.Tracer

	MatchMetrics  matchmetrics.MatchMetrics
	PlayerMetrics playermetrics.PlayerMetrics
	LeagueMetrics leaguemetrics.LeagueMetrics
}

// NewProvider builds the logger, metrics registry, and tracer. The
// tracer comes from the global otel provider so deployments can
// install an SDK without touching module code.
func NewProvider(cfg Config) *Provider {
	logger := newLogger(cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Provider{
		Logger:        logger,
		Registry:      registry,
		Tracer:        otel.Tracer("ladder-bot"),
		MatchMetrics:  matchmetrics.NewPrometheusMetrics(registry),
		PlayerMetrics: playermetrics.NewPrometheusMetrics(registry),
		LeagueMetrics: leaguemetrics.NewPrometheusMetrics(registry),
	}
}

func newLogger(cfg Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
