package observability

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// NoOpLogger discards everything. Tests use it so service logging
// stays out of assertions.
var NoOpLogger = slog.New(slog.DiscardHandler)

// NewNoOpTracer returns a tracer that records nothing.
func NewNoOpTracer() trace.Tracer {
	return tracenoop.NewTracerProvider().Tracer("noop")
}
