package playerservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/observability/metrics/playermetrics"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// PlayerService implements the Service interface.
type PlayerService struct {
	repo     playerdb.PlayerDB
	eventBus shared.EventBus
	logger   *slog.Logger
	metrics  playermetrics.PlayerMetrics
	tracer   trace.Tracer
	db       *bun.DB
}

// NewPlayerService creates a new PlayerService.
func NewPlayerService(
	repo playerdb.PlayerDB,
	eventBus shared.EventBus,
	logger *slog.Logger,
	metrics playermetrics.PlayerMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *PlayerService {
	return &PlayerService{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
		metrics:  metrics,
		tracer:   tracer,
		db:       db,
	}
}

// withTelemetry wraps a service operation with tracing, metrics, and
// panic recovery.
func withTelemetry[T any](
	s *PlayerService,
	ctx context.Context,
	operationName string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "critical panic recovered", attr.Error(err))
			s.metrics.RecordOperationFailure(ctx, operationName)
			span.RecordError(err)
		}
	}()

	result, err = op(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, operationName+" failed",
			slog.String("operation", operationName),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, operationName)
		span.RecordError(err)
		return result, err
	}

	s.metrics.RecordOperationSuccess(ctx, operationName)
	return result, nil
}
