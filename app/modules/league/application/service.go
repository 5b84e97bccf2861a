package leagueservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/observability/metrics/leaguemetrics"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// LeagueService implements the Service interface.
type LeagueService struct {
	repo       leaguedb.LeagueDB
	playerRepo playerdb.PlayerDB
	matchRepo  matchdb.MatchDB
	eventBus   shared.EventBus
	logger     *slog.Logger
	metrics    leaguemetrics.LeagueMetrics
	tracer     trace.Tracer
	db         *bun.DB
}

// NewLeagueService creates a new LeagueService.
func NewLeagueService(
	repo leaguedb.LeagueDB,
	playerRepo playerdb.PlayerDB,
	matchRepo matchdb.MatchDB,
	eventBus shared.EventBus,
	logger *slog.Logger,
	metrics leaguemetrics.LeagueMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *LeagueService {
	return &LeagueService{
		repo:       repo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		eventBus:   eventBus,
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
		db:         db,
	}
}

// withTelemetry wraps a service operation with tracing, metrics, and
// panic recovery.
func withTelemetry[T any](
	s *LeagueService,
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

// runInTx runs fn inside a transaction on the service's connection.
func runInTx[T any](
	s *LeagueService,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result T
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}
