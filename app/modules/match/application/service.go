package matchservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ladderleague/ladder-bot/app/events"
	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/observability/metrics/matchmetrics"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// MatchService implements the Service interface. Every state
// transition runs in a single transaction with the match row locked,
// so concurrent transitions on the same match serialize and terminal
// states stay terminal.
type MatchService struct {
	repo       matchdb.MatchDB
	playerRepo playerdb.PlayerDB
	leagueRepo leaguedb.LeagueDB
	scheduler  JobScheduler
	eventBus   shared.EventBus
	logger     *slog.Logger
	metrics    matchmetrics.MatchMetrics
	tracer     trace.Tracer
	db         *bun.DB
}

// NewMatchService creates a new MatchService. scheduler and eventBus
// may be nil in tests; the service treats them as disabled.
func NewMatchService(
	repo matchdb.MatchDB,
	playerRepo playerdb.PlayerDB,
	leagueRepo leaguedb.LeagueDB,
	scheduler JobScheduler,
	eventBus shared.EventBus,
	logger *slog.Logger,
	metrics matchmetrics.MatchMetrics,
	tracer trace.Tracer,
	db *bun.DB,
) *MatchService {
	return &MatchService{
		repo:       repo,
		playerRepo: playerRepo,
		leagueRepo: leagueRepo,
		scheduler:  scheduler,
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
	s *MatchService,
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
// Either every write in fn commits or none do.
func runInTx[T any](
	s *MatchService,
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

func (s *MatchService) publish(ctx context.Context, subject string, payload any) {
	if s.eventBus == nil {
		return
	}
	msg, err := events.NewMessage(subject, payload)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build event", slog.String("subject", subject), attr.Error(err))
		return
	}
	if err := s.eventBus.Publish(ctx, events.StreamName, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish event", slog.String("subject", subject), attr.Error(err))
	}
}
