package matchqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	matchservice "github.com/ladderleague/ladder-bot/app/modules/match/application"
	"github.com/ladderleague/ladder-bot/app/observability/metrics/matchmetrics"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// ReminderLead is how far ahead of the scheduled time the reminder
// fires. A match scheduled closer than this simply gets no reminder.
const ReminderLead = 30 * time.Minute

// scheduleBuffer guards against enqueueing jobs River would run
// immediately because the timestamp already passed in transit.
const scheduleBuffer = 5 * time.Second

// QueueService is the job scheduling contract for dated matches.
type QueueService interface {
	matchservice.JobScheduler

	GetScheduledJobs(ctx context.Context, matchID shared.MatchID) ([]JobInfo, error)
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service schedules match reminder and due jobs with River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics matchmetrics.MatchMetrics
}

// NewService builds the River client on its own pgx pool; River does
// not run on database/sql, so the bun connection is only used for the
// cancellation and inspection queries.
func NewService(ctx context.Context, bunDB *bun.DB, logger *slog.Logger, dsn string, metrics matchmetrics.MatchMetrics, eventBus shared.EventBus) (*Service, error) {
	logger = logger.With(slog.String("component", "match_queue"))

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewMatchReminderWorker(logger, eventBus))
	river.AddWorker(workers, NewMatchDueWorker(logger, eventBus))

	client, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 50},
			"match":            {MaxWorkers: 25},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	logger.InfoContext(ctx, "match queue service initialized")
	return &Service{
		client:  client,
		pool:    pool,
		logger:  logger,
		db:      bunDB,
		metrics: metrics,
	}, nil
}

// Start begins working jobs.
func (s *Service) Start(ctx context.Context) error {
	if err := s.client.Start(ctx); err != nil {
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.logger.InfoContext(ctx, "match queue service started")
	return nil
}

// Stop drains workers and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.client.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.logger.InfoContext(ctx, "match queue service stopped")
	return nil
}

// ScheduleMatchJobs enqueues the reminder and due jobs for a dated
// match. A reminder that would already be in the past is skipped, not
// an error.
func (s *Service) ScheduleMatchJobs(ctx context.Context, matchID shared.MatchID, leagueID shared.LeagueID, scheduledAt time.Time) error {
	s.metrics.RecordOperationAttempt(ctx, "ScheduleMatchJobs")

	now := time.Now()
	at := scheduledAt.UTC().Format(time.RFC3339)

	reminderAt := scheduledAt.Add(-ReminderLead)
	if reminderAt.After(now.Add(scheduleBuffer)) {
		_, err := s.client.Insert(ctx, MatchReminderJob{
			MatchID:  matchID,
			LeagueID: leagueID,
			At:       at,
		}, &river.InsertOpts{
			Queue:       "match",
			ScheduledAt: reminderAt,
			UniqueOpts:  river.UniqueOpts{ByArgs: true},
		})
		if err != nil {
			s.metrics.RecordOperationFailure(ctx, "ScheduleMatchJobs")
			return fmt.Errorf("failed to schedule match reminder: %w", err)
		}
	} else {
		s.logger.InfoContext(ctx, "reminder window already passed, skipping",
			attr.MatchID(matchID),
		)
	}

	dueAt := scheduledAt
	if !dueAt.After(now.Add(scheduleBuffer)) {
		dueAt = now.Add(scheduleBuffer)
	}
	_, err := s.client.Insert(ctx, MatchDueJob{
		MatchID:  matchID,
		LeagueID: leagueID,
		At:       at,
	}, &river.InsertOpts{
		Queue:       "match",
		ScheduledAt: dueAt,
		UniqueOpts:  river.UniqueOpts{ByArgs: true},
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "ScheduleMatchJobs")
		return fmt.Errorf("failed to schedule match due job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "ScheduleMatchJobs")
	s.logger.InfoContext(ctx, "match jobs scheduled",
		attr.MatchID(matchID),
		slog.Time("scheduled_at", scheduledAt),
	)
	return nil
}

// CancelMatchJobs cancels every pending job for a match. Completed and
// cancelled matches call this so stale reminders never fire.
func (s *Service) CancelMatchJobs(ctx context.Context, matchID shared.MatchID) error {
	s.metrics.RecordOperationAttempt(ctx, "CancelMatchJobs")

	type riverJobRow struct {
		ID   int64  `bun:"id"`
		Kind string `bun:"kind"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind").
		Where("kind IN (?, ?)", "match_reminder", "match_due").
		Where("state IN (?, ?)", "available", "scheduled").
		Where("args->>'match_id' = ?", matchID.String()).
		Scan(ctx, &jobs)
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "CancelMatchJobs")
		return fmt.Errorf("failed to query jobs for cancellation: %w", err)
	}

	cancelled := 0
	for _, job := range jobs {
		if _, err := s.client.JobCancel(ctx, job.ID); err != nil {
			s.logger.WarnContext(ctx, "failed to cancel job",
				slog.Int64("job_id", job.ID),
				slog.String("job_kind", job.Kind),
				attr.Error(err),
			)
			continue
		}
		cancelled++
	}

	if cancelled == len(jobs) {
		s.metrics.RecordOperationSuccess(ctx, "CancelMatchJobs")
	} else {
		s.metrics.RecordOperationFailure(ctx, "CancelMatchJobs")
	}
	s.logger.InfoContext(ctx, "match jobs cancelled",
		attr.MatchID(matchID),
		slog.Int("found", len(jobs)),
		slog.Int("cancelled", cancelled),
	)
	return nil
}

// GetScheduledJobs lists a match's jobs for debugging.
func (s *Service) GetScheduledJobs(ctx context.Context, matchID shared.MatchID) ([]JobInfo, error) {
	type riverJobRow struct {
		ID          int64      `bun:"id"`
		Kind        string     `bun:"kind"`
		State       string     `bun:"state"`
		ScheduledAt *time.Time `bun:"scheduled_at"`
		CreatedAt   time.Time  `bun:"created_at"`
		Attempt     int16      `bun:"attempt"`
		MaxAttempts int16      `bun:"max_attempts"`
	}

	var jobs []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "scheduled_at", "created_at", "attempt", "max_attempts").
		Where("kind IN (?, ?)", "match_reminder", "match_due").
		Where("args->>'match_id' = ?", matchID.String()).
		Order("scheduled_at ASC NULLS LAST", "created_at ASC").
		Scan(ctx, &jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to query scheduled jobs: %w", err)
	}

	result := make([]JobInfo, len(jobs))
	for i, job := range jobs {
		scheduledAt := ""
		if job.ScheduledAt != nil {
			scheduledAt = job.ScheduledAt.Format(time.RFC3339)
		}
		result[i] = JobInfo{
			ID:          job.ID,
			Kind:        job.Kind,
			MatchID:     matchID.String(),
			State:       job.State,
			ScheduledAt: scheduledAt,
			CreatedAt:   job.CreatedAt.Format(time.RFC3339),
			Attempt:     int(job.Attempt),
			MaxAttempts: int(job.MaxAttempts),
		}
	}
	return result, nil
}

// HealthCheck verifies queue connectivity.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}
	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		return fmt.Errorf("queue health check failed: %w", err)
	}
	return nil
}
