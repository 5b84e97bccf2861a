package matchqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverqueue/river"

	"github.com/ladderleague/ladder-bot/app/events"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// MatchReminderWorker publishes the reminder event when its job fires.
type MatchReminderWorker struct {
	river.WorkerDefaults[MatchReminderJob]
	logger   *slog.Logger
	eventBus shared.EventBus
}

func NewMatchReminderWorker(logger *slog.Logger, eventBus shared.EventBus) *MatchReminderWorker {
	return &MatchReminderWorker{logger: logger, eventBus: eventBus}
}

func (w *MatchReminderWorker) Work(ctx context.Context, job *river.Job[MatchReminderJob]) error {
	scheduledAt, err := time.Parse(time.RFC3339, job.Args.At)
	if err != nil {
		// Bad payloads never succeed on retry.
		return river.JobCancel(fmt.Errorf("unparseable scheduled_at %q: %w", job.Args.At, err))
	}

	msg, err := events.NewMessage(events.MatchReminder, events.MatchReminderPayload{
		MatchID:     job.Args.MatchID,
		LeagueID:    job.Args.LeagueID,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		return river.JobCancel(err)
	}
	if err := w.eventBus.Publish(ctx, events.StreamName, msg); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish match reminder",
			attr.MatchID(job.Args.MatchID),
			attr.Error(err),
		)
		return err
	}

	w.logger.InfoContext(ctx, "match reminder published", attr.MatchID(job.Args.MatchID))
	return nil
}

// MatchDueWorker publishes the due event at the match's scheduled time.
type MatchDueWorker struct {
	river.WorkerDefaults[MatchDueJob]
	logger   *slog.Logger
	eventBus shared.EventBus
}

func NewMatchDueWorker(logger *slog.Logger, eventBus shared.EventBus) *MatchDueWorker {
	return &MatchDueWorker{logger: logger, eventBus: eventBus}
}

func (w *MatchDueWorker) Work(ctx context.Context, job *river.Job[MatchDueJob]) error {
	scheduledAt, err := time.Parse(time.RFC3339, job.Args.At)
	if err != nil {
		return river.JobCancel(fmt.Errorf("unparseable scheduled_at %q: %w", job.Args.At, err))
	}

	msg, err := events.NewMessage(events.MatchDue, events.MatchReminderPayload{
		MatchID:     job.Args.MatchID,
		LeagueID:    job.Args.LeagueID,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		return river.JobCancel(err)
	}
	if err := w.eventBus.Publish(ctx, events.StreamName, msg); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish match due",
			attr.MatchID(job.Args.MatchID),
			attr.Error(err),
		)
		return err
	}

	w.logger.InfoContext(ctx, "match due published", attr.MatchID(job.Args.MatchID))
	return nil
}
