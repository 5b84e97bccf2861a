package eventbus

import (
	"context"

	"github.com/ladderleague/ladder-bot/app/events"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// InitializeStreams ensures the JetStream stream covers every subject
// the modules publish. Called once during application startup.
func InitializeStreams(ctx context.Context, bus shared.EventBus) error {
	subjects := []string{
		events.MatchScheduled,
		events.MatchConfirmed,
		events.MatchCompleted,
		events.MatchCancelled,
		events.MatchReminder,
		events.MatchDue,
		events.PlayerRankChanged,
		events.LeagueCreated,
	}

	for _, subject := range subjects {
		if err := bus.CreateStream(ctx, events.StreamName, subject); err != nil {
			return err
		}
	}
	return nil
}
