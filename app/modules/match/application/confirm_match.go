package matchservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/ladderleague/ladder-bot/app/events"
	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// ConfirmMatch records the caller's confirmation. Confirming an
// already-confirmed side is a no-op, so retries are safe. When the
// second side of an instant match confirms, the match is stamped as
// scheduled right now.
func (s *MatchService) ConfirmMatch(ctx context.Context, matchID shared.MatchID, userID shared.UserID) (*matchdb.Match, error) {
	return withTelemetry(s, ctx, "ConfirmMatch", func(ctx context.Context) (*matchdb.Match, error) {
		type confirmOutcome struct {
			match   *matchdb.Match
			changed bool
			byID    shared.PlayerID
		}

		outcome, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (confirmOutcome, error) {
			var out confirmOutcome

			match, err := s.repo.GetMatchForUpdate(ctx, db, matchID)
			if err != nil {
				if errors.Is(err, matchdb.ErrNotFound) {
					return out, ErrMatchNotFound
				}
				return out, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			if match.Status != shared.MatchStatusScheduled {
				return out, ErrInvalidState
			}

			caller, err := s.playerRepo.GetByUserAndLeague(ctx, db, userID, match.LeagueID)
			if err != nil || !match.Participant(caller.ID) {
				if err != nil && !errors.Is(err, playerdb.ErrNotFound) {
					return out, fmt.Errorf("%w: %w", ErrStorage, err)
				}
				return out, ErrNotParticipant
			}

			changed := false
			switch caller.ID {
			case match.Player1ID:
				if !match.Player1Confirmed {
					match.Player1Confirmed = true
					changed = true
				}
			case match.Player2ID:
				if !match.Player2Confirmed {
					match.Player2Confirmed = true
					changed = true
				}
			}

			if changed && match.IsInstant && match.BothConfirmed() && match.ScheduledAt == nil {
				now := time.Now().UTC()
				match.ScheduledAt = &now
			}

			if changed {
				if err := s.repo.UpdateMatch(ctx, db, match); err != nil {
					return out, fmt.Errorf("%w: %w", ErrStorage, err)
				}
			}

			out.match = match
			out.changed = changed
			out.byID = caller.ID
			return out, nil
		})
		if err != nil {
			return nil, err
		}

		if outcome.changed {
			s.logger.InfoContext(ctx, "match confirmed",
				attr.MatchID(matchID),
				attr.PlayerID(outcome.byID),
			)
			s.publish(ctx, events.MatchConfirmed, events.MatchConfirmedPayload{
				MatchID:       outcome.match.ID,
				LeagueID:      outcome.match.LeagueID,
				ConfirmedBy:   outcome.byID,
				BothConfirmed: outcome.match.BothConfirmed(),
			})
		}

		return outcome.match, nil
	})
}
