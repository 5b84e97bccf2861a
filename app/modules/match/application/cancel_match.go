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

// CancelMatch moves a scheduled match to CANCELLED. Either participant
// can cancel; completed or already-cancelled matches stay put.
func (s *MatchService) CancelMatch(ctx context.Context, matchID shared.MatchID, userID shared.UserID) (*matchdb.Match, error) {
	return withTelemetry(s, ctx, "CancelMatch", func(ctx context.Context) (*matchdb.Match, error) {
		match, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*matchdb.Match, error) {
			match, err := s.repo.GetMatchForUpdate(ctx, db, matchID)
			if err != nil {
				if errors.Is(err, matchdb.ErrNotFound) {
					return nil, ErrMatchNotFound
				}
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			if match.Status != shared.MatchStatusScheduled {
				return nil, ErrInvalidState
			}

			caller, err := s.playerRepo.GetByUserAndLeague(ctx, db, userID, match.LeagueID)
			if err != nil || !match.Participant(caller.ID) {
				if err != nil && !errors.Is(err, playerdb.ErrNotFound) {
					return nil, fmt.Errorf("%w: %w", ErrStorage, err)
				}
				return nil, ErrNotParticipant
			}

			match.Status = shared.MatchStatusCancelled
			match.UpdatedAt = time.Now().UTC()
			if err := s.repo.UpdateMatch(ctx, db, match); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			return match, nil
		})
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "match cancelled",
			attr.MatchID(matchID),
			attr.LeagueID(match.LeagueID),
			attr.UserID(userID),
		)
		s.publish(ctx, events.MatchCancelled, events.MatchCancelledPayload{
			MatchID:     match.ID,
			LeagueID:    match.LeagueID,
			CancelledBy: userID,
		})

		if s.scheduler != nil {
			if err := s.scheduler.CancelMatchJobs(ctx, matchID); err != nil {
				s.logger.ErrorContext(ctx, "failed to cancel match jobs", attr.MatchID(matchID), attr.Error(err))
			}
		}

		return match, nil
	})
}
