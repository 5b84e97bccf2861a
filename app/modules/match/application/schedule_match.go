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

// ScheduleMatch creates a SCHEDULED match between two league members.
//
// A match with a date has both sides confirmed up front; by asking for
// a date the challenger commits, and the opponent committed by
// accepting the challenge flow on the Discord side. An instant match
// (no date) starts with the opponent unconfirmed and must be confirmed
// before a result can be reported.
func (s *MatchService) ScheduleMatch(ctx context.Context, leagueID shared.LeagueID, challenger, opponent shared.UserID, scheduledAt *time.Time) (*matchdb.Match, error) {
	return withTelemetry(s, ctx, "ScheduleMatch", func(ctx context.Context) (*matchdb.Match, error) {
		if challenger == opponent {
			return nil, ErrSelfChallenge
		}
		if scheduledAt != nil && !scheduledAt.After(time.Now()) {
			return nil, ErrPastScheduledDate
		}

		p1, err := s.resolveMember(ctx, challenger, leagueID)
		if err != nil {
			return nil, err
		}
		p2, err := s.resolveMember(ctx, opponent, leagueID)
		if err != nil {
			return nil, err
		}

		match, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*matchdb.Match, error) {
			// One open match per pair per league, in either seat order.
			_, err := s.repo.FindActiveBetween(ctx, db, leagueID, p1.ID, p2.ID)
			if err == nil {
				return nil, ErrDuplicateMatch
			}
			if !errors.Is(err, matchdb.ErrNotFound) {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}

			now := time.Now().UTC()
			isInstant := scheduledAt == nil
			match := &matchdb.Match{
				ID:               shared.NewMatchID(),
				LeagueID:         leagueID,
				Status:           shared.MatchStatusScheduled,
				Player1ID:        p1.ID,
				Player2ID:        p2.ID,
				ScheduledAt:      scheduledAt,
				IsInstant:        isInstant,
				Player1Confirmed: true,
				Player2Confirmed: !isInstant,
				CreatedBy:        challenger,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := s.repo.CreateMatch(ctx, db, match); err != nil {
				// A concurrent schedule for the same pair can slip past
				// the read above; the unique index catches it here.
				if errors.Is(err, matchdb.ErrDuplicate) {
					return nil, ErrDuplicateMatch
				}
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			return match, nil
		})
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "match scheduled",
			attr.MatchID(match.ID),
			attr.LeagueID(leagueID),
			attr.PlayerID(match.Player1ID),
		)

		s.publish(ctx, events.MatchScheduled, events.MatchScheduledPayload{
			MatchID:     match.ID,
			LeagueID:    match.LeagueID,
			Player1ID:   match.Player1ID,
			Player2ID:   match.Player2ID,
			ScheduledAt: match.ScheduledAt,
			IsInstant:   match.IsInstant,
		})

		if s.scheduler != nil && match.ScheduledAt != nil {
			if err := s.scheduler.ScheduleMatchJobs(ctx, match.ID, match.LeagueID, *match.ScheduledAt); err != nil {
				// The match exists either way; reminders are best effort.
				s.logger.ErrorContext(ctx, "failed to enqueue match jobs", attr.MatchID(match.ID), attr.Error(err))
			}
		}

		return match, nil
	})
}

// resolveMember maps a user to their player row in the league.
func (s *MatchService) resolveMember(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error) {
	player, err := s.playerRepo.GetByUserAndLeague(ctx, nil, userID, leagueID)
	if err != nil {
		if errors.Is(err, playerdb.ErrNotFound) {
			return nil, ErrNotLeagueMember
		}
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return player, nil
}
