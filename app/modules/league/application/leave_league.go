package leagueservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// LeaveLeague removes the user's player row from a league. Blocked
// while the player still has SCHEDULED matches; completed and
// cancelled history survives because matches reference the player id,
// not the membership.
func (s *LeagueService) LeaveLeague(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) error {
	_, err := withTelemetry(s, ctx, "LeaveLeague", func(ctx context.Context) (struct{}, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			var zero struct{}

			player, err := s.playerRepo.GetByUserAndLeague(ctx, db, userID, leagueID)
			if err != nil {
				if errors.Is(err, playerdb.ErrNotFound) {
					return zero, ErrNotLeagueMember
				}
				return zero, fmt.Errorf("%w: %w", ErrStorage, err)
			}

			active, err := s.matchRepo.ListActiveByPlayerInLeague(ctx, db, player.ID, leagueID)
			if err != nil {
				return zero, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			if len(active) > 0 {
				return zero, ErrActiveMatchesRemain
			}

			if err := s.playerRepo.DeletePlayer(ctx, db, player.ID); err != nil {
				return zero, fmt.Errorf("%w: %w", ErrStorage, err)
			}

			s.logger.InfoContext(ctx, "player left league",
				attr.UserID(userID),
				attr.LeagueID(leagueID),
				attr.PlayerID(player.ID),
			)
			return zero, nil
		})
	})
	return err
}
