package leagueservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/modules/rating"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// JoinLeague registers the user in an existing league at the initial
// rating.
func (s *LeagueService) JoinLeague(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) error {
	_, err := withTelemetry(s, ctx, "JoinLeague", func(ctx context.Context) (struct{}, error) {
		var zero struct{}

		if _, err := s.repo.GetByID(ctx, nil, leagueID); err != nil {
			if errors.Is(err, leaguedb.ErrNotFound) {
				return zero, ErrLeagueNotFound
			}
			return zero, fmt.Errorf("%w: %w", ErrStorage, err)
		}

		now := time.Now().UTC()
		player := &playerdb.Player{
			ID:        shared.NewPlayerID(),
			UserID:    userID,
			LeagueID:  leagueID,
			Elo:       rating.InitialElo,
			Rank:      rating.ClassifyTier(rating.InitialElo),
			JoinedAt:  now,
			UpdatedAt: now,
		}
		if err := s.playerRepo.CreatePlayer(ctx, nil, player); err != nil {
			if errors.Is(err, playerdb.ErrDuplicate) {
				return zero, ErrAlreadyMember
			}
			return zero, fmt.Errorf("%w: %w", ErrStorage, err)
		}

		s.logger.InfoContext(ctx, "player joined league",
			attr.UserID(userID),
			attr.LeagueID(leagueID),
			attr.PlayerID(player.ID),
		)
		return zero, nil
	})
	return err
}
