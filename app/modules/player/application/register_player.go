package playerservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/modules/rating"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// RegisterPlayer creates the user's player row in a league. Every
// player starts at the initial rating in the Bronze tier.
func (s *PlayerService) RegisterPlayer(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error) {
	return withTelemetry(s, ctx, "RegisterPlayer", func(ctx context.Context) (*playerdb.Player, error) {
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

		if err := s.repo.CreatePlayer(ctx, nil, player); err != nil {
			if errors.Is(err, playerdb.ErrDuplicate) {
				return nil, ErrAlreadyMember
			}
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}

		s.logger.InfoContext(ctx, "player registered",
			attr.UserID(userID),
			attr.LeagueID(leagueID),
			attr.PlayerID(player.ID),
		)
		s.metrics.RecordRegistration(ctx, leagueID.String())
		return player, nil
	})
}

// GetPlayer fetches a player by id.
func (s *PlayerService) GetPlayer(ctx context.Context, playerID shared.PlayerID) (*playerdb.Player, error) {
	return withTelemetry(s, ctx, "GetPlayer", func(ctx context.Context) (*playerdb.Player, error) {
		player, err := s.repo.GetByID(ctx, nil, playerID)
		if err != nil {
			if errors.Is(err, playerdb.ErrNotFound) {
				return nil, ErrPlayerNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		return player, nil
	})
}

// GetPlayerByUser resolves a user's player row in a league.
func (s *PlayerService) GetPlayerByUser(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error) {
	return withTelemetry(s, ctx, "GetPlayerByUser", func(ctx context.Context) (*playerdb.Player, error) {
		player, err := s.repo.GetByUserAndLeague(ctx, nil, userID, leagueID)
		if err != nil {
			if errors.Is(err, playerdb.ErrNotFound) {
				return nil, ErrPlayerNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		return player, nil
	})
}

// GetRatingHistory returns a player's rating changes, oldest first.
func (s *PlayerService) GetRatingHistory(ctx context.Context, playerID shared.PlayerID) ([]*playerdb.RatingChange, error) {
	return withTelemetry(s, ctx, "GetRatingHistory", func(ctx context.Context) ([]*playerdb.RatingChange, error) {
		if _, err := s.repo.GetByID(ctx, nil, playerID); err != nil {
			if errors.Is(err, playerdb.ErrNotFound) {
				return nil, ErrPlayerNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}

		changes, err := s.repo.ListRatingChanges(ctx, nil, playerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		return changes, nil
	})
}
