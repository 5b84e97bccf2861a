package leagueservice

import (
	"context"
	"errors"
	"fmt"

	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// GetStandings returns the league ladder: elo descending, earlier
// joiners first on ties.
func (s *LeagueService) GetStandings(ctx context.Context, leagueID shared.LeagueID) ([]StandingsEntry, error) {
	return withTelemetry(s, ctx, "GetStandings", func(ctx context.Context) ([]StandingsEntry, error) {
		if _, err := s.repo.GetByID(ctx, nil, leagueID); err != nil {
			if errors.Is(err, leaguedb.ErrNotFound) {
				return nil, ErrLeagueNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}

		players, err := s.playerRepo.ListByLeague(ctx, nil, leagueID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}

		standings := make([]StandingsEntry, 0, len(players))
		for i, p := range players {
			entry := StandingsEntry{
				Position: i + 1,
				PlayerID: p.ID,
				UserID:   p.UserID,
				Elo:      p.Elo,
				Tier:     p.Rank,
				Wins:     p.Wins,
				Losses:   p.Losses,
			}
			if total := p.Wins + p.Losses; total > 0 {
				entry.WinPct = float64(p.Wins) / float64(total) * 100
			}
			standings = append(standings, entry)
		}
		return standings, nil
	})
}
