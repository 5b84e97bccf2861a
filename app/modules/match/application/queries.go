package matchservice

import (
	"context"
	"errors"
	"fmt"

	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// GetMatch returns the match with both players' user ids resolved.
func (s *MatchService) GetMatch(ctx context.Context, matchID shared.MatchID) (*MatchView, error) {
	return withTelemetry(s, ctx, "GetMatch", func(ctx context.Context) (*MatchView, error) {
		match, err := s.repo.GetMatch(ctx, nil, matchID)
		if err != nil {
			if errors.Is(err, matchdb.ErrNotFound) {
				return nil, ErrMatchNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		return s.toView(ctx, match)
	})
}

// ListPlayerMatches returns the user's matches in a league, optionally
// narrowed to one status, newest first.
func (s *MatchService) ListPlayerMatches(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID, status *shared.MatchStatus) ([]*matchdb.Match, error) {
	return withTelemetry(s, ctx, "ListPlayerMatches", func(ctx context.Context) ([]*matchdb.Match, error) {
		player, err := s.resolveMember(ctx, userID, leagueID)
		if err != nil {
			return nil, err
		}
		matches, err := s.repo.ListByPlayer(ctx, nil, player.ID, matchdb.ListFilter{
			LeagueID: &leagueID,
			Status:   status,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		return matches, nil
	})
}

// ListScheduledMatches returns a league's open matches, soonest first.
func (s *MatchService) ListScheduledMatches(ctx context.Context, leagueID shared.LeagueID) ([]*matchdb.Match, error) {
	return withTelemetry(s, ctx, "ListScheduledMatches", func(ctx context.Context) ([]*matchdb.Match, error) {
		matches, err := s.repo.ListScheduledByLeague(ctx, nil, leagueID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		return matches, nil
	})
}

// ListActiveMatches returns the user's SCHEDULED matches in a league.
func (s *MatchService) ListActiveMatches(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) ([]*matchdb.Match, error) {
	return withTelemetry(s, ctx, "ListActiveMatches", func(ctx context.Context) ([]*matchdb.Match, error) {
		player, err := s.resolveMember(ctx, userID, leagueID)
		if err != nil {
			return nil, err
		}
		matches, err := s.repo.ListActiveByPlayerInLeague(ctx, nil, player.ID, leagueID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		return matches, nil
	})
}

func (s *MatchService) toView(ctx context.Context, match *matchdb.Match) (*MatchView, error) {
	p1, err := s.playerRepo.GetByID(ctx, nil, match.Player1ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	p2, err := s.playerRepo.GetByID(ctx, nil, match.Player2ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	return &MatchView{
		ID:               match.ID,
		LeagueID:         match.LeagueID,
		Status:           match.Status,
		Player1ID:        match.Player1ID,
		Player2ID:        match.Player2ID,
		Player1User:      p1.UserID,
		Player2User:      p2.UserID,
		ScheduledAt:      match.ScheduledAt,
		IsInstant:        match.IsInstant,
		Player1Confirmed: match.Player1Confirmed,
		Player2Confirmed: match.Player2Confirmed,
		Player1Score:     match.Player1Score,
		Player2Score:     match.Player2Score,
		WinnerID:         match.WinnerID,
		LoserID:          match.LoserID,
		CompletedAt:      match.CompletedAt,
		CreatedAt:        match.CreatedAt,
	}, nil
}
