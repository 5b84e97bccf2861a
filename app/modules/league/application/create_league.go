package leagueservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/ladderleague/ladder-bot/app/events"
	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/modules/rating"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
)

// CreateLeague creates a league and registers its creator as the first
// player, in one transaction. The creator starts at the initial
// rating like everyone else.
func (s *LeagueService) CreateLeague(ctx context.Context, guildID, name string, creator shared.UserID) (*leaguedb.League, error) {
	return withTelemetry(s, ctx, "CreateLeague", func(ctx context.Context) (*leaguedb.League, error) {
		league, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (*leaguedb.League, error) {
			now := time.Now().UTC()
			league := &leaguedb.League{
				ID:        shared.NewLeagueID(),
				GuildID:   guildID,
				Name:      name,
				CreatedBy: creator,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repo.CreateLeague(ctx, db, league); err != nil {
				if errors.Is(err, leaguedb.ErrDuplicate) {
					return nil, ErrLeagueExists
				}
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}

			player := &playerdb.Player{
				ID:        shared.NewPlayerID(),
				UserID:    creator,
				LeagueID:  league.ID,
				Elo:       rating.InitialElo,
				Rank:      rating.ClassifyTier(rating.InitialElo),
				JoinedAt:  now,
				UpdatedAt: now,
			}
			if err := s.playerRepo.CreatePlayer(ctx, db, player); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			return league, nil
		})
		if err != nil {
			return nil, err
		}

		s.logger.InfoContext(ctx, "league created",
			attr.LeagueID(league.ID),
			attr.UserID(creator),
		)
		s.metrics.RecordLeagueCreated(ctx, guildID)
		s.publishLeagueCreated(ctx, league)
		return league, nil
	})
}

func (s *LeagueService) publishLeagueCreated(ctx context.Context, league *leaguedb.League) {
	if s.eventBus == nil {
		return
	}
	msg, err := events.NewMessage(events.LeagueCreated, events.LeagueCreatedPayload{
		LeagueID:  league.ID,
		GuildID:   league.GuildID,
		Name:      league.Name,
		CreatedBy: league.CreatedBy,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to build league.created event", attr.Error(err))
		return
	}
	if err := s.eventBus.Publish(ctx, events.StreamName, msg); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish league.created", attr.Error(err))
	}
}

// GetLeague fetches a league by id.
func (s *LeagueService) GetLeague(ctx context.Context, leagueID shared.LeagueID) (*leaguedb.League, error) {
	return withTelemetry(s, ctx, "GetLeague", func(ctx context.Context) (*leaguedb.League, error) {
		league, err := s.repo.GetByID(ctx, nil, leagueID)
		if err != nil {
			if errors.Is(err, leaguedb.ErrNotFound) {
				return nil, ErrLeagueNotFound
			}
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}
		return league, nil
	})
}

// ListLeagues returns the guild's leagues with member counts.
func (s *LeagueService) ListLeagues(ctx context.Context, guildID string) ([]LeagueSummary, error) {
	return withTelemetry(s, ctx, "ListLeagues", func(ctx context.Context) ([]LeagueSummary, error) {
		leagues, err := s.repo.ListByGuild(ctx, nil, guildID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStorage, err)
		}

		summaries := make([]LeagueSummary, 0, len(leagues))
		for _, league := range leagues {
			count, err := s.playerRepo.CountByLeague(ctx, nil, league.ID)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrStorage, err)
			}
			summaries = append(summaries, LeagueSummary{League: league, MemberCount: count})
		}
		return summaries, nil
	})
}
