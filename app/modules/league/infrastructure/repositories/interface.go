package leaguedb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/ladderleague/ladder-bot/app/shared"
)

// LeagueDB is the persistence boundary for leagues.
type LeagueDB interface {
	CreateLeague(ctx context.Context, db bun.IDB, league *League) error
	GetByID(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (*League, error)
	GetByIDForUpdate(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (*League, error)
	ListByGuild(ctx context.Context, db bun.IDB, guildID string) ([]*League, error)
}
