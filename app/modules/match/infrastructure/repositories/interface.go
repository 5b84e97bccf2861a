package matchdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/ladderleague/ladder-bot/app/shared"
)

// ListFilter narrows ListByPlayer. Zero values mean no filtering.
type ListFilter struct {
	LeagueID *shared.LeagueID
	Status   *shared.MatchStatus
}

// MatchDB is the persistence boundary for matches. Methods accept a
// bun.IDB so callers can pass a transaction; nil falls back to the
// repository's own connection.
type MatchDB interface {
	CreateMatch(ctx context.Context, db bun.IDB, match *Match) error
	GetMatch(ctx context.Context, db bun.IDB, matchID shared.MatchID) (*Match, error)
	GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID shared.MatchID) (*Match, error)
	UpdateMatch(ctx context.Context, db bun.IDB, match *Match) error
	FindActiveBetween(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, a, b shared.PlayerID) (*Match, error)
	ListByPlayer(ctx context.Context, db bun.IDB, playerID shared.PlayerID, filter ListFilter) ([]*Match, error)
	ListScheduledByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*Match, error)
	ListActiveByPlayerInLeague(ctx context.Context, db bun.IDB, playerID shared.PlayerID, leagueID shared.LeagueID) ([]*Match, error)
}
