package playerdb

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/ladderleague/ladder-bot/app/shared"
)

// PlayerDB is the persistence boundary for players and their rating
// history. Methods accept a bun.IDB so callers can pass a transaction;
// nil falls back to the repository's own connection.
type PlayerDB interface {
	CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error
	GetByID(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*Player, error)
	GetByIDForUpdate(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*Player, error)
	GetByUserAndLeague(ctx context.Context, db bun.IDB, userID shared.UserID, leagueID shared.LeagueID) (*Player, error)
	ListByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*Player, error)
	ListEligibleForUpdate(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, minElo shared.Elo) ([]*Player, error)
	UpdatePlayer(ctx context.Context, db bun.IDB, player *Player) error
	DeletePlayer(ctx context.Context, db bun.IDB, playerID shared.PlayerID) error
	CountByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (int, error)

	CreateRatingChange(ctx context.Context, db bun.IDB, change *RatingChange) error
	ListRatingChanges(ctx context.Context, db bun.IDB, playerID shared.PlayerID) ([]*RatingChange, error)
}
