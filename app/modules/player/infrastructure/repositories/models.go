package playerdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ladderleague/ladder-bot/app/shared"
)

// Player is one user's standing in one league. The same user has a
// separate row (and rating) per league.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`

	ID        shared.PlayerID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	UserID    shared.UserID   `bun:"user_id,notnull" json:"user_id"`
	LeagueID  shared.LeagueID `bun:"league_id,notnull,type:uuid" json:"league_id"`
	Elo       shared.Elo      `bun:"elo,notnull,default:1000" json:"elo"`
	Rank      shared.Tier     `bun:"rank,notnull,default:'BRONZE'" json:"rank"`
	Wins      int             `bun:"wins,notnull,default:0" json:"wins"`
	Losses    int             `bun:"losses,notnull,default:0" json:"losses"`
	JoinedAt  time.Time       `bun:"joined_at,notnull,default:current_timestamp" json:"joined_at"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// RatingChange is one player's rating movement from one completed
// match. Two rows are written per match, inside its transaction.
type RatingChange struct {
	bun.BaseModel `bun:"table:rating_changes,alias:rc"`

	ID        int64           `bun:"id,pk,autoincrement" json:"id"`
	PlayerID  shared.PlayerID `bun:"player_id,notnull,type:uuid" json:"player_id"`
	MatchID   shared.MatchID  `bun:"match_id,notnull,type:uuid" json:"match_id"`
	EloBefore shared.Elo      `bun:"elo_before,notnull" json:"elo_before"`
	EloAfter  shared.Elo      `bun:"elo_after,notnull" json:"elo_after"`
	Delta     int             `bun:"delta,notnull" json:"delta"`
	CreatedAt time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
