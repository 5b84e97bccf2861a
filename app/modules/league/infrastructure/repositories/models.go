package leaguedb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ladderleague/ladder-bot/app/shared"
)

// League is a ladder inside one Discord guild. Names are unique per
// guild. The match and player modules treat the league as an opaque
// scope.
type League struct {
	bun.BaseModel `bun:"table:leagues,alias:l"`

	ID        shared.LeagueID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	GuildID   string          `bun:"guild_id,notnull" json:"guild_id"`
	Name      string          `bun:"name,notnull" json:"name"`
	CreatedBy shared.UserID   `bun:"created_by,notnull" json:"created_by"`
	CreatedAt time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time       `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}
