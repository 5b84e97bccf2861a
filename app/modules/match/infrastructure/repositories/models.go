package matchdb

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ladderleague/ladder-bot/app/shared"
)

// Match is one scheduled 1v1 between two league players. Rows are
// never deleted; cancellation is a terminal status.
type Match struct {
	bun.BaseModel `bun:"table:matches,alias:m"`

	ID       shared.MatchID     `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	LeagueID shared.LeagueID    `bun:"league_id,notnull,type:uuid" json:"league_id"`
	Status   shared.MatchStatus `bun:"status,notnull,default:'SCHEDULED'" json:"status"`

	Player1ID shared.PlayerID `bun:"player1_id,notnull,type:uuid" json:"player1_id"`
	Player2ID shared.PlayerID `bun:"player2_id,notnull,type:uuid" json:"player2_id"`

	// A match without a scheduled date is "instant": created to be
	// played right away, pending the opponent's confirmation.
	ScheduledAt *time.Time `bun:"scheduled_at,nullzero" json:"scheduled_at,omitempty"`
	IsInstant   bool       `bun:"is_instant,notnull,default:false" json:"is_instant"`

	Player1Confirmed bool `bun:"player1_confirmed,notnull,default:false" json:"player1_confirmed"`
	Player2Confirmed bool `bun:"player2_confirmed,notnull,default:false" json:"player2_confirmed"`

	Player1Score *int             `bun:"player1_score,nullzero" json:"player1_score,omitempty"`
	Player2Score *int             `bun:"player2_score,nullzero" json:"player2_score,omitempty"`
	WinnerID     *shared.PlayerID `bun:"winner_id,type:uuid,nullzero" json:"winner_id,omitempty"`
	LoserID      *shared.PlayerID `bun:"loser_id,type:uuid,nullzero" json:"loser_id,omitempty"`
	CompletedAt  *time.Time       `bun:"completed_at,nullzero" json:"completed_at,omitempty"`

	CreatedBy shared.UserID `bun:"created_by,notnull" json:"created_by"`
	CreatedAt time.Time     `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time     `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// Participant reports whether the player plays in this match.
func (m *Match) Participant(playerID shared.PlayerID) bool {
	return m.Player1ID == playerID || m.Player2ID == playerID
}

// BothConfirmed reports whether both sides have confirmed.
func (m *Match) BothConfirmed() bool {
	return m.Player1Confirmed && m.Player2Confirmed
}
