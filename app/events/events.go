// Package events defines the subjects and payloads published on the
// event bus. The Discord front-end subscribes to these to render
// embeds and notifications.
package events

import (
	"time"

	"github.com/ladderleague/ladder-bot/app/shared"
)

// StreamName is the JetStream stream carrying all ladder events.
const StreamName = "ladder"

// Subjects. One per externally observable state change.
const (
	MatchScheduled    = "match.scheduled"
	MatchConfirmed    = "match.confirmed"
	MatchCompleted    = "match.completed"
	MatchCancelled    = "match.cancelled"
	MatchReminder     = "match.reminder"
	MatchDue          = "match.due"
	PlayerRankChanged = "player.rank_changed"
	LeagueCreated     = "league.created"
)

type MatchScheduledPayload struct {
	MatchID     shared.MatchID  `json:"match_id"`
	LeagueID    shared.LeagueID `json:"league_id"`
	Player1ID   shared.PlayerID `json:"player1_id"`
	Player2ID   shared.PlayerID `json:"player2_id"`
	ScheduledAt *time.Time      `json:"scheduled_at,omitempty"`
	IsInstant   bool            `json:"is_instant"`
}

type MatchConfirmedPayload struct {
	MatchID       shared.MatchID  `json:"match_id"`
	LeagueID      shared.LeagueID `json:"league_id"`
	ConfirmedBy   shared.PlayerID `json:"confirmed_by"`
	BothConfirmed bool            `json:"both_confirmed"`
}

type MatchCompletedPayload struct {
	MatchID     shared.MatchID  `json:"match_id"`
	LeagueID    shared.LeagueID `json:"league_id"`
	WinnerID    shared.PlayerID `json:"winner_id"`
	LoserID     shared.PlayerID `json:"loser_id"`
	WinnerScore int             `json:"winner_score"`
	LoserScore  int             `json:"loser_score"`
	RatingDelta int             `json:"rating_delta"`
	WinnerElo   shared.Elo      `json:"winner_elo"`
	LoserElo    shared.Elo      `json:"loser_elo"`
	CompletedAt time.Time       `json:"completed_at"`
}

type MatchCancelledPayload struct {
	MatchID     shared.MatchID  `json:"match_id"`
	LeagueID    shared.LeagueID `json:"league_id"`
	CancelledBy shared.UserID   `json:"cancelled_by"`
}

type MatchReminderPayload struct {
	MatchID     shared.MatchID  `json:"match_id"`
	LeagueID    shared.LeagueID `json:"league_id"`
	ScheduledAt time.Time       `json:"scheduled_at"`
}

type PlayerRankChangedPayload struct {
	PlayerID shared.PlayerID `json:"player_id"`
	LeagueID shared.LeagueID `json:"league_id"`
	UserID   shared.UserID   `json:"user_id"`
	OldTier  shared.Tier     `json:"old_tier"`
	NewTier  shared.Tier     `json:"new_tier"`
	Elo      shared.Elo      `json:"elo"`
}

type LeagueCreatedPayload struct {
	LeagueID  shared.LeagueID `json:"league_id"`
	GuildID   string          `json:"guild_id"`
	Name      string          `json:"name"`
	CreatedBy shared.UserID   `json:"created_by"`
}
