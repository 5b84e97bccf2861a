package matchservice

import (
	"context"
	"time"

	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// MatchView is the read model returned by queries: entity fields plus
// the resolved user ids, so callers never join on their side.
type MatchView struct {
	ID       shared.MatchID     `json:"id"`
	LeagueID shared.LeagueID    `json:"league_id"`
	Status   shared.MatchStatus `json:"status"`

	Player1ID   shared.PlayerID `json:"player1_id"`
	Player2ID   shared.PlayerID `json:"player2_id"`
	Player1User shared.UserID   `json:"player1_user"`
	Player2User shared.UserID   `json:"player2_user"`

	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	IsInstant   bool       `json:"is_instant"`

	Player1Confirmed bool `json:"player1_confirmed"`
	Player2Confirmed bool `json:"player2_confirmed"`

	Player1Score *int             `json:"player1_score,omitempty"`
	Player2Score *int             `json:"player2_score,omitempty"`
	WinnerID     *shared.PlayerID `json:"winner_id,omitempty"`
	LoserID      *shared.PlayerID `json:"loser_id,omitempty"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ResultSummary describes a completed match: final ratings and any
// tier movements, including players demoted by Grandmaster
// arbitration who were not in the match.
type ResultSummary struct {
	Match       *matchdb.Match `json:"match"`
	WinnerElo   shared.Elo     `json:"winner_elo"`
	LoserElo    shared.Elo     `json:"loser_elo"`
	RatingDelta int            `json:"rating_delta"`
	TierChanges []TierChange   `json:"tier_changes,omitempty"`
}

// TierChange records one player's rank movement.
type TierChange struct {
	PlayerID shared.PlayerID `json:"player_id"`
	UserID   shared.UserID   `json:"user_id"`
	OldTier  shared.Tier     `json:"old_tier"`
	NewTier  shared.Tier     `json:"new_tier"`
	Elo      shared.Elo      `json:"elo"`
}

// Service is the match lifecycle boundary.
type Service interface {
	ScheduleMatch(ctx context.Context, leagueID shared.LeagueID, challenger, opponent shared.UserID, scheduledAt *time.Time) (*matchdb.Match, error)
	ConfirmMatch(ctx context.Context, matchID shared.MatchID, userID shared.UserID) (*matchdb.Match, error)
	ReportResult(ctx context.Context, matchID shared.MatchID, reporter shared.UserID, score1, score2 int) (*ResultSummary, error)
	CancelMatch(ctx context.Context, matchID shared.MatchID, userID shared.UserID) (*matchdb.Match, error)

	GetMatch(ctx context.Context, matchID shared.MatchID) (*MatchView, error)
	ListPlayerMatches(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID, status *shared.MatchStatus) ([]*matchdb.Match, error)
	ListScheduledMatches(ctx context.Context, leagueID shared.LeagueID) ([]*matchdb.Match, error)
	ListActiveMatches(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) ([]*matchdb.Match, error)
}

// JobScheduler enqueues and cancels the reminder jobs attached to a
// dated match. The River-backed implementation lives in
// infrastructure/queue.
type JobScheduler interface {
	ScheduleMatchJobs(ctx context.Context, matchID shared.MatchID, leagueID shared.LeagueID, scheduledAt time.Time) error
	CancelMatchJobs(ctx context.Context, matchID shared.MatchID) error
}
