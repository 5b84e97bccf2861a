package matchqueue

import (
	"github.com/ladderleague/ladder-bot/app/shared"
)

// MatchReminderJob fires ahead of a dated match and publishes a
// match.reminder event for the Discord front-end to deliver.
type MatchReminderJob struct {
	MatchID  shared.MatchID  `json:"match_id"`
	LeagueID shared.LeagueID `json:"league_id"`
	At       string          `json:"scheduled_at"`
}

// Kind returns the job type identifier for River.
func (MatchReminderJob) Kind() string { return "match_reminder" }

// MatchDueJob fires at the scheduled time and publishes a match.due
// event prompting the players to report their result.
type MatchDueJob struct {
	MatchID  shared.MatchID  `json:"match_id"`
	LeagueID shared.LeagueID `json:"league_id"`
	At       string          `json:"scheduled_at"`
}

// Kind returns the job type identifier for River.
func (MatchDueJob) Kind() string { return "match_due" }

// JobInfo describes a scheduled job, for debugging and monitoring.
type JobInfo struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	MatchID     string `json:"match_id"`
	State       string `json:"state"`
	ScheduledAt string `json:"scheduled_at"`
	CreatedAt   string `json:"created_at"`
	Attempt     int    `json:"attempt"`
	MaxAttempts int    `json:"max_attempts"`
}
