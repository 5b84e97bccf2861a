package leagueservice

import (
	"context"

	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// LeagueSummary is a league with its member count, for listings.
type LeagueSummary struct {
	League      *leaguedb.League `json:"league"`
	MemberCount int              `json:"member_count"`
}

// StandingsEntry is one row of a league's ladder.
type StandingsEntry struct {
	Position int             `json:"position"`
	PlayerID shared.PlayerID `json:"player_id"`
	UserID   shared.UserID   `json:"user_id"`
	Elo      shared.Elo      `json:"elo"`
	Tier     shared.Tier     `json:"tier"`
	Wins     int             `json:"wins"`
	Losses   int             `json:"losses"`
	WinPct   float64         `json:"win_pct"`
}

// Service is the league module boundary.
type Service interface {
	CreateLeague(ctx context.Context, guildID, name string, creator shared.UserID) (*leaguedb.League, error)
	JoinLeague(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) error
	GetLeague(ctx context.Context, leagueID shared.LeagueID) (*leaguedb.League, error)
	ListLeagues(ctx context.Context, guildID string) ([]LeagueSummary, error)
	GetStandings(ctx context.Context, leagueID shared.LeagueID) ([]StandingsEntry, error)
	ExportStandings(ctx context.Context, leagueID shared.LeagueID) ([]byte, error)
	LeaveLeague(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) error
}
