package api

import (
	"context"
	"time"

	leagueservice "github.com/ladderleague/ladder-bot/app/modules/league/application"
	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	matchservice "github.com/ladderleague/ladder-bot/app/modules/match/application"
	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	playerservice "github.com/ladderleague/ladder-bot/app/modules/player/application"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// FakeLeagueService stubs leagueservice.Service; Func fields override
// individual operations.
type FakeLeagueService struct {
	CreateLeagueFunc    func(ctx context.Context, guildID, name string, creator shared.UserID) (*leaguedb.League, error)
	JoinLeagueFunc      func(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) error
	GetLeagueFunc       func(ctx context.Context, leagueID shared.LeagueID) (*leaguedb.League, error)
	ListLeaguesFunc     func(ctx context.Context, guildID string) ([]leagueservice.LeagueSummary, error)
	GetStandingsFunc    func(ctx context.Context, leagueID shared.LeagueID) ([]leagueservice.StandingsEntry, error)
	ExportStandingsFunc func(ctx context.Context, leagueID shared.LeagueID) ([]byte, error)
	LeaveLeagueFunc     func(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) error
}

func (f *FakeLeagueService) CreateLeague(ctx context.Context, guildID, name string, creator shared.UserID) (*leaguedb.League, error) {
	if f.CreateLeagueFunc != nil {
		return f.CreateLeagueFunc(ctx, guildID, name, creator)
	}
	return &leaguedb.League{ID: shared.NewLeagueID(), GuildID: guildID, Name: name, CreatedBy: creator}, nil
}

func (f *FakeLeagueService) JoinLeague(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) error {
	if f.JoinLeagueFunc != nil {
		return f.JoinLeagueFunc(ctx, userID, leagueID)
	}
	return nil
}

func (f *FakeLeagueService) GetLeague(ctx context.Context, leagueID shared.LeagueID) (*leaguedb.League, error) {
	if f.GetLeagueFunc != nil {
		return f.GetLeagueFunc(ctx, leagueID)
	}
	return &leaguedb.League{ID: leagueID, Name: "test league"}, nil
}

func (f *FakeLeagueService) ListLeagues(ctx context.Context, guildID string) ([]leagueservice.LeagueSummary, error) {
	if f.ListLeaguesFunc != nil {
		return f.ListLeaguesFunc(ctx, guildID)
	}
	return []leagueservice.LeagueSummary{}, nil
}

func (f *FakeLeagueService) GetStandings(ctx context.Context, leagueID shared.LeagueID) ([]leagueservice.StandingsEntry, error) {
	if f.GetStandingsFunc != nil {
		return f.GetStandingsFunc(ctx, leagueID)
	}
	return []leagueservice.StandingsEntry{}, nil
}

func (f *FakeLeagueService) ExportStandings(ctx context.Context, leagueID shared.LeagueID) ([]byte, error) {
	if f.ExportStandingsFunc != nil {
		return f.ExportStandingsFunc(ctx, leagueID)
	}
	return []byte("xlsx"), nil
}

func (f *FakeLeagueService) LeaveLeague(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) error {
	if f.LeaveLeagueFunc != nil {
		return f.LeaveLeagueFunc(ctx, userID, leagueID)
	}
	return nil
}

var _ leagueservice.Service = (*FakeLeagueService)(nil)

// FakePlayerService stubs playerservice.Service.
type FakePlayerService struct {
	GetPlayerFunc        func(ctx context.Context, playerID shared.PlayerID) (*playerdb.Player, error)
	GetRatingHistoryFunc func(ctx context.Context, playerID shared.PlayerID) ([]*playerdb.RatingChange, error)
}

func (f *FakePlayerService) RegisterPlayer(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error) {
	return &playerdb.Player{ID: shared.NewPlayerID(), UserID: userID, LeagueID: leagueID}, nil
}

func (f *FakePlayerService) GetPlayer(ctx context.Context, playerID shared.PlayerID) (*playerdb.Player, error) {
	if f.GetPlayerFunc != nil {
		return f.GetPlayerFunc(ctx, playerID)
	}
	return &playerdb.Player{ID: playerID, Elo: 1000, Rank: shared.TierBronze}, nil
}

func (f *FakePlayerService) GetPlayerByUser(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error) {
	return &playerdb.Player{ID: shared.NewPlayerID(), UserID: userID, LeagueID: leagueID}, nil
}

func (f *FakePlayerService) GetRatingHistory(ctx context.Context, playerID shared.PlayerID) ([]*playerdb.RatingChange, error) {
	if f.GetRatingHistoryFunc != nil {
		return f.GetRatingHistoryFunc(ctx, playerID)
	}
	return []*playerdb.RatingChange{}, nil
}

func (f *FakePlayerService) RenderRatingChart(ctx context.Context, playerID shared.PlayerID) ([]byte, error) {
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

var _ playerservice.Service = (*FakePlayerService)(nil)

// FakeMatchService stubs matchservice.Service.
type FakeMatchService struct {
	ScheduleMatchFunc func(ctx context.Context, leagueID shared.LeagueID, challenger, opponent shared.UserID, scheduledAt *time.Time) (*matchdb.Match, error)
	ConfirmMatchFunc  func(ctx context.Context, matchID shared.MatchID, userID shared.UserID) (*matchdb.Match, error)
	ReportResultFunc  func(ctx context.Context, matchID shared.MatchID, reporter shared.UserID, score1, score2 int) (*matchservice.ResultSummary, error)
	CancelMatchFunc   func(ctx context.Context, matchID shared.MatchID, userID shared.UserID) (*matchdb.Match, error)
	GetMatchFunc      func(ctx context.Context, matchID shared.MatchID) (*matchservice.MatchView, error)

	LastScheduledAt *time.Time
}

func (f *FakeMatchService) ScheduleMatch(ctx context.Context, leagueID shared.LeagueID, challenger, opponent shared.UserID, scheduledAt *time.Time) (*matchdb.Match, error) {
	f.LastScheduledAt = scheduledAt
	if f.ScheduleMatchFunc != nil {
		return f.ScheduleMatchFunc(ctx, leagueID, challenger, opponent, scheduledAt)
	}
	return &matchdb.Match{ID: shared.NewMatchID(), LeagueID: leagueID, Status: shared.MatchStatusScheduled}, nil
}

func (f *FakeMatchService) ConfirmMatch(ctx context.Context, matchID shared.MatchID, userID shared.UserID) (*matchdb.Match, error) {
	if f.ConfirmMatchFunc != nil {
		return f.ConfirmMatchFunc(ctx, matchID, userID)
	}
	return &matchdb.Match{ID: matchID, Status: shared.MatchStatusScheduled}, nil
}

func (f *FakeMatchService) ReportResult(ctx context.Context, matchID shared.MatchID, reporter shared.UserID, score1, score2 int) (*matchservice.ResultSummary, error) {
	if f.ReportResultFunc != nil {
		return f.ReportResultFunc(ctx, matchID, reporter, score1, score2)
	}
	return &matchservice.ResultSummary{Match: &matchdb.Match{ID: matchID, Status: shared.MatchStatusCompleted}}, nil
}

func (f *FakeMatchService) CancelMatch(ctx context.Context, matchID shared.MatchID, userID shared.UserID) (*matchdb.Match, error) {
	if f.CancelMatchFunc != nil {
		return f.CancelMatchFunc(ctx, matchID, userID)
	}
	return &matchdb.Match{ID: matchID, Status: shared.MatchStatusCancelled}, nil
}

func (f *FakeMatchService) GetMatch(ctx context.Context, matchID shared.MatchID) (*matchservice.MatchView, error) {
	if f.GetMatchFunc != nil {
		return f.GetMatchFunc(ctx, matchID)
	}
	return &matchservice.MatchView{ID: matchID, Status: shared.MatchStatusScheduled}, nil
}

func (f *FakeMatchService) ListPlayerMatches(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID, status *shared.MatchStatus) ([]*matchdb.Match, error) {
	return []*matchdb.Match{}, nil
}

func (f *FakeMatchService) ListScheduledMatches(ctx context.Context, leagueID shared.LeagueID) ([]*matchdb.Match, error) {
	return []*matchdb.Match{}, nil
}

func (f *FakeMatchService) ListActiveMatches(ctx context.Context, userID shared.UserID, leagueID shared.LeagueID) ([]*matchdb.Match, error) {
	return []*matchdb.Match{}, nil
}

var _ matchservice.Service = (*FakeMatchService)(nil)
