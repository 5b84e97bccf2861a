package leagueservice

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// FakeLeagueRepository provides a programmable stub for the
// leaguedb.LeagueDB interface.
type FakeLeagueRepository struct {
	trace []string

	CreateLeagueFunc func(ctx context.Context, db bun.IDB, league *leaguedb.League) error
	GetByIDFunc      func(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (*leaguedb.League, error)
	ListByGuildFunc  func(ctx context.Context, db bun.IDB, guildID string) ([]*leaguedb.League, error)

	LastCreatedLeague *leaguedb.League
}

func NewFakeLeagueRepository() *FakeLeagueRepository {
	return &FakeLeagueRepository{trace: []string{}}
}

func (f *FakeLeagueRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeLeagueRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeLeagueRepository) CreateLeague(ctx context.Context, db bun.IDB, league *leaguedb.League) error {
	f.record("CreateLeague")
	f.LastCreatedLeague = league
	if f.CreateLeagueFunc != nil {
		return f.CreateLeagueFunc(ctx, db, league)
	}
	return nil
}

func (f *FakeLeagueRepository) GetByID(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (*leaguedb.League, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, leagueID)
	}
	return &leaguedb.League{ID: leagueID, Name: "test league"}, nil
}

func (f *FakeLeagueRepository) GetByIDForUpdate(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (*leaguedb.League, error) {
	f.record("GetByIDForUpdate")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, leagueID)
	}
	return &leaguedb.League{ID: leagueID, Name: "test league"}, nil
}

func (f *FakeLeagueRepository) ListByGuild(ctx context.Context, db bun.IDB, guildID string) ([]*leaguedb.League, error) {
	f.record("ListByGuild")
	if f.ListByGuildFunc != nil {
		return f.ListByGuildFunc(ctx, db, guildID)
	}
	return []*leaguedb.League{}, nil
}

var _ leaguedb.LeagueDB = (*FakeLeagueRepository)(nil)

// FakePlayerRepository stubs the playerdb.PlayerDB methods the league
// service touches; the rest return zero values.
type FakePlayerRepository struct {
	CreatePlayerFunc       func(ctx context.Context, db bun.IDB, player *playerdb.Player) error
	GetByUserAndLeagueFunc func(ctx context.Context, db bun.IDB, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error)
	ListByLeagueFunc       func(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*playerdb.Player, error)
	DeletePlayerFunc       func(ctx context.Context, db bun.IDB, playerID shared.PlayerID) error
	CountByLeagueFunc      func(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (int, error)

	LastCreatedPlayer *playerdb.Player
	DeletedPlayers    []shared.PlayerID
}

func (f *FakePlayerRepository) CreatePlayer(ctx context.Context, db bun.IDB, player *playerdb.Player) error {
	f.LastCreatedPlayer = player
	if f.CreatePlayerFunc != nil {
		return f.CreatePlayerFunc(ctx, db, player)
	}
	return nil
}

func (f *FakePlayerRepository) GetByID(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*playerdb.Player, error) {
	return &playerdb.Player{ID: playerID}, nil
}

func (f *FakePlayerRepository) GetByIDForUpdate(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*playerdb.Player, error) {
	return &playerdb.Player{ID: playerID}, nil
}

func (f *FakePlayerRepository) GetByUserAndLeague(ctx context.Context, db bun.IDB, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error) {
	if f.GetByUserAndLeagueFunc != nil {
		return f.GetByUserAndLeagueFunc(ctx, db, userID, leagueID)
	}
	return nil, playerdb.ErrNotFound
}

func (f *FakePlayerRepository) ListByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*playerdb.Player, error) {
	if f.ListByLeagueFunc != nil {
		return f.ListByLeagueFunc(ctx, db, leagueID)
	}
	return []*playerdb.Player{}, nil
}

func (f *FakePlayerRepository) ListEligibleForUpdate(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, minElo shared.Elo) ([]*playerdb.Player, error) {
	return []*playerdb.Player{}, nil
}

func (f *FakePlayerRepository) UpdatePlayer(ctx context.Context, db bun.IDB, player *playerdb.Player) error {
	return nil
}

func (f *FakePlayerRepository) DeletePlayer(ctx context.Context, db bun.IDB, playerID shared.PlayerID) error {
	f.DeletedPlayers = append(f.DeletedPlayers, playerID)
	if f.DeletePlayerFunc != nil {
		return f.DeletePlayerFunc(ctx, db, playerID)
	}
	return nil
}

func (f *FakePlayerRepository) CountByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (int, error) {
	if f.CountByLeagueFunc != nil {
		return f.CountByLeagueFunc(ctx, db, leagueID)
	}
	return 0, nil
}

func (f *FakePlayerRepository) CreateRatingChange(ctx context.Context, db bun.IDB, change *playerdb.RatingChange) error {
	return nil
}

func (f *FakePlayerRepository) ListRatingChanges(ctx context.Context, db bun.IDB, playerID shared.PlayerID) ([]*playerdb.RatingChange, error) {
	return []*playerdb.RatingChange{}, nil
}

var _ playerdb.PlayerDB = (*FakePlayerRepository)(nil)

// FakeMatchRepository stubs the leave-league guard query.
type FakeMatchRepository struct {
	ListActiveByPlayerInLeagueFunc func(ctx context.Context, db bun.IDB, playerID shared.PlayerID, leagueID shared.LeagueID) ([]*matchdb.Match, error)
}

func (f *FakeMatchRepository) CreateMatch(ctx context.Context, db bun.IDB, match *matchdb.Match) error {
	return nil
}

func (f *FakeMatchRepository) GetMatch(ctx context.Context, db bun.IDB, matchID shared.MatchID) (*matchdb.Match, error) {
	return nil, matchdb.ErrNotFound
}

func (f *FakeMatchRepository) GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID shared.MatchID) (*matchdb.Match, error) {
	return nil, matchdb.ErrNotFound
}

func (f *FakeMatchRepository) UpdateMatch(ctx context.Context, db bun.IDB, match *matchdb.Match) error {
	return nil
}

func (f *FakeMatchRepository) FindActiveBetween(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, a, b shared.PlayerID) (*matchdb.Match, error) {
	return nil, matchdb.ErrNotFound
}

func (f *FakeMatchRepository) ListByPlayer(ctx context.Context, db bun.IDB, playerID shared.PlayerID, filter matchdb.ListFilter) ([]*matchdb.Match, error) {
	return []*matchdb.Match{}, nil
}

func (f *FakeMatchRepository) ListScheduledByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*matchdb.Match, error) {
	return []*matchdb.Match{}, nil
}

func (f *FakeMatchRepository) ListActiveByPlayerInLeague(ctx context.Context, db bun.IDB, playerID shared.PlayerID, leagueID shared.LeagueID) ([]*matchdb.Match, error) {
	if f.ListActiveByPlayerInLeagueFunc != nil {
		return f.ListActiveByPlayerInLeagueFunc(ctx, db, playerID, leagueID)
	}
	return []*matchdb.Match{}, nil
}

var _ matchdb.MatchDB = (*FakeMatchRepository)(nil)

// FakeEventBus records published messages.
type FakeEventBus struct {
	Published []*message.Message
}

func (f *FakeEventBus) Publish(ctx context.Context, streamName string, msg *message.Message) error {
	f.Published = append(f.Published, msg)
	return nil
}

func (f *FakeEventBus) Subscribe(ctx context.Context, streamName string, subject string, handler func(ctx context.Context, msg *message.Message) error) error {
	return nil
}

func (f *FakeEventBus) CreateStream(ctx context.Context, streamName string, subject string) error {
	return nil
}

func (f *FakeEventBus) Close() error { return nil }

var _ shared.EventBus = (*FakeEventBus)(nil)
