package matchservice

import (
	"bytes"
	"context"
	"sort"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/uptrace/bun"

	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// FakeMatchRepository keeps matches in memory so lifecycle tests see
// their own writes. Func fields override individual methods.
type FakeMatchRepository struct {
	matches map[shared.MatchID]*matchdb.Match

	CreateMatchFunc       func(ctx context.Context, db bun.IDB, match *matchdb.Match) error
	GetMatchForUpdateFunc func(ctx context.Context, db bun.IDB, matchID shared.MatchID) (*matchdb.Match, error)
	UpdateMatchFunc       func(ctx context.Context, db bun.IDB, match *matchdb.Match) error
	FindActiveBetweenFunc func(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, a, b shared.PlayerID) (*matchdb.Match, error)
}

func NewFakeMatchRepository() *FakeMatchRepository {
	return &FakeMatchRepository{matches: map[shared.MatchID]*matchdb.Match{}}
}

func (f *FakeMatchRepository) Seed(match *matchdb.Match) {
	f.matches[match.ID] = match
}

func (f *FakeMatchRepository) CreateMatch(ctx context.Context, db bun.IDB, match *matchdb.Match) error {
	if f.CreateMatchFunc != nil {
		return f.CreateMatchFunc(ctx, db, match)
	}
	f.matches[match.ID] = match
	return nil
}

func (f *FakeMatchRepository) GetMatch(ctx context.Context, db bun.IDB, matchID shared.MatchID) (*matchdb.Match, error) {
	match, ok := f.matches[matchID]
	if !ok {
		return nil, matchdb.ErrNotFound
	}
	return match, nil
}

func (f *FakeMatchRepository) GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID shared.MatchID) (*matchdb.Match, error) {
	if f.GetMatchForUpdateFunc != nil {
		return f.GetMatchForUpdateFunc(ctx, db, matchID)
	}
	return f.GetMatch(ctx, db, matchID)
}

func (f *FakeMatchRepository) UpdateMatch(ctx context.Context, db bun.IDB, match *matchdb.Match) error {
	if f.UpdateMatchFunc != nil {
		return f.UpdateMatchFunc(ctx, db, match)
	}
	if _, ok := f.matches[match.ID]; !ok {
		return matchdb.ErrNoRowsAffected
	}
	f.matches[match.ID] = match
	return nil
}

func (f *FakeMatchRepository) FindActiveBetween(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, a, b shared.PlayerID) (*matchdb.Match, error) {
	if f.FindActiveBetweenFunc != nil {
		return f.FindActiveBetweenFunc(ctx, db, leagueID, a, b)
	}
	for _, m := range f.matches {
		if m.LeagueID != leagueID || m.Status != shared.MatchStatusScheduled {
			continue
		}
		if (m.Player1ID == a && m.Player2ID == b) || (m.Player1ID == b && m.Player2ID == a) {
			return m, nil
		}
	}
	return nil, matchdb.ErrNotFound
}

func (f *FakeMatchRepository) ListByPlayer(ctx context.Context, db bun.IDB, playerID shared.PlayerID, filter matchdb.ListFilter) ([]*matchdb.Match, error) {
	out := []*matchdb.Match{}
	for _, m := range f.matches {
		if m.Player1ID != playerID && m.Player2ID != playerID {
			continue
		}
		if filter.LeagueID != nil && m.LeagueID != *filter.LeagueID {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *FakeMatchRepository) ListScheduledByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*matchdb.Match, error) {
	out := []*matchdb.Match{}
	for _, m := range f.matches {
		if m.LeagueID == leagueID && m.Status == shared.MatchStatusScheduled {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *FakeMatchRepository) ListActiveByPlayerInLeague(ctx context.Context, db bun.IDB, playerID shared.PlayerID, leagueID shared.LeagueID) ([]*matchdb.Match, error) {
	out := []*matchdb.Match{}
	for _, m := range f.matches {
		if m.LeagueID != leagueID || m.Status != shared.MatchStatusScheduled {
			continue
		}
		if m.Player1ID == playerID || m.Player2ID == playerID {
			out = append(out, m)
		}
	}
	return out, nil
}

var _ matchdb.MatchDB = (*FakeMatchRepository)(nil)

// FakePlayerRepository keeps players in memory, indexed both by id and
// by (user, league).
type FakePlayerRepository struct {
	players map[shared.PlayerID]*playerdb.Player

	RatingChanges []*playerdb.RatingChange
}

func NewFakePlayerRepository() *FakePlayerRepository {
	return &FakePlayerRepository{players: map[shared.PlayerID]*playerdb.Player{}}
}

func (f *FakePlayerRepository) Seed(player *playerdb.Player) {
	f.players[player.ID] = player
}

func (f *FakePlayerRepository) CreatePlayer(ctx context.Context, db bun.IDB, player *playerdb.Player) error {
	f.players[player.ID] = player
	return nil
}

func (f *FakePlayerRepository) GetByID(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*playerdb.Player, error) {
	player, ok := f.players[playerID]
	if !ok {
		return nil, playerdb.ErrNotFound
	}
	return player, nil
}

func (f *FakePlayerRepository) GetByIDForUpdate(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*playerdb.Player, error) {
	return f.GetByID(ctx, db, playerID)
}

func (f *FakePlayerRepository) GetByUserAndLeague(ctx context.Context, db bun.IDB, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error) {
	for _, p := range f.players {
		if p.UserID == userID && p.LeagueID == leagueID {
			return p, nil
		}
	}
	return nil, playerdb.ErrNotFound
}

func (f *FakePlayerRepository) ListByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*playerdb.Player, error) {
	out := []*playerdb.Player{}
	for _, p := range f.players {
		if p.LeagueID == leagueID {
			out = append(out, p)
		}
	}
	return out, nil
}

// ListEligibleForUpdate mirrors the SQL ordering: elo desc, joined_at
// asc, id asc.
func (f *FakePlayerRepository) ListEligibleForUpdate(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, minElo shared.Elo) ([]*playerdb.Player, error) {
	out := []*playerdb.Player{}
	for _, p := range f.players {
		if p.LeagueID == leagueID && p.Elo >= minElo {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Elo != out[j].Elo {
			return out[i].Elo > out[j].Elo
		}
		if !out[i].JoinedAt.Equal(out[j].JoinedAt) {
			return out[i].JoinedAt.Before(out[j].JoinedAt)
		}
		return bytes.Compare(out[i].ID[:], out[j].ID[:]) < 0
	})
	return out, nil
}

func (f *FakePlayerRepository) UpdatePlayer(ctx context.Context, db bun.IDB, player *playerdb.Player) error {
	f.players[player.ID] = player
	return nil
}

func (f *FakePlayerRepository) DeletePlayer(ctx context.Context, db bun.IDB, playerID shared.PlayerID) error {
	delete(f.players, playerID)
	return nil
}

func (f *FakePlayerRepository) CountByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (int, error) {
	players, _ := f.ListByLeague(ctx, db, leagueID)
	return len(players), nil
}

func (f *FakePlayerRepository) CreateRatingChange(ctx context.Context, db bun.IDB, change *playerdb.RatingChange) error {
	f.RatingChanges = append(f.RatingChanges, change)
	return nil
}

func (f *FakePlayerRepository) ListRatingChanges(ctx context.Context, db bun.IDB, playerID shared.PlayerID) ([]*playerdb.RatingChange, error) {
	out := []*playerdb.RatingChange{}
	for _, c := range f.RatingChanges {
		if c.PlayerID == playerID {
			out = append(out, c)
		}
	}
	return out, nil
}

var _ playerdb.PlayerDB = (*FakePlayerRepository)(nil)

// FakeLeagueRepository covers the league lock the completion
// transaction takes before arbitration.
type FakeLeagueRepository struct {
	LockCalls int

	GetByIDForUpdateFunc func(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (*leaguedb.League, error)
}

func (f *FakeLeagueRepository) CreateLeague(ctx context.Context, db bun.IDB, league *leaguedb.League) error {
	return nil
}

func (f *FakeLeagueRepository) GetByID(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (*leaguedb.League, error) {
	return &leaguedb.League{ID: leagueID}, nil
}

func (f *FakeLeagueRepository) GetByIDForUpdate(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (*leaguedb.League, error) {
	f.LockCalls++
	if f.GetByIDForUpdateFunc != nil {
		return f.GetByIDForUpdateFunc(ctx, db, leagueID)
	}
	return &leaguedb.League{ID: leagueID}, nil
}

func (f *FakeLeagueRepository) ListByGuild(ctx context.Context, db bun.IDB, guildID string) ([]*leaguedb.League, error) {
	return []*leaguedb.League{}, nil
}

var _ leaguedb.LeagueDB = (*FakeLeagueRepository)(nil)

// FakeEventBus records published messages by subject.
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

func (f *FakeEventBus) Subjects() []string {
	out := make([]string, 0, len(f.Published))
	for _, msg := range f.Published {
		out = append(out, msg.Metadata.Get("subject"))
	}
	return out
}

var _ shared.EventBus = (*FakeEventBus)(nil)

// FakeJobScheduler records scheduled and cancelled match jobs.
type FakeJobScheduler struct {
	Scheduled []shared.MatchID
	Cancelled []shared.MatchID

	ScheduleMatchJobsFunc func(ctx context.Context, matchID shared.MatchID, leagueID shared.LeagueID, scheduledAt time.Time) error
}

func (f *FakeJobScheduler) ScheduleMatchJobs(ctx context.Context, matchID shared.MatchID, leagueID shared.LeagueID, scheduledAt time.Time) error {
	f.Scheduled = append(f.Scheduled, matchID)
	if f.ScheduleMatchJobsFunc != nil {
		return f.ScheduleMatchJobsFunc(ctx, matchID, leagueID, scheduledAt)
	}
	return nil
}

func (f *FakeJobScheduler) CancelMatchJobs(ctx context.Context, matchID shared.MatchID) error {
	f.Cancelled = append(f.Cancelled, matchID)
	return nil
}

var _ JobScheduler = (*FakeJobScheduler)(nil)
