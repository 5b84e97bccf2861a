package playerservice

import (
	"context"

	"github.com/uptrace/bun"

	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/app/shared"
)

// FakePlayerRepository provides a programmable stub for the
// playerdb.PlayerDB interface.
type FakePlayerRepository struct {
	trace []string

	CreatePlayerFunc          func(ctx context.Context, db bun.IDB, player *playerdb.Player) error
	GetByIDFunc               func(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*playerdb.Player, error)
	GetByIDForUpdateFunc      func(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*playerdb.Player, error)
	GetByUserAndLeagueFunc    func(ctx context.Context, db bun.IDB, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error)
	ListByLeagueFunc          func(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*playerdb.Player, error)
	ListEligibleForUpdateFunc func(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, minElo shared.Elo) ([]*playerdb.Player, error)
	UpdatePlayerFunc          func(ctx context.Context, db bun.IDB, player *playerdb.Player) error
	DeletePlayerFunc          func(ctx context.Context, db bun.IDB, playerID shared.PlayerID) error
	CountByLeagueFunc         func(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (int, error)
	CreateRatingChangeFunc    func(ctx context.Context, db bun.IDB, change *playerdb.RatingChange) error
	ListRatingChangesFunc     func(ctx context.Context, db bun.IDB, playerID shared.PlayerID) ([]*playerdb.RatingChange, error)

	LastCreatedPlayer *playerdb.Player
}

// NewFakePlayerRepository initializes a fake with an empty trace.
func NewFakePlayerRepository() *FakePlayerRepository {
	return &FakePlayerRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakePlayerRepository) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakePlayerRepository) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakePlayerRepository) CreatePlayer(ctx context.Context, db bun.IDB, player *playerdb.Player) error {
	f.record("CreatePlayer")
	f.LastCreatedPlayer = player
	if f.CreatePlayerFunc != nil {
		return f.CreatePlayerFunc(ctx, db, player)
	}
	return nil
}

func (f *FakePlayerRepository) GetByID(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*playerdb.Player, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, playerID)
	}
	return &playerdb.Player{ID: playerID}, nil
}

func (f *FakePlayerRepository) GetByIDForUpdate(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*playerdb.Player, error) {
	f.record("GetByIDForUpdate")
	if f.GetByIDForUpdateFunc != nil {
		return f.GetByIDForUpdateFunc(ctx, db, playerID)
	}
	return &playerdb.Player{ID: playerID}, nil
}

func (f *FakePlayerRepository) GetByUserAndLeague(ctx context.Context, db bun.IDB, userID shared.UserID, leagueID shared.LeagueID) (*playerdb.Player, error) {
	f.record("GetByUserAndLeague")
	if f.GetByUserAndLeagueFunc != nil {
		return f.GetByUserAndLeagueFunc(ctx, db, userID, leagueID)
	}
	return nil, playerdb.ErrNotFound
}

func (f *FakePlayerRepository) ListByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*playerdb.Player, error) {
	f.record("ListByLeague")
	if f.ListByLeagueFunc != nil {
		return f.ListByLeagueFunc(ctx, db, leagueID)
	}
	return []*playerdb.Player{}, nil
}

func (f *FakePlayerRepository) ListEligibleForUpdate(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, minElo shared.Elo) ([]*playerdb.Player, error) {
	f.record("ListEligibleForUpdate")
	if f.ListEligibleForUpdateFunc != nil {
		return f.ListEligibleForUpdateFunc(ctx, db, leagueID, minElo)
	}
	return []*playerdb.Player{}, nil
}

func (f *FakePlayerRepository) UpdatePlayer(ctx context.Context, db bun.IDB, player *playerdb.Player) error {
	f.record("UpdatePlayer")
	if f.UpdatePlayerFunc != nil {
		return f.UpdatePlayerFunc(ctx, db, player)
	}
	return nil
}

func (f *FakePlayerRepository) DeletePlayer(ctx context.Context, db bun.IDB, playerID shared.PlayerID) error {
	f.record("DeletePlayer")
	if f.DeletePlayerFunc != nil {
		return f.DeletePlayerFunc(ctx, db, playerID)
	}
	return nil
}

func (f *FakePlayerRepository) CountByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (int, error) {
	f.record("CountByLeague")
	if f.CountByLeagueFunc != nil {
		return f.CountByLeagueFunc(ctx, db, leagueID)
	}
	return 0, nil
}

func (f *FakePlayerRepository) CreateRatingChange(ctx context.Context, db bun.IDB, change *playerdb.RatingChange) error {
	f.record("CreateRatingChange")
	if f.CreateRatingChangeFunc != nil {
		return f.CreateRatingChangeFunc(ctx, db, change)
	}
	return nil
}

func (f *FakePlayerRepository) ListRatingChanges(ctx context.Context, db bun.IDB, playerID shared.PlayerID) ([]*playerdb.RatingChange, error) {
	f.record("ListRatingChanges")
	if f.ListRatingChangesFunc != nil {
		return f.ListRatingChangesFunc(ctx, db, playerID)
	}
	return []*playerdb.RatingChange{}, nil
}

// Ensure the fake satisfies the interface.
var _ playerdb.PlayerDB = (*FakePlayerRepository)(nil)
