package playerdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/ladderleague/ladder-bot/app/shared"
)

// Impl is the bun-backed PlayerDB.
type Impl struct {
	db *bun.DB
}

// NewRepository creates a PlayerDB on the given connection.
func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

func (r *Impl) CreatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().
		Model(player).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("playerdb.CreatePlayer: %w", err)
	}
	return nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*Player, error) {
	if db == nil {
		db = r.db
	}
	player := &Player{}
	err := db.NewSelect().
		Model(player).
		Where("id = ?", playerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("playerdb.GetByID: %w", err)
	}
	return player, nil
}

// GetByIDForUpdate locks the player row for the duration of the
// enclosing transaction.
func (r *Impl) GetByIDForUpdate(ctx context.Context, db bun.IDB, playerID shared.PlayerID) (*Player, error) {
	if db == nil {
		db = r.db
	}
	player := &Player{}
	err := db.NewSelect().
		Model(player).
		Where("id = ?", playerID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("playerdb.GetByIDForUpdate: %w", err)
	}
	return player, nil
}

func (r *Impl) GetByUserAndLeague(ctx context.Context, db bun.IDB, userID shared.UserID, leagueID shared.LeagueID) (*Player, error) {
	if db == nil {
		db = r.db
	}
	player := &Player{}
	err := db.NewSelect().
		Model(player).
		Where("user_id = ?", userID).
		Where("league_id = ?", leagueID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("playerdb.GetByUserAndLeague: %w", err)
	}
	return player, nil
}

// ListByLeague returns the league's players in standings order.
func (r *Impl) ListByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*Player, error) {
	if db == nil {
		db = r.db
	}
	var players []*Player
	err := db.NewSelect().
		Model(&players).
		Where("league_id = ?", leagueID).
		OrderExpr("elo DESC, joined_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("playerdb.ListByLeague: %w", err)
	}
	return players, nil
}

// ListEligibleForUpdate returns players at or above minElo, locked FOR
// UPDATE, in arbitration order: elo desc, then joined_at asc, then id
// asc. The ordering is the deterministic tie-break for the single
// Grandmaster slot.
func (r *Impl) ListEligibleForUpdate(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, minElo shared.Elo) ([]*Player, error) {
	if db == nil {
		db = r.db
	}
	var players []*Player
	err := db.NewSelect().
		Model(&players).
		Where("league_id = ?", leagueID).
		Where("elo >= ?", minElo).
		OrderExpr("elo DESC, joined_at ASC, id ASC").
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("playerdb.ListEligibleForUpdate: %w", err)
	}
	return players, nil
}

func (r *Impl) UpdatePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	if db == nil {
		db = r.db
	}
	player.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(player).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("playerdb.UpdatePlayer: %w", err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) DeletePlayer(ctx context.Context, db bun.IDB, playerID shared.PlayerID) error {
	if db == nil {
		db = r.db
	}
	res, err := db.NewDelete().
		Model((*Player)(nil)).
		Where("id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("playerdb.DeletePlayer: %w", err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) CountByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (int, error) {
	if db == nil {
		db = r.db
	}
	count, err := db.NewSelect().
		Model((*Player)(nil)).
		Where("league_id = ?", leagueID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("playerdb.CountByLeague: %w", err)
	}
	return count, nil
}

// isUniqueViolation reports whether err is a Postgres 23505.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}
