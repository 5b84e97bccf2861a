package leaguedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/ladderleague/ladder-bot/app/shared"
)

// Impl is the bun-backed LeagueDB.
type Impl struct {
	db *bun.DB
}

// NewRepository creates a LeagueDB on the given connection.
func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

func (r *Impl) CreateLeague(ctx context.Context, db bun.IDB, league *League) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().
		Model(league).
		Exec(ctx)
	if err != nil {
		var pgErr pgdriver.Error
		if errors.As(err, &pgErr) && pgErr.Field('C') == "23505" {
			return ErrDuplicate
		}
		return fmt.Errorf("leaguedb.CreateLeague: %w", err)
	}
	return nil
}

func (r *Impl) GetByID(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (*League, error) {
	if db == nil {
		db = r.db
	}
	league := &League{}
	err := db.NewSelect().
		Model(league).
		Where("id = ?", leagueID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("leaguedb.GetByID: %w", err)
	}
	return league, nil
}

// GetByIDForUpdate locks the league row for the duration of the
// enclosing transaction. The match module takes this lock before
// Grandmaster arbitration so all completions in one league serialize,
// even when no player row is eligible for locking.
func (r *Impl) GetByIDForUpdate(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) (*League, error) {
	if db == nil {
		db = r.db
	}
	league := &League{}
	err := db.NewSelect().
		Model(league).
		Where("id = ?", leagueID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("leaguedb.GetByIDForUpdate: %w", err)
	}
	return league, nil
}

// ListByGuild returns the guild's leagues, oldest first.
func (r *Impl) ListByGuild(ctx context.Context, db bun.IDB, guildID string) ([]*League, error) {
	if db == nil {
		db = r.db
	}
	var leagues []*League
	err := db.NewSelect().
		Model(&leagues).
		Where("guild_id = ?", guildID).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("leaguedb.ListByGuild: %w", err)
	}
	return leagues, nil
}
