package matchdb

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

// Impl is the bun-backed MatchDB.
type Impl struct {
	db *bun.DB
}

// NewRepository creates a MatchDB on the given connection.
func NewRepository(db *bun.DB) *Impl {
	return &Impl{db: db}
}

func (r *Impl) CreateMatch(ctx context.Context, db bun.IDB, match *Match) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().
		Model(match).
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("matchdb.CreateMatch: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a Postgres 23505.
func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	return errors.As(err, &pgErr) && pgErr.Field('C') == "23505"
}

func (r *Impl) GetMatch(ctx context.Context, db bun.IDB, matchID shared.MatchID) (*Match, error) {
	if db == nil {
		db = r.db
	}
	match := &Match{}
	err := db.NewSelect().
		Model(match).
		Where("id = ?", matchID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("matchdb.GetMatch: %w", err)
	}
	return match, nil
}

// GetMatchForUpdate locks the match row for the duration of the
// enclosing transaction. Every state transition re-reads through this
// so concurrent transitions serialize on the row lock.
func (r *Impl) GetMatchForUpdate(ctx context.Context, db bun.IDB, matchID shared.MatchID) (*Match, error) {
	if db == nil {
		db = r.db
	}
	match := &Match{}
	err := db.NewSelect().
		Model(match).
		Where("id = ?", matchID).
		For("UPDATE").
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("matchdb.GetMatchForUpdate: %w", err)
	}
	return match, nil
}

func (r *Impl) UpdateMatch(ctx context.Context, db bun.IDB, match *Match) error {
	if db == nil {
		db = r.db
	}
	match.UpdatedAt = time.Now().UTC()
	res, err := db.NewUpdate().
		Model(match).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("matchdb.UpdateMatch: %w", err)
	}
	rows, err := res.RowsAffected()
	if err == nil && rows == 0 {
		return ErrNoRowsAffected
	}
	return nil
}

// FindActiveBetween returns the SCHEDULED match pairing the two
// players in the league, in either seat order.
func (r *Impl) FindActiveBetween(ctx context.Context, db bun.IDB, leagueID shared.LeagueID, a, b shared.PlayerID) (*Match, error) {
	if db == nil {
		db = r.db
	}
	match := &Match{}
	err := db.NewSelect().
		Model(match).
		Where("league_id = ?", leagueID).
		Where("status = ?", shared.MatchStatusScheduled).
		Where("((player1_id = ? AND player2_id = ?) OR (player1_id = ? AND player2_id = ?))", a, b, b, a).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("matchdb.FindActiveBetween: %w", err)
	}
	return match, nil
}

// ListByPlayer returns the player's matches, newest first.
func (r *Impl) ListByPlayer(ctx context.Context, db bun.IDB, playerID shared.PlayerID, filter ListFilter) ([]*Match, error) {
	if db == nil {
		db = r.db
	}
	var matches []*Match
	q := db.NewSelect().
		Model(&matches).
		Where("(player1_id = ? OR player2_id = ?)", playerID, playerID)
	if filter.LeagueID != nil {
		q = q.Where("league_id = ?", *filter.LeagueID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	err := q.OrderExpr("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("matchdb.ListByPlayer: %w", err)
	}
	return matches, nil
}

// ListScheduledByLeague returns the league's open matches, soonest
// scheduled date first with undated (instant) matches last.
func (r *Impl) ListScheduledByLeague(ctx context.Context, db bun.IDB, leagueID shared.LeagueID) ([]*Match, error) {
	if db == nil {
		db = r.db
	}
	var matches []*Match
	err := db.NewSelect().
		Model(&matches).
		Where("league_id = ?", leagueID).
		Where("status = ?", shared.MatchStatusScheduled).
		OrderExpr("scheduled_at ASC NULLS LAST, created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("matchdb.ListScheduledByLeague: %w", err)
	}
	return matches, nil
}

// ListActiveByPlayerInLeague is the leave-league guard query: any
// SCHEDULED match still pins the player to the league.
func (r *Impl) ListActiveByPlayerInLeague(ctx context.Context, db bun.IDB, playerID shared.PlayerID, leagueID shared.LeagueID) ([]*Match, error) {
	if db == nil {
		db = r.db
	}
	var matches []*Match
	err := db.NewSelect().
		Model(&matches).
		Where("league_id = ?", leagueID).
		Where("status = ?", shared.MatchStatusScheduled).
		Where("(player1_id = ? OR player2_id = ?)", playerID, playerID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("matchdb.ListActiveByPlayerInLeague: %w", err)
	}
	return matches, nil
}
