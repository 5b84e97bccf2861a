package playerdb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/ladderleague/ladder-bot/app/shared"
)

func (r *Impl) CreateRatingChange(ctx context.Context, db bun.IDB, change *RatingChange) error {
	if db == nil {
		db = r.db
	}
	_, err := db.NewInsert().
		Model(change).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("playerdb.CreateRatingChange: %w", err)
	}
	return nil
}

// ListRatingChanges returns a player's rating history, oldest first.
func (r *Impl) ListRatingChanges(ctx context.Context, db bun.IDB, playerID shared.PlayerID) ([]*RatingChange, error) {
	if db == nil {
		db = r.db
	}
	var changes []*RatingChange
	err := db.NewSelect().
		Model(&changes).
		Where("player_id = ?", playerID).
		OrderExpr("created_at ASC, id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("playerdb.ListRatingChanges: %w", err)
	}
	return changes, nil
}
