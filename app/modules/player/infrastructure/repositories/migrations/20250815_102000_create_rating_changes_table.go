package playermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating rating_changes table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			// player_id and match_id are logical links (no constraint):
			// history survives a player leaving the league.
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS rating_changes (
					id BIGSERIAL PRIMARY KEY,
					player_id UUID NOT NULL,
					match_id UUID NOT NULL,
					elo_before INTEGER NOT NULL,
					elo_after INTEGER NOT NULL,
					delta INTEGER NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)
			`); err != nil {
				return fmt.Errorf("failed to create rating_changes table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_rating_changes_player_created ON rating_changes (player_id, created_at)
			`); err != nil {
				return fmt.Errorf("failed to create player/created index: %w", err)
			}

			fmt.Println("rating_changes table created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping rating_changes table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS rating_changes CASCADE`); err != nil {
			return fmt.Errorf("failed to drop rating_changes table: %w", err)
		}

		fmt.Println("rating_changes table dropped successfully!")
		return nil
	})
}
