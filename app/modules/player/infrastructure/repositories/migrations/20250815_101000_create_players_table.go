package playermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating players table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS players (
					id UUID PRIMARY KEY,
					user_id VARCHAR NOT NULL,
					league_id UUID NOT NULL,
					elo INTEGER NOT NULL DEFAULT 1000,
					rank VARCHAR NOT NULL DEFAULT 'BRONZE',
					wins INTEGER NOT NULL DEFAULT 0,
					losses INTEGER NOT NULL DEFAULT 0,
					joined_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					CONSTRAINT uq_players_user_league UNIQUE (user_id, league_id)
				)
			`); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}

			// Standings and Grandmaster arbitration both scan by league
			// ordered by rating.
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_players_league_elo ON players (league_id, elo DESC)
			`); err != nil {
				return fmt.Errorf("failed to create league/elo index: %w", err)
			}

			fmt.Println("players table created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping players table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS players CASCADE`); err != nil {
			return fmt.Errorf("failed to drop players table: %w", err)
		}

		fmt.Println("players table dropped successfully!")
		return nil
	})
}
