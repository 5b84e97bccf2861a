package matchmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating matches table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS matches (
					id UUID PRIMARY KEY,
					league_id UUID NOT NULL,
					status VARCHAR NOT NULL DEFAULT 'SCHEDULED',
					player1_id UUID NOT NULL,
					player2_id UUID NOT NULL,
					scheduled_at TIMESTAMPTZ DEFAULT NULL,
					is_instant BOOLEAN NOT NULL DEFAULT FALSE,
					player1_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
					player2_confirmed BOOLEAN NOT NULL DEFAULT FALSE,
					player1_score INTEGER DEFAULT NULL,
					player2_score INTEGER DEFAULT NULL,
					winner_id UUID DEFAULT NULL,
					loser_id UUID DEFAULT NULL,
					completed_at TIMESTAMPTZ DEFAULT NULL,
					created_by VARCHAR NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
				)
			`); err != nil {
				return fmt.Errorf("failed to create matches table: %w", err)
			}

			// Open-match listings and the duplicate-pair check scan by
			// league over SCHEDULED rows only.
			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_matches_league_scheduled ON matches (league_id, scheduled_at) WHERE status = 'SCHEDULED'
			`); err != nil {
				return fmt.Errorf("failed to create league/scheduled index: %w", err)
			}

			// At most one SCHEDULED match per pair per league, in either
			// seat order. Backs the service's duplicate check against
			// concurrent inserts that each saw no existing row.
			if _, err := tx.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS uq_matches_league_open_pair
				ON matches (league_id, LEAST(player1_id, player2_id), GREATEST(player1_id, player2_id))
				WHERE status = 'SCHEDULED'
			`); err != nil {
				return fmt.Errorf("failed to create open pair unique index: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_matches_player1 ON matches (player1_id)
			`); err != nil {
				return fmt.Errorf("failed to create player1 index: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_matches_player2 ON matches (player2_id)
			`); err != nil {
				return fmt.Errorf("failed to create player2 index: %w", err)
			}

			fmt.Println("matches table created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping matches table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS matches CASCADE`); err != nil {
			return fmt.Errorf("failed to drop matches table: %w", err)
		}

		fmt.Println("matches table dropped successfully!")
		return nil
	})
}
