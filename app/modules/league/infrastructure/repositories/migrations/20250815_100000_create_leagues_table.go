package leaguemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating leagues table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS leagues (
					id UUID PRIMARY KEY,
					guild_id VARCHAR NOT NULL,
					name VARCHAR NOT NULL,
					created_by VARCHAR NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
					CONSTRAINT uq_leagues_guild_name UNIQUE (guild_id, name)
				)
			`); err != nil {
				return fmt.Errorf("failed to create leagues table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_leagues_guild_id ON leagues (guild_id)
			`); err != nil {
				return fmt.Errorf("failed to create guild_id index: %w", err)
			}

			fmt.Println("leagues table created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping leagues table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS leagues CASCADE`); err != nil {
			return fmt.Errorf("failed to drop leagues table: %w", err)
		}

		fmt.Println("leagues table dropped successfully!")
		return nil
	})
}
