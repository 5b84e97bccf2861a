package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	leaguemigrations "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories/migrations"
	matchmigrations "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories/migrations"
	playermigrations "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories/migrations"
	"github.com/ladderleague/ladder-bot/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgdb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
	db := bun.NewDB(pgdb, pgdialect.New())
	defer db.Close()

	migrators := map[string]*migrate.Migrator{
		"league": migrate.NewMigrator(db, leaguemigrations.Migrations),
		"player": migrate.NewMigrator(db, playermigrations.Migrations),
		"match":  migrate.NewMigrator(db, matchmigrations.Migrations),
	}

	cliApp := &cli.App{
		Name: "bun",
		Commands: []*cli.Command{
			newMultiModuleDBCommand(migrators),
			newRiverCommand(cfg.Postgres.DSN),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// newRiverCommand manages the river_job schema backing the match
// reminder queue. River runs on pgx, not database/sql.
func newRiverCommand(dsn string) *cli.Command {
	return &cli.Command{
		Name:  "river",
		Usage: "job queue schema migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply river migrations",
				Action: func(c *cli.Context) error {
					pool, err := pgxpool.New(c.Context, dsn)
					if err != nil {
						return fmt.Errorf("failed to create pgx pool: %w", err)
					}
					defer pool.Close()

					migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
					if err != nil {
						return err
					}
					res, err := migrator.Migrate(c.Context, rivermigrate.DirectionUp, nil)
					if err != nil {
						return err
					}
					for _, v := range res.Versions {
						fmt.Printf("Applied river migration version %d\n", v.Version)
					}
					return nil
				},
			},
			{
				Name:  "down",
				Usage: "roll back river migrations",
				Action: func(c *cli.Context) error {
					pool, err := pgxpool.New(c.Context, dsn)
					if err != nil {
						return fmt.Errorf("failed to create pgx pool: %w", err)
					}
					defer pool.Close()

					migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
					if err != nil {
						return err
					}
					res, err := migrator.Migrate(c.Context, rivermigrate.DirectionDown, &rivermigrate.MigrateOpts{MaxSteps: 1})
					if err != nil {
						return err
					}
					for _, v := range res.Versions {
						fmt.Printf("Rolled back river migration version %d\n", v.Version)
					}
					return nil
				},
			},
		},
	}
}

func newMultiModuleDBCommand(migrators map[string]*migrate.Migrator) *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						fmt.Printf("Initializing migrations for module: %s\n", moduleName)
						if err := migrator.Init(c.Context); err != nil {
							return fmt.Errorf("init %s: %w", moduleName, err)
						}
					}
					return nil
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						group, err := migrator.Migrate(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No new migrations to run for module: %s\n", moduleName)
						} else {
							fmt.Printf("Migrated module: %s to %s\n", moduleName, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						group, err := migrator.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.IsZero() {
							fmt.Printf("No groups to roll back for module: %s\n", moduleName)
						} else {
							fmt.Printf("Rolled back module: %s to %s\n", moduleName, group)
						}
					}
					return nil
				},
			},
			{
				Name:  "create_go",
				Usage: "create Go migration",
				Action: func(c *cli.Context) error {
					moduleName := c.Args().First()
					migrator, ok := migrators[moduleName]
					if !ok {
						return fmt.Errorf("invalid module name: %s", moduleName)
					}

					name := strings.Join(c.Args().Tail(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name)
					if err != nil {
						return err
					}
					fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					for moduleName, migrator := range migrators {
						ms, err := migrator.MigrationsWithStatus(c.Context)
						if err != nil {
							return err
						}
						fmt.Printf("Migrations for module: %s\n", moduleName)
						fmt.Printf("  %s\n", ms)
						fmt.Printf("  Applied: %s\n", ms.Applied())
						fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
					}
					return nil
				},
			},
		},
	}
}
