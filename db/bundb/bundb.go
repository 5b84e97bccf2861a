package bundb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	leaguedb "github.com/ladderleague/ladder-bot/app/modules/league/infrastructure/repositories"
	matchdb "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/repositories"
	playerdb "github.com/ladderleague/ladder-bot/app/modules/player/infrastructure/repositories"
	"github.com/ladderleague/ladder-bot/config"
)

// DBService bundles the bun connection with the module repositories
// built on it.
type DBService struct {
	LeagueDB *leaguedb.Impl
	PlayerDB *playerdb.Impl
	MatchDB  *matchdb.Impl
	db       *bun.DB
}

// GetDB returns the underlying database connection pool.
func (s *DBService) GetDB() *bun.DB {
	return s.db
}

// NewBunDBService connects to Postgres and wires up the repositories.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig) (*DBService, error) {
	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())

	db.RegisterModel(&leaguedb.League{})
	db.RegisterModel(&playerdb.Player{})
	db.RegisterModel(&playerdb.RatingChange{})
	db.RegisterModel(&matchdb.Match{})

	return &DBService{
		LeagueDB: leaguedb.NewRepository(db),
		PlayerDB: playerdb.NewRepository(db),
		MatchDB:  matchdb.NewRepository(db),
		db:       db,
	}, nil
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return sqldb, nil
}
