package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ladderleague/ladder-bot/api"
	"github.com/ladderleague/ladder-bot/app/eventbus"
	leagueservice "github.com/ladderleague/ladder-bot/app/modules/league/application"
	matchservice "github.com/ladderleague/ladder-bot/app/modules/match/application"
	matchqueue "github.com/ladderleague/ladder-bot/app/modules/match/infrastructure/queue"
	matchtime "github.com/ladderleague/ladder-bot/app/modules/match/time_utils"
	playerservice "github.com/ladderleague/ladder-bot/app/modules/player/application"
	"github.com/ladderleague/ladder-bot/app/observability"
	"github.com/ladderleague/ladder-bot/app/shared"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
	"github.com/ladderleague/ladder-bot/config"
	"github.com/ladderleague/ladder-bot/db/bundb"
)

// App owns the process-wide dependencies and their shutdown order.
type App struct {
	Config *config.Config
	Obs    *observability.Provider

	DB       *bundb.DBService
	EventBus shared.EventBus
	Queue    *matchqueue.Service

	LeagueService leagueservice.Service
	PlayerService playerservice.Service
	MatchService  matchservice.Service

	httpServer    *http.Server
	metricsServer *http.Server
}

// NewApp wires everything together: database, event bus, job queue,
// module services, and the HTTP API.
func NewApp(ctx context.Context, cfg *config.Config, obs *observability.Provider) (*App, error) {
	logger := obs.Logger

	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}
	db := dbService.GetDB()

	bus, err := eventbus.NewEventBus(ctx, cfg.NATS.URL, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}
	if err := eventbus.InitializeStreams(ctx, bus); err != nil {
		return nil, fmt.Errorf("failed to initialize streams: %w", err)
	}

	queue, err := matchqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, obs.MatchMetrics, bus)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize match queue: %w", err)
	}

	leagueService := leagueservice.NewLeagueService(
		dbService.LeagueDB, dbService.PlayerDB, dbService.MatchDB,
		bus, logger, obs.LeagueMetrics, obs.Tracer, db,
	)
	playerService := playerservice.NewPlayerService(
		dbService.PlayerDB, bus, logger, obs.PlayerMetrics, obs.Tracer, db,
	)
	matchService := matchservice.NewMatchService(
		dbService.MatchDB, dbService.PlayerDB, dbService.LeagueDB, queue,
		bus, logger, obs.MatchMetrics, obs.Tracer, db,
	)

	apiServer := api.NewServer(leagueService, playerService, matchService, matchtime.NewTimeParser(), logger)
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: 5 * time.Second,
		Handler: apiServer.Routes(api.Config{
			JWTSecret:     cfg.JWT.Secret,
			RatePerSecond: cfg.HTTP.RatePerSecond,
			RateBurst:     cfg.HTTP.RateBurst,
		}),
	}

	var metricsServer *http.Server
	if cfg.Observability.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
		metricsServer = &http.Server{
			Addr:              cfg.Observability.MetricsAddress,
			ReadHeaderTimeout: 5 * time.Second,
			Handler:           mux,
		}
	}

	return &App{
		Config:        cfg,
		Obs:           obs,
		DB:            dbService,
		EventBus:      bus,
		Queue:         queue,
		LeagueService: leagueService,
		PlayerService: playerService,
		MatchService:  matchService,
		httpServer:    httpServer,
		metricsServer: metricsServer,
	}, nil
}

// Run starts the queue workers and HTTP listeners, then blocks until
// the context is cancelled or a listener fails.
func (a *App) Run(ctx context.Context) error {
	logger := a.Obs.Logger

	if err := a.Queue.Start(ctx); err != nil {
		return fmt.Errorf("failed to start queue: %w", err)
	}

	errCh := make(chan error, 2)

	go func() {
		logger.InfoContext(ctx, "API listening", attr.String("addr", a.httpServer.Addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("api server: %w", err)
		}
	}()

	if a.metricsServer != nil {
		go func() {
			logger.InfoContext(ctx, "metrics listening", attr.String("addr", a.metricsServer.Addr))
			if err := a.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Close shuts everything down in reverse dependency order.
func (a *App) Close(ctx context.Context) {
	logger := a.Obs.Logger

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down API server", attr.Error(err))
	}
	if a.metricsServer != nil {
		if err := a.metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down metrics server", attr.Error(err))
		}
	}
	if err := a.Queue.Stop(shutdownCtx); err != nil {
		logger.Error("failed to stop queue", attr.Error(err))
	}
	if err := a.EventBus.Close(); err != nil {
		logger.Error("failed to close event bus", attr.Error(err))
	}
	if err := a.DB.GetDB().Close(); err != nil {
		logger.Error("failed to close database", attr.Error(err))
	}

	logger.Info("shutdown complete")
}
