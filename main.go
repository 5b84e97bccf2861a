package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ladderleague/ladder-bot/app"
	"github.com/ladderleague/ladder-bot/app/observability"
	"github.com/ladderleague/ladder-bot/app/shared/attr"
	"github.com/ladderleague/ladder-bot/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	obs := observability.NewProvider(config.ToObsConfig(cfg))
	logger := obs.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, obs)
	if err != nil {
		logger.Error("failed to initialize application", attr.Error(err))
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("application exited with error", attr.Error(err))
	}

	application.Close(context.Background())
}
