package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/config"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/di"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()

	app, cleanup, err := di.Initialize(cfg)
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer cleanup()

	if err := app.Run(ctx); err != nil {
		zlog.Logger.Error().Err(err).Msg("server stopped with error")
	}

	zlog.Logger.Info().Msg("notifier stopped")
}
