package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/wayfarerhq/wayfarer/adapter/cli"
	cliBookings "github.com/wayfarerhq/wayfarer/adapter/cli/bookings"
	cliEvents "github.com/wayfarerhq/wayfarer/adapter/cli/events"
	cliSchedule "github.com/wayfarerhq/wayfarer/adapter/cli/schedule"
	"github.com/wayfarerhq/wayfarer/internal/app"
	"github.com/wayfarerhq/wayfarer/pkg/config"
	"github.com/wayfarerhq/wayfarer/pkg/observability"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development"}
	}

	logCfg := observability.DefaultLogConfig()
	if cfg.IsProduction() {
		logCfg = observability.ProductionLogConfig()
	}
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetApp(&cli.App{
		CheckConflictsHandler: container.CheckConflictsHandler,
		GetBriefingHandler:    container.GetBriefingHandler,
		DetectIntentHandler:   container.DetectIntentHandler,
		Source:                container.Source,
		Store:                 container.Store,
		CurrentUserID:         cfg.UserID,
	})

	cli.AddCommand(cliSchedule.Cmd)
	cli.AddCommand(cliBookings.Cmd)
	cli.AddCommand(cliEvents.Cmd)

	cli.Execute()
}
