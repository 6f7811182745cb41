package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sojasapi/internal/adapters/httpapi"
	"sojasapi/internal/adapters/scheduler"
	"sojasapi/internal/bootstrap"
	"sojasapi/internal/config"
	"sojasapi/internal/infrastructure/i18n"
	"sojasapi/pkg/logging"
)

func main() {
	bootLogger := logging.NewLogger("sojasapi", slog.LevelInfo)
	cfg, err := config.Load()
	if err != nil {
		bootLogger.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := logging.NewLogger("sojasapi", cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("initialise application", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	if cfg.SyncInterval > 0 {
		sched, err := scheduler.New(app.Sync, cfg.SyncInterval, logger.With("component", "scheduler"))
		if err != nil {
			logger.Error("create scheduler", "err", err)
			os.Exit(1)
		}
		if err := sched.Start(ctx); err != nil {
			logger.Error("start scheduler", "err", err)
			os.Exit(1)
		}
		defer func() {
			if err := sched.Shutdown(); err != nil {
				logger.Warn("scheduler shutdown", "err", err)
			}
		}()
	}

	translator := i18n.NewTranslator(cfg.DefaultLocale, logger)
	handler := httpapi.NewHandler(app.Events, app.Participants, app.Auth, app.Users, translator, logger)
	srv := httpapi.NewServer(cfg.Addr(), httpapi.NewRouter(handler))

	if err := httpapi.Run(ctx, srv, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
