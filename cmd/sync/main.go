// Command sync mirrors every remote event page into the datastore once and exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"sojasapi/internal/bootstrap"
	"sojasapi/internal/config"
	"sojasapi/pkg/logging"
)

func main() {
	page := flag.Int("page", 0, "sync only this page (0 syncs every page)")
	flag.Parse()

	bootLogger := logging.NewLogger("sojasapi-sync", slog.LevelInfo)
	cfg, err := config.Load()
	if err != nil {
		bootLogger.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := logging.NewLogger("sojasapi-sync", cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("initialise application", "err", err)
		os.Exit(1)
	}
	defer app.Close()

	if *page > 0 {
		remote, err := app.Sync.SyncPage(ctx, *page)
		if err != nil {
			logger.Error("sync failed", "page", *page, "err", err)
			app.Close()
			os.Exit(1)
		}
		fmt.Printf("synced page %d/%d: %d events\n", remote.Page, remote.TotalPages, len(remote.Events))
		return
	}

	summary, err := app.Sync.SyncAll(ctx)
	if err != nil {
		logger.Error("sync failed", "pages", summary.Pages, "events", summary.Events, "err", err)
		app.Close()
		os.Exit(1)
	}
	fmt.Printf("synced %d pages, %d events\n", summary.Pages, summary.Events)
}
