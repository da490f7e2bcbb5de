package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lelipitri23-dev/Komikcast/internal/config"
	"github.com/lelipitri23-dev/Komikcast/internal/database"
	"github.com/lelipitri23-dev/Komikcast/internal/ingest"
	"github.com/lelipitri23-dev/Komikcast/internal/notifications"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
	"github.com/lelipitri23-dev/Komikcast/internal/scheduler"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape/layout"
)

// refresh-catalog runs a single refresh pass over every stored series with a
// recorded source URL, without starting the API server or the periodic
// scheduler.
func main() {
	var spacingSeconds int
	flag.IntVar(&spacingSeconds, "spacing", 5, "Seconds to wait between consecutive source fetches.")
	flag.Parse()

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.SQLitePath)
	if err != nil {
		slog.Error("failed to open sqlite", "path", cfg.SQLitePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.ApplyMigrations(db, cfg.MigrationsPath); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	layoutRegistry, registryErr := layout.NewRegistry(cfg.LayoutsPath)
	if registryErr != nil {
		slog.Warn("layout registry loaded with warnings", "error", registryErr)
	}

	sourceLayout, ok := layoutRegistry.Get(cfg.SourceLayout)
	if !ok {
		slog.Error("source layout not registered", "layout", cfg.SourceLayout)
		os.Exit(1)
	}

	seriesRepo := repository.NewSeriesRepository(db)
	svc := ingest.NewService(
		scrape.NewFetcher(nil),
		sourceLayout,
		seriesRepo,
		repository.NewChapterRepository(db),
		slog.Default(),
	)

	var notifier notifications.Notifier = notifications.NoopNotifier{}
	if cfg.NotifyWebhookURL != "" {
		webhookNotifier, err := notifications.NewWebhookNotifier(cfg.NotifyWebhookURL)
		if err != nil {
			slog.Warn("webhook notifier disabled", "error", err)
		} else {
			notifier = webhookNotifier
		}
	}

	refresher := scheduler.NewRefresher(
		seriesRepo,
		svc,
		notifier,
		scheduler.RefresherConfig{
			Spacing: time.Duration(spacingSeconds) * time.Second,
		},
		nil,
		slog.Default(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := refresher.RunOnce(ctx); err != nil {
		slog.Error("refresh run failed", "error", err)
		os.Exit(1)
	}
}
