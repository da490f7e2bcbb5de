package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lelipitri23-dev/Komikcast/internal/config"
	"github.com/lelipitri23-dev/Komikcast/internal/database"
	apihttp "github.com/lelipitri23-dev/Komikcast/internal/http"
	"github.com/lelipitri23-dev/Komikcast/internal/ingest"
	"github.com/lelipitri23-dev/Komikcast/internal/notifications"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
	"github.com/lelipitri23-dev/Komikcast/internal/scheduler"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape/layout"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})
	logger := slog.New(handler)
	slog.SetDefault(logger)

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

	if cfg.SeedDefaultData {
		if err := database.SeedDefaults(db); err != nil {
			slog.Error("failed to seed defaults", "error", err)
			os.Exit(1)
		}
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

	svc := ingest.NewService(
		scrape.NewFetcher(nil),
		sourceLayout,
		repository.NewSeriesRepository(db),
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

	app := apihttp.NewServer(cfg, db, svc)

	settings := repository.NewSettingsRepository(db)
	refreshMinutes, err := settings.GetInt("refresh_minutes", cfg.RefreshMinutes)
	if err != nil {
		slog.Warn("failed to read refresh_minutes setting", "error", err)
		refreshMinutes = cfg.RefreshMinutes
	}
	refreshSpacingSeconds, err := settings.GetInt("refresh_spacing_seconds", 5)
	if err != nil {
		slog.Warn("failed to read refresh_spacing_seconds setting", "error", err)
		refreshSpacingSeconds = 5
	}

	refresherCtx, refresherCancel := context.WithCancel(context.Background())
	refresher := scheduler.NewRefresher(
		repository.NewSeriesRepository(db),
		svc,
		notifier,
		scheduler.RefresherConfig{
			Interval: time.Duration(refreshMinutes) * time.Minute,
			Spacing:  time.Duration(refreshSpacingSeconds) * time.Second,
		},
		nil,
		slog.Default(),
	)
	if cfg.RefreshEnabled {
		refresher.Start(refresherCtx)
	}

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server stopped", "error", err)
		}
	}()

	slog.Info("api started", "port", cfg.Port, "env", cfg.Environment, "layout", cfg.SourceLayout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	slog.Info("shutting down server")
	refresherCancel()
	if cfg.RefreshEnabled {
		refresher.StopWait(2 * time.Second)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
