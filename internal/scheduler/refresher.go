package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lelipitri23-dev/Komikcast/internal/ingest"
	"github.com/lelipitri23-dev/Komikcast/internal/notifications"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
)

type refreshStore interface {
	ListForRefresh() ([]repository.RefreshTarget, error)
}

// Refresher periodically re-ingests every stored series that has a recorded
// source URL, one at a time, with a fixed spacing between outbound fetches.
// When a run turns up a new first-listed chapter it notifies.
type Refresher struct {
	store    refreshStore
	ingestor ingest.SeriesIngestor
	notifier notifications.Notifier
	interval time.Duration
	spacing  time.Duration
	clock    ingest.Clock
	logger   *slog.Logger
	stopCh   chan struct{}
}

type RefresherConfig struct {
	Interval time.Duration
	Spacing  time.Duration
}

func NewRefresher(store refreshStore, ingestor ingest.SeriesIngestor, notifier notifications.Notifier, cfg RefresherConfig, clock ingest.Clock, logger *slog.Logger) *Refresher {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Spacing <= 0 {
		cfg.Spacing = 5 * time.Second
	}
	if notifier == nil {
		notifier = notifications.NoopNotifier{}
	}
	if clock == nil {
		clock = ingest.SystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Refresher{
		store:    store,
		ingestor: ingestor,
		notifier: notifier,
		interval: cfg.Interval,
		spacing:  cfg.Spacing,
		clock:    clock,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (r *Refresher) Start(ctx context.Context) {
	r.logger.Info("refresher started", "interval", r.interval.String(), "spacing", r.spacing.String())
	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				r.logger.Info("refresher stopped")
				close(r.stopCh)
				return
			case <-ticker.C:
				if err := r.RunOnce(ctx); err != nil {
					r.logger.Warn("refresh cycle failed", "error", err)
				}
			}
		}
	}()
}

func (r *Refresher) StopWait(timeout time.Duration) {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	select {
	case <-r.stopCh:
	case <-time.After(timeout):
	}
}

// RunOnce walks the full catalog sequentially. Individual failures are
// already logged and swallowed by the ingestor; only loading the target list
// can fail the cycle.
func (r *Refresher) RunOnce(ctx context.Context) error {
	targets, err := r.store.ListForRefresh()
	if err != nil {
		return fmt.Errorf("load refresh targets: %w", err)
	}

	r.logger.Info("refresh run starting", "series", len(targets))

	started := false
	for _, target := range targets {
		if ctx.Err() != nil {
			r.logger.Info("refresh run canceled")
			return nil
		}

		if started {
			r.clock.Sleep(r.spacing)
		}
		started = true

		updated := r.ingestor.IngestSeries(ctx, target.SourceURL)
		if updated == nil {
			continue
		}

		if len(updated.Chapters) > 0 && updated.Chapters[0].URL != target.TopChapterURL {
			r.notify(ctx, target.Title, updated.Slug, updated.Chapters[0].Title)
		}
	}

	r.logger.Info("refresh run finished", "series", len(targets))
	return nil
}

func (r *Refresher) notify(ctx context.Context, title string, slug string, chapterTitle string) {
	message := notifications.Message{
		Title: fmt.Sprintf("New chapter: %s", title),
		Body:  chapterTitle,
		Context: map[string]interface{}{
			"slug": slug,
		},
	}
	if err := r.notifier.Notify(ctx, message); err != nil {
		r.logger.Warn("refresh notification failed", "slug", slug, "error", err)
	}
}
