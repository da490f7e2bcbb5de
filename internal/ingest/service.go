package ingest

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lelipitri23-dev/Komikcast/internal/models"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape"
)

// SeriesStore is the slice of the catalog store the orchestrator needs:
// unique-field lookup and identity-keyed upsert.
type SeriesStore interface {
	FindBySourceURL(sourceURL string) (*models.Series, error)
	FindBySlug(slug string) (*models.Series, error)
	Upsert(upsert repository.SeriesUpsert) (*models.Series, error)
}

type ChapterStore interface {
	Upsert(upsert repository.ChapterUpsert) (*models.Chapter, error)
}

// Service composes fetch, extraction, reconciliation, and storage. It is the
// entry point for the admin action, the reader's on-demand chapter fetch, and
// the periodic refresh. Every failure is logged and converted to a nil
// result; nothing propagates past this boundary.
type Service struct {
	fetcher      *scrape.Fetcher
	layout       scrape.Layout
	seriesStore  SeriesStore
	chapterStore ChapterStore
	logger       *slog.Logger
	now          func() time.Time
}

func NewService(fetcher *scrape.Fetcher, layout scrape.Layout, seriesStore SeriesStore, chapterStore ChapterStore, logger *slog.Logger) *Service {
	if fetcher == nil {
		fetcher = scrape.NewFetcher(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		fetcher:      fetcher,
		layout:       layout,
		seriesStore:  seriesStore,
		chapterStore: chapterStore,
		logger:       logger,
		now:          time.Now,
	}
}

// IngestSeries fetches one series page, extracts the series record, reconciles
// it against stored state, and upserts the result. Returns nil on any
// failure.
func (s *Service) IngestSeries(ctx context.Context, sourceURL string) *models.Series {
	s.logger.Info("ingesting series", "url", sourceURL)

	doc, err := s.fetcher.FetchDocument(ctx, sourceURL)
	if err != nil {
		s.logger.Warn("series fetch failed", "url", sourceURL, "error", err)
		return nil
	}

	detail, err := s.layout.ExtractSeries(doc, sourceURL)
	if err != nil {
		s.logger.Warn("series extraction failed", "url", sourceURL, "error", err)
		return nil
	}

	slug := scrape.DeriveSlug(sourceURL)
	if slug == "" {
		s.logger.Warn("cannot derive slug from url", "url", sourceURL)
		return nil
	}

	upsert, err := s.reconcile(detail, sourceURL, slug)
	if err != nil {
		s.logger.Warn("series reconciliation failed", "url", sourceURL, "error", err)
		return nil
	}

	saved, err := s.seriesStore.Upsert(upsert)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.logger.Warn("duplicate key while upserting series, skipping", "url", sourceURL, "slug", slug)
		} else {
			s.logger.Error("series upsert failed", "url", sourceURL, "slug", slug, "error", err)
		}
		return nil
	}

	return saved
}

// IngestChapterOnDemand fetches one chapter page and stores its image list
// under the (mangaSlug, chapterSlug) composite key. Invoked when a reader
// requests a chapter whose content is not yet stored; the caller blocks until
// this completes or fails. Returns nil on any failure, including a page that
// yields zero images.
func (s *Service) IngestChapterOnDemand(ctx context.Context, chapterURL string, mangaSlug string, chapterSlug string) *models.Chapter {
	s.logger.Info("ingesting chapter", "url", chapterURL, "manga", mangaSlug, "chapter", chapterSlug)

	doc, err := s.fetcher.FetchDocument(ctx, chapterURL)
	if err != nil {
		s.logger.Warn("chapter fetch failed", "url", chapterURL, "error", err)
		return nil
	}

	content, err := s.layout.ExtractChapter(doc, chapterURL)
	if err != nil {
		s.logger.Warn("chapter extraction failed", "url", chapterURL, "error", err)
		return nil
	}

	saved, err := s.chapterStore.Upsert(repository.ChapterUpsert{
		MangaSlug:   mangaSlug,
		ChapterSlug: chapterSlug,
		Title:       content.Title,
		Images:      content.Images,
		PrevSlug:    nullableSlug(content.PrevSlug),
		NextSlug:    nullableSlug(content.NextSlug),
		LastScraped: s.now(),
	})
	if err != nil {
		s.logger.Error("chapter upsert failed", "url", chapterURL, "manga", mangaSlug, "chapter", chapterSlug, "error", err)
		return nil
	}

	s.logger.Info("chapter stored", "manga", mangaSlug, "chapter", chapterSlug, "images", len(saved.Images))
	return saved
}

func nullableSlug(slug string) *string {
	if slug == "" {
		return nil
	}
	return &slug
}
