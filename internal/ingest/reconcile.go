package ingest

import (
	"fmt"

	"github.com/lelipitri23-dev/Komikcast/internal/models"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape"
)

// reconcile resolves the identity to upsert under and whether the freshness
// timestamp advances.
//
// Identity: an existing record found by source URL wins; a slug match covers
// legacy records whose source URL was never recorded. Upserting under the
// existing row id is what prevents a second record sharing a unique source
// URL or a colliding slug.
//
// Freshness: lastUpdated defaults to now, which ranks the series to the top
// of recency-ordered listings. Only when the stored and freshly extracted
// chapter lists are both non-empty and agree on the first-listed chapter URL
// is the stored timestamp reused, keeping the ranking position unchanged.
// The first-listed entry is compared as-is; no "numerically highest chapter"
// semantic is inferred.
func (s *Service) reconcile(detail *scrape.SeriesDetail, sourceURL string, slug string) (repository.SeriesUpsert, error) {
	existing, err := s.seriesStore.FindBySourceURL(sourceURL)
	if err != nil {
		return repository.SeriesUpsert{}, fmt.Errorf("lookup by source url: %w", err)
	}
	if existing == nil {
		existing, err = s.seriesStore.FindBySlug(slug)
		if err != nil {
			return repository.SeriesUpsert{}, fmt.Errorf("lookup by slug: %w", err)
		}
	}

	lastUpdated := s.now()
	if existing != nil && len(existing.Chapters) > 0 && len(detail.Chapters) > 0 {
		if existing.Chapters[0].URL == detail.Chapters[0].URL {
			s.logger.Debug("no new chapter", "slug", slug, "title", detail.Title)
			lastUpdated = existing.LastUpdated
		} else {
			s.logger.Info("new chapter detected", "slug", slug, "title", detail.Title)
		}
	}

	upsert := repository.SeriesUpsert{
		Slug:        slug,
		SourceURL:   sourceURL,
		Title:       detail.Title,
		NativeTitle: detail.NativeTitle,
		CoverImage:  detail.CoverImage,
		Type:        detail.Type,
		Rating:      detail.Rating,
		Author:      detail.Author,
		Status:      detail.Status,
		Synopsis:    detail.Synopsis,
		Genres:      detail.Genres,
		Chapters:    toChapterRefs(detail.Chapters),
		LastUpdated: lastUpdated,
	}
	if existing != nil {
		upsert.ID = existing.ID
	}

	return upsert, nil
}

func toChapterRefs(items []scrape.ChapterItem) []models.ChapterRef {
	refs := make([]models.ChapterRef, 0, len(items))
	for _, item := range items {
		refs = append(refs, models.ChapterRef{
			Title:       item.Title,
			Slug:        item.Slug,
			URL:         item.URL,
			ReleaseDate: item.ReleaseDate,
		})
	}
	return refs
}
