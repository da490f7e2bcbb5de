package handlers

import (
	"context"
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lelipitri23-dev/Komikcast/internal/models"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape"
)

// ChapterIngestor is the on-demand scrape entry the reader path blocks on
// when a chapter's content is not yet stored.
type ChapterIngestor interface {
	IngestChapterOnDemand(ctx context.Context, chapterURL string, mangaSlug string, chapterSlug string) *models.Chapter
}

type ReaderHandler struct {
	series   *repository.SeriesRepository
	chapters *repository.ChapterRepository
	ingestor ChapterIngestor
}

func NewReaderHandler(db *sql.DB, ingestor ChapterIngestor) *ReaderHandler {
	return &ReaderHandler{
		series:   repository.NewSeriesRepository(db),
		chapters: repository.NewChapterRepository(db),
		ingestor: ingestor,
	}
}

// Read serves one chapter's image list. A stored chapter is returned as-is;
// a missing one is scraped on demand, which blocks the request until the
// source page is fetched and stored.
func (h *ReaderHandler) Read(c *fiber.Ctx) error {
	mangaSlug := strings.TrimSpace(c.Params("mangaSlug"))
	chapterSlug := strings.TrimSpace(c.Params("chapterSlug"))
	if mangaSlug == "" || chapterSlug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid chapter path"})
	}

	series, err := h.series.FindBySlug(mangaSlug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load series"})
	}
	if series == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "series not found"})
	}

	chapter, err := h.chapters.Find(mangaSlug, chapterSlug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load chapter"})
	}

	if chapter == nil {
		ref := findChapterRef(series.Chapters, chapterSlug)
		if ref == nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "chapter not found"})
		}

		chapter = h.ingestor.IngestChapterOnDemand(c.Context(), ref.URL, mangaSlug, chapterSlug)
		if chapter == nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "chapter could not be retrieved from the source"})
		}
	}

	return c.JSON(fiber.Map{
		"chapter": chapter,
		"series": fiber.Map{
			"slug":  series.Slug,
			"title": series.Title,
		},
	})
}

// findChapterRef matches a summary entry by its listed slug, falling back to
// the slug derived from its URL for records stored before slugs were kept on
// the summary entries.
func findChapterRef(refs []models.ChapterRef, chapterSlug string) *models.ChapterRef {
	for index := range refs {
		if refs[index].Slug == chapterSlug {
			return &refs[index]
		}
		if scrape.DeriveSlug(refs[index].URL) == chapterSlug {
			return &refs[index]
		}
	}
	return nil
}
