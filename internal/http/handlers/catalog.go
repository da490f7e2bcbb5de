package handlers

import (
	"database/sql"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
	"github.com/lelipitri23-dev/Komikcast/internal/searchutil"
)

const catalogPageSize = 24

type CatalogHandler struct {
	repo *repository.SeriesRepository
}

func NewCatalogHandler(db *sql.DB) *CatalogHandler {
	return &CatalogHandler{repo: repository.NewSeriesRepository(db)}
}

// Home serves the landing payload: the most recently updated series with a
// short chapter summary per card.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	series, err := h.repo.List(repository.SeriesListOptions{
		OrderBy:      "update",
		Limit:        36,
		ChapterLimit: 2,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load catalog"})
	}

	return c.JSON(fiber.Map{"items": series})
}

func (h *CatalogHandler) List(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	options := repository.SeriesListOptions{
		Query:        c.Query("q"),
		Status:       c.Query("status", "all"),
		Type:         c.Query("type", "all"),
		Genres:       parseGenres(c.Query("genre")),
		OrderBy:      c.Query("orderby", "update"),
		Limit:        catalogPageSize,
		Offset:       (page - 1) * catalogPageSize,
		ChapterLimit: 1,
	}

	series, err := h.repo.List(options)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to list series"})
	}

	total, err := h.repo.Count(options)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to count series"})
	}

	return c.JSON(fiber.Map{
		"items":      series,
		"total":      total,
		"page":       page,
		"totalPages": (total + catalogPageSize - 1) / catalogPageSize,
	})
}

func (h *CatalogHandler) Popular(c *fiber.Ctx) error {
	series, err := h.repo.List(repository.SeriesListOptions{
		OrderBy:      "popular",
		Limit:        catalogPageSize,
		ChapterLimit: 1,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load popular series"})
	}

	return c.JSON(fiber.Map{"items": series})
}

// Project lists the manhwa shelf, the section the original site curated as
// its in-house projects.
func (h *CatalogHandler) Project(c *fiber.Ctx) error {
	series, err := h.repo.List(repository.SeriesListOptions{
		Type:         "Manhwa",
		OrderBy:      "update",
		Limit:        catalogPageSize,
		ChapterLimit: 1,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load project series"})
	}

	return c.JSON(fiber.Map{"items": series})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid series slug"})
	}

	series, err := h.repo.FindBySlug(slug)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load series"})
	}
	if series == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "series not found"})
	}

	return c.JSON(series)
}

func (h *CatalogHandler) Search(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "search query is required"})
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	options := repository.SeriesListOptions{
		Query:        query,
		OrderBy:      "update",
		Limit:        catalogPageSize,
		Offset:       (page - 1) * catalogPageSize,
		ChapterLimit: 1,
	}

	series, err := h.repo.List(options)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to search series"})
	}

	total, err := h.repo.Count(options)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to count search results"})
	}

	return c.JSON(fiber.Map{
		"items":      series,
		"query":      query,
		"total":      total,
		"page":       page,
		"totalPages": (total + catalogPageSize - 1) / catalogPageSize,
	})
}

func (h *CatalogHandler) Genre(c *fiber.Ctx) error {
	slug := strings.TrimSpace(c.Params("slug"))
	if slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid genre slug"})
	}

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	options := repository.SeriesListOptions{
		Genres:       []string{slug},
		OrderBy:      "update",
		Limit:        catalogPageSize,
		Offset:       (page - 1) * catalogPageSize,
		ChapterLimit: 1,
	}

	series, err := h.repo.List(options)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to list genre"})
	}

	total, err := h.repo.Count(options)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to count genre"})
	}

	return c.JSON(fiber.Map{
		"genre":      searchutil.GenreDisplayName(slug),
		"items":      series,
		"total":      total,
		"page":       page,
		"totalPages": (total + catalogPageSize - 1) / catalogPageSize,
	})
}

type bookmarksRequest struct {
	Slugs []string `json:"slugs"`
}

// Bookmarks resolves the slugs a reader keeps client-side into full records.
func (h *CatalogHandler) Bookmarks(c *fiber.Ctx) error {
	var req bookmarksRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid json body"})
	}

	slugs := make([]string, 0, len(req.Slugs))
	for _, slug := range req.Slugs {
		if trimmed := strings.TrimSpace(slug); trimmed != "" {
			slugs = append(slugs, trimmed)
		}
	}

	series, err := h.repo.FindBySlugs(slugs)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to load bookmarks"})
	}

	for index := range series {
		series[index].Chapters = nil
	}

	return c.JSON(fiber.Map{"items": series})
}

func parseGenres(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	genres := make([]string, 0, len(parts))
	for _, part := range parts {
		if genre := strings.TrimSpace(part); genre != "" {
			genres = append(genres, genre)
		}
	}
	return genres
}
