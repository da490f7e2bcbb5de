package handlers_test

import (
	"database/sql"
	"net/http"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lelipitri23-dev/Komikcast/internal/config"
	"github.com/lelipitri23-dev/Komikcast/internal/database"
	apihttp "github.com/lelipitri23-dev/Komikcast/internal/http"
	"github.com/lelipitri23-dev/Komikcast/internal/ingest"
	"github.com/lelipitri23-dev/Komikcast/internal/models"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape/layout"
)

type immediateClock struct{}

func (immediateClock) Now() time.Time      { return time.Now() }
func (immediateClock) Sleep(time.Duration) {}

func setupTestApp(t *testing.T, cfg config.Config, client *http.Client) (*sql.DB, *fiber.App) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsPath := filepath.Join(filepath.Dir(currentFile), "..", "..", "..", "migrations")
	if err := database.ApplyMigrations(db, migrationsPath); err != nil {
		_ = db.Close()
		t.Fatalf("apply migrations: %v", err)
	}
	if err := database.SeedDefaults(db); err != nil {
		_ = db.Close()
		t.Fatalf("seed defaults: %v", err)
	}

	if cfg.AppName == "" {
		cfg.AppName = "test-app"
	}

	svc := ingest.NewService(
		scrape.NewFetcher(client),
		layout.Default(),
		repository.NewSeriesRepository(db),
		repository.NewChapterRepository(db),
		nil,
	)

	app := apihttp.NewServerWithClock(cfg, db, svc, immediateClock{})

	t.Cleanup(func() {
		_ = app.Shutdown()
		_ = db.Close()
	})

	return db, app
}

func seedSeries(t *testing.T, db *sql.DB, upsert repository.SeriesUpsert) *models.Series {
	t.Helper()

	saved, err := repository.NewSeriesRepository(db).Upsert(upsert)
	if err != nil {
		t.Fatalf("seed series %s: %v", upsert.Slug, err)
	}
	return saved
}

func testSeries(slug string) repository.SeriesUpsert {
	return repository.SeriesUpsert{
		Slug:      slug,
		SourceURL: "https://src/komik/" + slug,
		Title:     "Title " + slug,
		Type:      "Manga",
		Rating:    8,
		Author:    "Author",
		Status:    "Ongoing",
		Genres:    []string{"Action"},
		Chapters: []models.ChapterRef{
			{Title: "Chapter 3", Slug: slug + "-chapter-3", URL: "https://src/chapter/" + slug + "-chapter-3"},
			{Title: "Chapter 2", Slug: slug + "-chapter-2", URL: "https://src/chapter/" + slug + "-chapter-2"},
			{Title: "Chapter 1", Slug: slug + "-chapter-1", URL: "https://src/chapter/" + slug + "-chapter-1"},
		},
		LastUpdated: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}
