package repository_test

import (
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/lelipitri23-dev/Komikcast/internal/database"
	"github.com/lelipitri23-dev/Komikcast/internal/models"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := database.Open(dbPath)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsPath := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := database.ApplyMigrations(db, migrationsPath); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}

	return db
}

func seriesFixture(slug string, sourceURL string) repository.SeriesUpsert {
	return repository.SeriesUpsert{
		Slug:      slug,
		SourceURL: sourceURL,
		Title:     "Title " + slug,
		Type:      "Manga",
		Rating:    7.5,
		Author:    "Unknown",
		Status:    "Ongoing",
		Genres:    []string{"Action"},
		Chapters: []models.ChapterRef{
			{Title: "Chapter 2", Slug: slug + "-chapter-2", URL: "https://src/chapter/" + slug + "-chapter-2"},
			{Title: "Chapter 1", Slug: slug + "-chapter-1", URL: "https://src/chapter/" + slug + "-chapter-1"},
		},
		LastUpdated: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}
