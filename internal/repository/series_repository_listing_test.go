package repository_test

import (
	"testing"
	"time"

	"github.com/lelipitri23-dev/Komikcast/internal/repository"
)

func seedCatalog(t *testing.T, repo *repository.SeriesRepository) {
	t.Helper()

	entries := []struct {
		slug    string
		title   string
		typ     string
		status  string
		rating  float64
		genres  []string
		updated time.Time
	}{
		{"solo-leveling", "Solo Leveling", "Manhwa", "Completed", 9.1, []string{"Action", "Fantasy"}, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
		{"one-piece", "One Piece", "Manga", "Ongoing", 9.5, []string{"Action", "Adventure"}, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)},
		{"martial-peak", "Martial Peak", "Manhua", "Ongoing", 7.2, []string{"Martial Arts"}, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"spy-x-family", "Spy x Family 100%", "Manga", "Ongoing", 8.8, []string{"Comedy"}, time.Date(2025, 5, 30, 0, 0, 0, 0, time.UTC)},
	}

	for _, entry := range entries {
		fixture := seriesFixture(entry.slug, "https://src/komik/"+entry.slug)
		fixture.Title = entry.title
		fixture.Type = entry.typ
		fixture.Status = entry.status
		fixture.Rating = entry.rating
		fixture.Genres = entry.genres
		fixture.LastUpdated = entry.updated
		if _, err := repo.Upsert(fixture); err != nil {
			t.Fatalf("seed %s: %v", entry.slug, err)
		}
	}
}

func TestSeriesListDefaultRecencyOrder(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewSeriesRepository(db)
	seedCatalog(t, repo)

	series, err := repo.List(repository.SeriesListOptions{OrderBy: "update", ChapterLimit: -1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	if len(series) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(series))
	}
	if series[0].Slug != "solo-leveling" || series[3].Slug != "spy-x-family" {
		t.Fatalf("unexpected order %s..%s", series[0].Slug, series[3].Slug)
	}
	if len(series[0].Chapters) != 2 {
		t.Fatalf("expected full chapter list with ChapterLimit -1, got %d", len(series[0].Chapters))
	}
}

func TestSeriesListOrderVariants(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewSeriesRepository(db)
	seedCatalog(t, repo)

	byPopular, err := repo.List(repository.SeriesListOptions{OrderBy: "popular", ChapterLimit: 0})
	if err != nil {
		t.Fatalf("list popular: %v", err)
	}
	if byPopular[0].Slug != "one-piece" {
		t.Fatalf("expected highest rating first, got %q", byPopular[0].Slug)
	}
	if len(byPopular[0].Chapters) != 0 {
		t.Fatalf("expected chapters dropped with ChapterLimit 0, got %d", len(byPopular[0].Chapters))
	}

	byTitle, err := repo.List(repository.SeriesListOptions{OrderBy: "titleasc", ChapterLimit: 0})
	if err != nil {
		t.Fatalf("list titleasc: %v", err)
	}
	if byTitle[0].Slug != "martial-peak" {
		t.Fatalf("expected alphabetical first, got %q", byTitle[0].Slug)
	}

	unknownOrder, err := repo.List(repository.SeriesListOptions{OrderBy: "bogus", ChapterLimit: 0})
	if err != nil {
		t.Fatalf("list with unknown order: %v", err)
	}
	if unknownOrder[0].Slug != "solo-leveling" {
		t.Fatalf("expected fallback to recency order, got %q", unknownOrder[0].Slug)
	}
}

func TestSeriesListTitleSearchEscapesWildcards(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewSeriesRepository(db)
	seedCatalog(t, repo)

	series, err := repo.List(repository.SeriesListOptions{Query: "spy", ChapterLimit: 0})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(series) != 1 || series[0].Slug != "spy-x-family" {
		t.Fatalf("unexpected search result %v", series)
	}

	// a literal % must not behave as a wildcard
	series, err = repo.List(repository.SeriesListOptions{Query: "100%", ChapterLimit: 0})
	if err != nil {
		t.Fatalf("search literal percent: %v", err)
	}
	if len(series) != 1 || series[0].Slug != "spy-x-family" {
		t.Fatalf("expected literal match only, got %v", series)
	}

	series, err = repo.List(repository.SeriesListOptions{Query: "%", ChapterLimit: 0})
	if err != nil {
		t.Fatalf("search bare percent: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("expected bare %% to match only the title containing it, got %d", len(series))
	}
}

func TestSeriesListStatusAndTypeFilters(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewSeriesRepository(db)
	seedCatalog(t, repo)

	completed, err := repo.List(repository.SeriesListOptions{Status: "Completed", ChapterLimit: 0})
	if err != nil {
		t.Fatalf("filter status: %v", err)
	}
	if len(completed) != 1 || completed[0].Slug != "solo-leveling" {
		t.Fatalf("unexpected status filter result %v", completed)
	}

	manga, err := repo.List(repository.SeriesListOptions{Type: "Manga", ChapterLimit: 0})
	if err != nil {
		t.Fatalf("filter type: %v", err)
	}
	if len(manga) != 2 {
		t.Fatalf("expected 2 manga, got %d", len(manga))
	}

	all, err := repo.List(repository.SeriesListOptions{Status: "all", Type: "all", ChapterLimit: 0})
	if err != nil {
		t.Fatalf("filter all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected all rows for 'all' filters, got %d", len(all))
	}
}

func TestSeriesListGenreFilterIsHyphenTolerant(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewSeriesRepository(db)
	seedCatalog(t, repo)

	series, err := repo.List(repository.SeriesListOptions{Genres: []string{"martial-arts"}, ChapterLimit: 0})
	if err != nil {
		t.Fatalf("filter genre: %v", err)
	}
	if len(series) != 1 || series[0].Slug != "martial-peak" {
		t.Fatalf("expected hyphenated slug to match stored genre, got %v", series)
	}

	series, err = repo.List(repository.SeriesListOptions{Genres: []string{"action", "comedy"}, ChapterLimit: 0})
	if err != nil {
		t.Fatalf("filter genres any-match: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("expected any-match across genres, got %d", len(series))
	}
}

func TestSeriesListPaginationAndCount(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewSeriesRepository(db)
	seedCatalog(t, repo)

	options := repository.SeriesListOptions{OrderBy: "update", Limit: 2, ChapterLimit: 0}
	pageOne, err := repo.List(options)
	if err != nil {
		t.Fatalf("page one: %v", err)
	}
	if len(pageOne) != 2 || pageOne[0].Slug != "solo-leveling" {
		t.Fatalf("unexpected page one %v", pageOne)
	}

	options.Offset = 2
	pageTwo, err := repo.List(options)
	if err != nil {
		t.Fatalf("page two: %v", err)
	}
	if len(pageTwo) != 2 || pageTwo[0].Slug != "martial-peak" {
		t.Fatalf("unexpected page two %v", pageTwo)
	}

	total, err := repo.Count(repository.SeriesListOptions{})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 4 {
		t.Fatalf("expected total 4, got %d", total)
	}

	filteredTotal, err := repo.Count(repository.SeriesListOptions{Type: "Manga"})
	if err != nil {
		t.Fatalf("filtered count: %v", err)
	}
	if filteredTotal != 2 {
		t.Fatalf("expected filtered total 2, got %d", filteredTotal)
	}
}
