package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lelipitri23-dev/Komikcast/internal/models"
)

type SeriesRepository struct {
	db *sql.DB
}

func NewSeriesRepository(db *sql.DB) *SeriesRepository {
	return &SeriesRepository{db: db}
}

// SeriesUpsert carries the full freshly extracted record plus the identity
// resolved by reconciliation: ID > 0 updates that row, ID == 0 inserts keyed
// by slug (updating in place on slug conflict).
type SeriesUpsert struct {
	ID          int64
	Slug        string
	SourceURL   string
	Title       string
	NativeTitle string
	CoverImage  string
	Type        string
	Rating      float64
	Author      string
	Status      string
	Synopsis    string
	Genres      []string
	Chapters    []models.ChapterRef
	LastUpdated time.Time
}

const seriesColumns = `
	id, slug, source_url, title, native_title, cover_image, type, rating,
	author, status, synopsis, genres, chapters, last_updated, created_at, updated_at
`

func (r *SeriesRepository) FindBySourceURL(sourceURL string) (*models.Series, error) {
	row := r.db.QueryRow(`SELECT `+seriesColumns+` FROM series WHERE source_url = ?`, sourceURL)

	series, err := scanSeries(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find series by source url: %w", err)
	}
	return series, nil
}

func (r *SeriesRepository) FindBySlug(slug string) (*models.Series, error) {
	row := r.db.QueryRow(`SELECT `+seriesColumns+` FROM series WHERE slug = ?`, slug)

	series, err := scanSeries(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find series by slug: %w", err)
	}
	return series, nil
}

func (r *SeriesRepository) FindBySlugs(slugs []string) ([]models.Series, error) {
	if len(slugs) == 0 {
		return []models.Series{}, nil
	}

	args := make([]any, 0, len(slugs))
	for _, slug := range slugs {
		args = append(args, slug)
	}

	rows, err := r.db.Query(
		`SELECT `+seriesColumns+` FROM series WHERE slug IN (`+sqlPlaceholders(len(slugs))+`) ORDER BY last_updated DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("find series by slugs: %w", err)
	}
	defer rows.Close()

	return collectSeries(rows)
}

// Upsert writes the full record under the resolved identity. Unique-index
// violations come back wrapped in ErrConflict so the ingestion run can log
// and skip that unit of work.
func (r *SeriesRepository) Upsert(upsert SeriesUpsert) (*models.Series, error) {
	genresJSON, err := json.Marshal(orEmptyStrings(upsert.Genres))
	if err != nil {
		return nil, fmt.Errorf("marshal genres for %s: %w", upsert.Slug, err)
	}
	chaptersJSON, err := json.Marshal(orEmptyRefs(upsert.Chapters))
	if err != nil {
		return nil, fmt.Errorf("marshal chapters for %s: %w", upsert.Slug, err)
	}

	if upsert.ID > 0 {
		_, err = r.db.Exec(`
			UPDATE series
			SET
				slug = ?, source_url = ?, title = ?, native_title = ?, cover_image = ?,
				type = ?, rating = ?, author = ?, status = ?, synopsis = ?,
				genres = ?, chapters = ?, last_updated = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?
		`, upsert.Slug, nullableString(upsert.SourceURL), upsert.Title, upsert.NativeTitle, upsert.CoverImage,
			upsert.Type, upsert.Rating, upsert.Author, upsert.Status, upsert.Synopsis,
			string(genresJSON), string(chaptersJSON), upsert.LastUpdated.UTC(), upsert.ID)
	} else {
		_, err = r.db.Exec(`
			INSERT INTO series (
				slug, source_url, title, native_title, cover_image, type, rating,
				author, status, synopsis, genres, chapters, last_updated
			)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(slug) DO UPDATE SET
				source_url = excluded.source_url,
				title = excluded.title,
				native_title = excluded.native_title,
				cover_image = excluded.cover_image,
				type = excluded.type,
				rating = excluded.rating,
				author = excluded.author,
				status = excluded.status,
				synopsis = excluded.synopsis,
				genres = excluded.genres,
				chapters = excluded.chapters,
				last_updated = excluded.last_updated,
				updated_at = CURRENT_TIMESTAMP
		`, upsert.Slug, nullableString(upsert.SourceURL), upsert.Title, upsert.NativeTitle, upsert.CoverImage,
			upsert.Type, upsert.Rating, upsert.Author, upsert.Status, upsert.Synopsis,
			string(genresJSON), string(chaptersJSON), upsert.LastUpdated.UTC())
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("upsert series %s: %w", upsert.Slug, ErrConflict)
		}
		return nil, fmt.Errorf("upsert series %s: %w", upsert.Slug, err)
	}

	return r.FindBySlug(upsert.Slug)
}

func (r *SeriesRepository) Count(options SeriesListOptions) (int, error) {
	query := `SELECT COUNT(1) FROM series`
	whereClauses, args := buildSeriesListFilters(options)
	if len(whereClauses) > 0 {
		query += ` WHERE ` + joinClauses(whereClauses)
	}

	var total int
	if err := r.db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count series: %w", err)
	}
	return total, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func orEmptyStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func orEmptyRefs(values []models.ChapterRef) []models.ChapterRef {
	if values == nil {
		return []models.ChapterRef{}
	}
	return values
}
