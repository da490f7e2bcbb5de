package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lelipitri23-dev/Komikcast/internal/models"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSeries(scanner rowScanner) (*models.Series, error) {
	var series models.Series
	var sourceURL sql.NullString
	var genresRaw string
	var chaptersRaw string

	err := scanner.Scan(
		&series.ID,
		&series.Slug,
		&sourceURL,
		&series.Title,
		&series.NativeTitle,
		&series.CoverImage,
		&series.Type,
		&series.Rating,
		&series.Author,
		&series.Status,
		&series.Synopsis,
		&genresRaw,
		&chaptersRaw,
		&series.LastUpdated,
		&series.CreatedAt,
		&series.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if sourceURL.Valid {
		series.SourceURL = sourceURL.String
	}

	series.Genres = decodeStringListJSON(genresRaw)
	series.Chapters = decodeChapterRefsJSON(chaptersRaw)

	return &series, nil
}

func collectSeries(rows *sql.Rows) ([]models.Series, error) {
	series := make([]models.Series, 0)
	for rows.Next() {
		record, err := scanSeries(rows)
		if err != nil {
			return nil, fmt.Errorf("scan series row: %w", err)
		}
		series = append(series, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate series rows: %w", err)
	}

	return series, nil
}

func decodeStringListJSON(raw string) []string {
	values := make([]string, 0)
	if raw == "" {
		return values
	}
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{}
	}
	return values
}

func decodeChapterRefsJSON(raw string) []models.ChapterRef {
	refs := make([]models.ChapterRef, 0)
	if raw == "" {
		return refs
	}
	if err := json.Unmarshal([]byte(raw), &refs); err != nil {
		return []models.ChapterRef{}
	}
	return refs
}
