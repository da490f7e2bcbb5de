package repository

import (
	"fmt"
	"strings"

	"github.com/lelipitri23-dev/Komikcast/internal/models"
	"github.com/lelipitri23-dev/Komikcast/internal/searchutil"
)

// SeriesListOptions mirrors the catalog listing surface: title substring
// search, status/type filters, any-match genre filter, the original sort
// modes, and page-based limits. ChapterLimit truncates each row's chapter
// summary list after scanning (-1 keeps all, 0 drops them).
type SeriesListOptions struct {
	Query        string
	Status       string
	Type         string
	Genres       []string
	OrderBy      string
	Limit        int
	Offset       int
	ChapterLimit int
}

func (r *SeriesRepository) List(options SeriesListOptions) ([]models.Series, error) {
	validOrders := map[string]string{
		"update":    "last_updated DESC",
		"titleasc":  "title COLLATE NOCASE ASC",
		"titledesc": "title COLLATE NOCASE DESC",
		"popular":   "rating DESC",
	}
	orderClause, ok := validOrders[options.OrderBy]
	if !ok {
		orderClause = validOrders["update"]
	}

	query := `SELECT ` + seriesColumns + ` FROM series`

	whereClauses, args := buildSeriesListFilters(options)
	if len(whereClauses) > 0 {
		query += ` WHERE ` + joinClauses(whereClauses)
	}

	query += ` ORDER BY ` + orderClause + `, id DESC`

	if options.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, options.Limit)
		if options.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, options.Offset)
		}
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list series: %w", err)
	}
	defer rows.Close()

	series, err := collectSeries(rows)
	if err != nil {
		return nil, err
	}

	if options.ChapterLimit >= 0 {
		for index := range series {
			series[index].Chapters = truncateRefs(series[index].Chapters, options.ChapterLimit)
		}
	}

	return series, nil
}

func buildSeriesListFilters(options SeriesListOptions) ([]string, []any) {
	whereClauses := make([]string, 0, 4)
	args := make([]any, 0, 8)

	if query := strings.TrimSpace(options.Query); query != "" {
		whereClauses = append(whereClauses, `title LIKE ? ESCAPE '\' COLLATE NOCASE`)
		args = append(args, "%"+searchutil.EscapeLike(query)+"%")
	}

	if status := strings.TrimSpace(options.Status); status != "" && status != "all" {
		whereClauses = append(whereClauses, `status LIKE ? ESCAPE '\' COLLATE NOCASE`)
		args = append(args, "%"+searchutil.EscapeLike(status)+"%")
	}

	if seriesType := strings.TrimSpace(options.Type); seriesType != "" && seriesType != "all" {
		whereClauses = append(whereClauses, `type LIKE ? ESCAPE '\' COLLATE NOCASE`)
		args = append(args, "%"+searchutil.EscapeLike(seriesType)+"%")
	}

	if len(options.Genres) > 0 {
		genreClauses := make([]string, 0, len(options.Genres))
		for _, genre := range options.Genres {
			normalized := searchutil.NormalizeGenre(genre)
			if normalized == "" {
				continue
			}
			genreClauses = append(genreClauses, `EXISTS (
				SELECT 1 FROM json_each(series.genres)
				WHERE lower(replace(json_each.value, '-', ' ')) = ?
			)`)
			args = append(args, normalized)
		}
		if len(genreClauses) > 0 {
			whereClauses = append(whereClauses, `(`+strings.Join(genreClauses, " OR ")+`)`)
		}
	}

	return whereClauses, args
}

func joinClauses(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

func truncateRefs(refs []models.ChapterRef, limit int) []models.ChapterRef {
	if limit <= 0 {
		return []models.ChapterRef{}
	}
	if len(refs) <= limit {
		return refs
	}
	return refs[:limit]
}
