package repository

import (
	"database/sql"
	"fmt"
)

// RefreshTarget is one series the periodic refresh re-ingests. TopChapterURL
// is the URL of the first-listed stored chapter, used to detect whether the
// refresh produced a new chapter.
type RefreshTarget struct {
	ID            int64
	Slug          string
	Title         string
	SourceURL     string
	TopChapterURL string
}

// ListForRefresh returns every series with a recorded source URL, oldest
// freshness first so stale entries are revisited before recently bumped ones.
func (r *SeriesRepository) ListForRefresh() ([]RefreshTarget, error) {
	rows, err := r.db.Query(`
		SELECT id, slug, title, source_url, chapters
		FROM series
		WHERE source_url IS NOT NULL AND source_url != ''
		ORDER BY last_updated ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list series for refresh: %w", err)
	}
	defer rows.Close()

	targets := make([]RefreshTarget, 0)
	for rows.Next() {
		var target RefreshTarget
		var sourceURL sql.NullString
		var chaptersRaw string

		if err := rows.Scan(&target.ID, &target.Slug, &target.Title, &sourceURL, &chaptersRaw); err != nil {
			return nil, fmt.Errorf("scan refresh target: %w", err)
		}
		if sourceURL.Valid {
			target.SourceURL = sourceURL.String
		}
		if refs := decodeChapterRefsJSON(chaptersRaw); len(refs) > 0 {
			target.TopChapterURL = refs[0].URL
		}

		targets = append(targets, target)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate refresh targets: %w", err)
	}

	return targets, nil
}
