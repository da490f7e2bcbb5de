package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lelipitri23-dev/Komikcast/internal/models"
)

type ChapterRepository struct {
	db *sql.DB
}

func NewChapterRepository(db *sql.DB) *ChapterRepository {
	return &ChapterRepository{db: db}
}

// ChapterUpsert is keyed by the (mangaSlug, chapterSlug) composite; the row is
// created on first read request and refreshed in place afterwards.
type ChapterUpsert struct {
	MangaSlug   string
	ChapterSlug string
	Title       string
	Images      []string
	PrevSlug    *string
	NextSlug    *string
	LastScraped time.Time
}

const chapterColumns = `
	id, manga_slug, chapter_slug, title, images, prev_slug, next_slug, last_scraped, created_at
`

func (r *ChapterRepository) Find(mangaSlug string, chapterSlug string) (*models.Chapter, error) {
	row := r.db.QueryRow(
		`SELECT `+chapterColumns+` FROM chapters WHERE manga_slug = ? AND chapter_slug = ?`,
		mangaSlug, chapterSlug,
	)

	chapter, err := scanChapter(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find chapter: %w", err)
	}
	return chapter, nil
}

func (r *ChapterRepository) Upsert(upsert ChapterUpsert) (*models.Chapter, error) {
	imagesJSON, err := json.Marshal(orEmptyStrings(upsert.Images))
	if err != nil {
		return nil, fmt.Errorf("marshal images for %s/%s: %w", upsert.MangaSlug, upsert.ChapterSlug, err)
	}

	_, err = r.db.Exec(`
		INSERT INTO chapters (manga_slug, chapter_slug, title, images, prev_slug, next_slug, last_scraped)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(manga_slug, chapter_slug) DO UPDATE SET
			title = excluded.title,
			images = excluded.images,
			prev_slug = excluded.prev_slug,
			next_slug = excluded.next_slug,
			last_scraped = excluded.last_scraped
	`, upsert.MangaSlug, upsert.ChapterSlug, upsert.Title, string(imagesJSON),
		upsert.PrevSlug, upsert.NextSlug, upsert.LastScraped.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("upsert chapter %s/%s: %w", upsert.MangaSlug, upsert.ChapterSlug, ErrConflict)
		}
		return nil, fmt.Errorf("upsert chapter %s/%s: %w", upsert.MangaSlug, upsert.ChapterSlug, err)
	}

	return r.Find(upsert.MangaSlug, upsert.ChapterSlug)
}

// ListByManga returns the stored chapter rows for one series, most recently
// scraped first. Used by the prune command, not by the reader path.
func (r *ChapterRepository) ListByManga(mangaSlug string) ([]models.Chapter, error) {
	rows, err := r.db.Query(
		`SELECT `+chapterColumns+` FROM chapters WHERE manga_slug = ? ORDER BY last_scraped DESC, id DESC`,
		mangaSlug,
	)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	chapters := make([]models.Chapter, 0)
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chapter row: %w", err)
		}
		chapters = append(chapters, *chapter)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate chapter rows: %w", err)
	}

	return chapters, nil
}

// Delete removes stored chapter content out-of-band so the next read request
// re-scrapes it. Returns the number of rows removed.
func (r *ChapterRepository) Delete(mangaSlug string, chapterSlug string) (int64, error) {
	result, err := r.db.Exec(
		`DELETE FROM chapters WHERE manga_slug = ? AND chapter_slug = ?`,
		mangaSlug, chapterSlug,
	)
	if err != nil {
		return 0, fmt.Errorf("delete chapter: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted chapters: %w", err)
	}
	return affected, nil
}

func (r *ChapterRepository) DeleteByManga(mangaSlug string) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM chapters WHERE manga_slug = ?`, mangaSlug)
	if err != nil {
		return 0, fmt.Errorf("delete chapters for %s: %w", mangaSlug, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted chapters: %w", err)
	}
	return affected, nil
}

func scanChapter(scanner rowScanner) (*models.Chapter, error) {
	var chapter models.Chapter
	var imagesRaw string
	var prevSlug sql.NullString
	var nextSlug sql.NullString

	err := scanner.Scan(
		&chapter.ID,
		&chapter.MangaSlug,
		&chapter.ChapterSlug,
		&chapter.Title,
		&imagesRaw,
		&prevSlug,
		&nextSlug,
		&chapter.LastScraped,
		&chapter.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if prevSlug.Valid {
		chapter.PrevSlug = &prevSlug.String
	}
	if nextSlug.Valid {
		chapter.NextSlug = &nextSlug.String
	}
	chapter.Images = decodeStringListJSON(imagesRaw)

	return &chapter, nil
}
