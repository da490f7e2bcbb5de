package layout

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/lelipitri23-dev/Komikcast/internal/scrape"
)

var whitespacePattern = regexp.MustCompile(`\s+`)

// Extractor implements both extraction modes for one configured layout.
type Extractor struct {
	config Config
}

func NewExtractor(cfg Config) (*Extractor, error) {
	if err := cfg.normalizeAndValidate(); err != nil {
		return nil, err
	}
	return &Extractor{config: cfg}, nil
}

// Default returns the extractor for the built-in Komikcast layout.
func Default() *Extractor {
	extractor, err := NewExtractor(Config{Key: "komikcast", Name: "Komikcast"})
	if err != nil {
		// the built-in config always validates
		panic(err)
	}
	return extractor
}

func (e *Extractor) Key() string {
	return e.config.Key
}

func (e *Extractor) Name() string {
	return e.config.Name
}

// ExtractSeries pulls series metadata and the chapter summary list out of a
// series page. Missing optional fields are filled with defaults rather than
// failing; partial metadata is still useful.
func (e *Extractor) ExtractSeries(doc *goquery.Document, sourceURL string) (*scrape.SeriesDetail, error) {
	cfg := e.config

	detail := &scrape.SeriesDetail{
		Title:       strings.TrimSpace(doc.Find(cfg.Series.Title).Text()),
		NativeTitle: strings.TrimSpace(doc.Find(cfg.Series.NativeTitle).Text()),
		Type:        cfg.Series.DefaultType,
		Author:      "Unknown",
		Status:      "Unknown",
		Synopsis:    cfg.Series.SynopsisEmpty,
		Genres:      make([]string, 0, 8),
		Chapters:    make([]scrape.ChapterItem, 0, 32),
	}

	detail.CoverImage = e.extractCover(doc, sourceURL)

	if raw, ok := doc.Find(cfg.Series.Rating).Attr(cfg.Series.RatingAttr); ok {
		if rating, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			detail.Rating = rating
		}
	}

	if seriesType := strings.TrimSpace(doc.Find(cfg.Series.Type).Text()); seriesType != "" {
		detail.Type = seriesType
	}

	doc.Find(cfg.Series.InfoLines).Each(func(_ int, line *goquery.Selection) {
		text := line.Text()
		if strings.Contains(text, cfg.Series.StatusLabel) {
			detail.Status = strings.TrimSpace(strings.Replace(text, cfg.Series.StatusLabel, "", 1))
		}
		if strings.Contains(text, cfg.Series.AuthorLabel) {
			detail.Author = strings.TrimSpace(strings.Replace(text, cfg.Series.AuthorLabel, "", 1))
		}
	})

	if html, err := doc.Find(cfg.Series.Synopsis).Html(); err == nil && strings.TrimSpace(html) != "" {
		detail.Synopsis = html
	}

	doc.Find(cfg.Series.Genres).Each(func(_ int, genre *goquery.Selection) {
		if name := strings.TrimSpace(genre.Text()); name != "" {
			detail.Genres = append(detail.Genres, name)
		}
	})

	doc.Find(cfg.Series.ChapterItems).Each(func(_ int, item *goquery.Selection) {
		link := item.Find(cfg.Series.ChapterLink).First()
		href, ok := link.Attr("href")
		href = strings.TrimSpace(href)
		slug := scrape.DeriveSlug(href)
		if !ok || href == "" || slug == "" {
			return
		}

		detail.Chapters = append(detail.Chapters, scrape.ChapterItem{
			Title:       collapseWhitespace(link.Text()),
			Slug:        slug,
			URL:         href,
			ReleaseDate: strings.TrimSpace(item.Find(cfg.Series.ChapterTime).Text()),
		})
	})

	return detail, nil
}

// ExtractChapter pulls the image list and adjacent-chapter links out of a
// chapter page. Zero located images is a hard failure for this unit of work.
func (e *Extractor) ExtractChapter(doc *goquery.Document, sourceURL string) (*scrape.ChapterContent, error) {
	cfg := e.config

	content := &scrape.ChapterContent{
		Title:  strings.TrimSpace(doc.Find(cfg.Chapter.Title).Text()),
		Images: make([]string, 0, 32),
	}
	if content.Title == "" {
		content.Title = strings.TrimSpace(doc.Find(cfg.Chapter.TitleFallback).Text())
	}
	if content.Title == "" {
		content.Title = cfg.Chapter.DefaultTitle
	}

	doc.Find(cfg.Chapter.Images).Each(func(_ int, img *goquery.Selection) {
		src := strings.TrimSpace(firstAttr(img, cfg.Chapter.ImageAttrs))
		if src == "" || isAdImage(src, cfg.Chapter.AdMarkers) {
			return
		}
		if strings.HasPrefix(src, "//") {
			src = "https:" + src
		}
		content.Images = append(content.Images, src)
	})

	if len(content.Images) == 0 {
		return nil, &scrape.ExtractError{URL: sourceURL, Reason: scrape.ExtractReasonNoImages}
	}

	if href, ok := doc.Find(cfg.Chapter.Next).Attr("href"); ok {
		content.NextSlug = scrape.DeriveSlug(href)
	}
	if href, ok := doc.Find(cfg.Chapter.Prev).Attr("href"); ok {
		content.PrevSlug = scrape.DeriveSlug(href)
	}

	return content, nil
}

// extractCover checks the cover element attributes in priority order, then
// the thumbnail fallback, and resolves relative URLs against the source
// page's origin.
func (e *Extractor) extractCover(doc *goquery.Document, sourceURL string) string {
	cfg := e.config

	cover := firstAttr(doc.Find(cfg.Series.CoverImage).First(), cfg.Series.ImageAttrs)
	if cover == "" {
		cover, _ = doc.Find(cfg.Series.CoverThumbnail).First().Attr("src")
	}

	cover = strings.TrimSpace(cover)
	if cover == "" || strings.HasPrefix(cover, "http") {
		return cover
	}
	if strings.HasPrefix(cover, "//") {
		return "https:" + cover
	}

	parsed, err := url.Parse(sourceURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return cover
	}

	origin := parsed.Scheme + "://" + parsed.Host
	if strings.HasPrefix(cover, "/") {
		return origin + cover
	}
	return origin + "/" + cover
}

func firstAttr(sel *goquery.Selection, attrs []string) string {
	for _, attr := range attrs {
		if value, ok := sel.Attr(attr); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

func isAdImage(src string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(src, marker) {
			return true
		}
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
