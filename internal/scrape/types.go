package scrape

import "github.com/PuerkitoBio/goquery"

// SeriesDetail is the structured record extracted from a series page.
type SeriesDetail struct {
	Title       string
	NativeTitle string
	CoverImage  string
	Type        string
	Rating      float64
	Author      string
	Status      string
	Synopsis    string
	Genres      []string
	Chapters    []ChapterItem
}

// ChapterItem is one entry of the extracted chapter list, newest first as
// listed by the source site.
type ChapterItem struct {
	Title       string
	Slug        string
	URL         string
	ReleaseDate string
}

// ChapterContent is the structured record extracted from a single chapter
// page. Images are in document order, which is reading order.
type ChapterContent struct {
	Title    string
	Images   []string
	PrevSlug string
	NextSlug string
}

type SeriesExtractor interface {
	ExtractSeries(doc *goquery.Document, sourceURL string) (*SeriesDetail, error)
}

type ChapterExtractor interface {
	ExtractChapter(doc *goquery.Document, sourceURL string) (*ChapterContent, error)
}

// Layout binds both extraction modes for one source site layout. Alternate
// layouts are added as new implementations without touching reconciliation
// or orchestration.
type Layout interface {
	Key() string
	Name() string
	SeriesExtractor
	ChapterExtractor
}
