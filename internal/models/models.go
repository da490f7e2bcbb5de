package models

import "time"

// ChapterRef is one entry of a series' chapter summary list. The full image
// content of a chapter lives in Chapter and is only fetched on first read.
type ChapterRef struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	URL         string `json:"url"`
	ReleaseDate string `json:"releaseDate,omitempty"`
}

type Series struct {
	ID          int64        `json:"id"`
	Slug        string       `json:"slug"`
	SourceURL   string       `json:"sourceUrl,omitempty"`
	Title       string       `json:"title"`
	NativeTitle string       `json:"nativeTitle,omitempty"`
	CoverImage  string       `json:"coverImage,omitempty"`
	Type        string       `json:"type"`
	Rating      float64      `json:"rating"`
	Author      string       `json:"author"`
	Status      string       `json:"status"`
	Synopsis    string       `json:"synopsis,omitempty"`
	Genres      []string     `json:"genres"`
	Chapters    []ChapterRef `json:"chapters"`
	LastUpdated time.Time    `json:"lastUpdated"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type Chapter struct {
	ID          int64     `json:"id"`
	MangaSlug   string    `json:"mangaSlug"`
	ChapterSlug string    `json:"chapterSlug"`
	Title       string    `json:"title"`
	Images      []string  `json:"images"`
	PrevSlug    *string   `json:"prevSlug,omitempty"`
	NextSlug    *string   `json:"nextSlug,omitempty"`
	LastScraped time.Time `json:"lastScraped"`
	CreatedAt   time.Time `json:"createdAt"`
}

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
