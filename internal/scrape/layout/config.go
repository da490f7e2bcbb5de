package layout

import (
	"fmt"
	"strings"
)

// Config describes the structural selectors of one source site layout.
// Zero-value fields fall back to the Komikcast layout, so a profile only
// needs to override what differs. Extraction is brittle to upstream layout
// changes; that brittleness is accepted, not mitigated.
type Config struct {
	Key     string `yaml:"key"`
	Name    string `yaml:"name"`
	Enabled *bool  `yaml:"enabled"`

	Series struct {
		Title          string   `yaml:"title"`
		NativeTitle    string   `yaml:"native_title"`
		CoverImage     string   `yaml:"cover_image"`
		CoverThumbnail string   `yaml:"cover_thumbnail"`
		Rating         string   `yaml:"rating"`
		RatingAttr     string   `yaml:"rating_attr"`
		Type           string   `yaml:"type"`
		InfoLines      string   `yaml:"info_lines"`
		StatusLabel    string   `yaml:"status_label"`
		AuthorLabel    string   `yaml:"author_label"`
		Synopsis       string   `yaml:"synopsis"`
		SynopsisEmpty  string   `yaml:"synopsis_empty"`
		Genres         string   `yaml:"genres"`
		ChapterItems   string   `yaml:"chapter_items"`
		ChapterLink    string   `yaml:"chapter_link"`
		ChapterTime    string   `yaml:"chapter_time"`
		DefaultType    string   `yaml:"default_type"`
		ImageAttrs     []string `yaml:"image_attrs"`
	} `yaml:"series"`

	Chapter struct {
		Title         string   `yaml:"title"`
		TitleFallback string   `yaml:"title_fallback"`
		DefaultTitle  string   `yaml:"default_title"`
		Images        string   `yaml:"images"`
		ImageAttrs    []string `yaml:"image_attrs"`
		AdMarkers     []string `yaml:"ad_markers"`
		Next          string   `yaml:"next"`
		Prev          string   `yaml:"prev"`
	} `yaml:"chapter"`
}

func (c *Config) isEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

func (c *Config) normalizeAndValidate() error {
	c.Key = strings.TrimSpace(c.Key)
	c.Name = strings.TrimSpace(c.Name)

	if c.Key == "" {
		return fmt.Errorf("key is required")
	}
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}

	if strings.TrimSpace(c.Series.Title) == "" {
		c.Series.Title = ".komik_info-content-body-title"
	}
	if strings.TrimSpace(c.Series.NativeTitle) == "" {
		c.Series.NativeTitle = ".komik_info-content-native"
	}
	if strings.TrimSpace(c.Series.CoverImage) == "" {
		c.Series.CoverImage = ".komik_info-cover-image img"
	}
	if strings.TrimSpace(c.Series.CoverThumbnail) == "" {
		c.Series.CoverThumbnail = ".komik_info-content-thumbnail img"
	}
	if strings.TrimSpace(c.Series.Rating) == "" {
		c.Series.Rating = ".data-rating"
	}
	if strings.TrimSpace(c.Series.RatingAttr) == "" {
		c.Series.RatingAttr = "data-ratingkomik"
	}
	if strings.TrimSpace(c.Series.Type) == "" {
		c.Series.Type = ".komik_info-content-info-type a"
	}
	if strings.TrimSpace(c.Series.InfoLines) == "" {
		c.Series.InfoLines = ".komik_info-content-info"
	}
	if strings.TrimSpace(c.Series.StatusLabel) == "" {
		c.Series.StatusLabel = "Status:"
	}
	if strings.TrimSpace(c.Series.AuthorLabel) == "" {
		c.Series.AuthorLabel = "Author:"
	}
	if strings.TrimSpace(c.Series.Synopsis) == "" {
		c.Series.Synopsis = ".komik_info-description-sinopsis"
	}
	if strings.TrimSpace(c.Series.SynopsisEmpty) == "" {
		c.Series.SynopsisEmpty = "<p>Sinopsis belum tersedia.</p>"
	}
	if strings.TrimSpace(c.Series.Genres) == "" {
		c.Series.Genres = ".komik_info-content-genre a"
	}
	if strings.TrimSpace(c.Series.ChapterItems) == "" {
		c.Series.ChapterItems = "#chapter-wrapper li.komik_info-chapters-item"
	}
	if strings.TrimSpace(c.Series.ChapterLink) == "" {
		c.Series.ChapterLink = "a.chapter-link-item"
	}
	if strings.TrimSpace(c.Series.ChapterTime) == "" {
		c.Series.ChapterTime = ".chapter-link-time"
	}
	if strings.TrimSpace(c.Series.DefaultType) == "" {
		c.Series.DefaultType = "Manga"
	}
	if len(c.Series.ImageAttrs) == 0 {
		c.Series.ImageAttrs = []string{"src", "data-src"}
	}

	if strings.TrimSpace(c.Chapter.Title) == "" {
		c.Chapter.Title = `h1[itemprop="name"]`
	}
	if strings.TrimSpace(c.Chapter.TitleFallback) == "" {
		c.Chapter.TitleFallback = ".chapter-content-title"
	}
	if strings.TrimSpace(c.Chapter.DefaultTitle) == "" {
		c.Chapter.DefaultTitle = "Chapter Unknown"
	}
	if strings.TrimSpace(c.Chapter.Images) == "" {
		c.Chapter.Images = ".main-reading-area img"
	}
	if len(c.Chapter.ImageAttrs) == 0 {
		c.Chapter.ImageAttrs = []string{"data-src", "src", "data-lazy-src"}
	}
	if len(c.Chapter.AdMarkers) == 0 {
		c.Chapter.AdMarkers = []string{"iklan", "ads", "histats"}
	}
	if strings.TrimSpace(c.Chapter.Next) == "" {
		c.Chapter.Next = `.nextprev a[rel="next"]`
	}
	if strings.TrimSpace(c.Chapter.Prev) == "" {
		c.Chapter.Prev = `.nextprev a[rel="prev"]`
	}

	return nil
}
