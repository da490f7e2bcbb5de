package handlers

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
)

// sitemapLimit caps the URLs per sitemap file, after which the index links
// numbered continuation files.
const sitemapLimit = 1000

type SeoHandler struct {
	repo    *repository.SeriesRepository
	baseURL string
}

// NewSeoHandler builds the crawler-facing routes. baseURL overrides the
// request host when the service sits behind a proxy; empty falls back to the
// request's own base URL.
func NewSeoHandler(db *sql.DB, baseURL string) *SeoHandler {
	return &SeoHandler{
		repo:    repository.NewSeriesRepository(db),
		baseURL: strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
	}
}

func (h *SeoHandler) resolveBase(c *fiber.Ctx) string {
	if h.baseURL != "" {
		return h.baseURL
	}
	return c.BaseURL()
}

func (h *SeoHandler) Robots(c *fiber.Ctx) error {
	base := h.resolveBase(c)
	c.Type("txt")
	return c.SendString(`User-agent: *
Allow: /
Disallow: /admin/
Disallow: /api/
Disallow: /baca/
Disallow: /search
Disallow: /genres/
Sitemap: ` + base + `/sitemap_index.xml`)
}

func (h *SeoHandler) SitemapIndex(c *fiber.Ctx) error {
	base := h.resolveBase(c)

	total, err := h.repo.Count(repository.SeriesListOptions{})
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	pages := (total + sitemapLimit - 1) / sitemapLimit
	if pages < 1 {
		pages = 1
	}

	now := time.Now().UTC().Format(time.RFC3339)

	var xml strings.Builder
	xml.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
<sitemap>
<loc>` + base + `/page-sitemap.xml</loc>
<lastmod>` + now + `</lastmod>
</sitemap>`)

	for page := 1; page <= pages; page++ {
		suffix := ""
		if page > 1 {
			suffix = "-" + strconv.Itoa(page)
		}
		xml.WriteString(`
<sitemap>
<loc>` + base + `/komik-sitemap` + suffix + `.xml</loc>
<lastmod>` + now + `</lastmod>
</sitemap>`)
	}
	xml.WriteString(`
</sitemapindex>`)

	c.Type("xml")
	return c.SendString(xml.String())
}

func (h *SeoHandler) PageSitemap(c *fiber.Ctx) error {
	base := h.resolveBase(c)
	now := time.Now().UTC().Format(time.RFC3339)

	staticPages := []struct {
		path     string
		priority string
	}{
		{"/", "1.0"},
		{"/v1/catalog", "0.8"},
		{"/popular", "0.8"},
		{"/project", "0.8"},
	}

	var xml strings.Builder
	xml.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	for _, page := range staticPages {
		xml.WriteString(`
<url>
<loc>` + base + page.path + `</loc>
<lastmod>` + now + `</lastmod>
<changefreq>daily</changefreq>
<priority>` + page.priority + `</priority>
</url>`)
	}
	xml.WriteString(`
</urlset>`)

	c.Type("xml")
	return c.SendString(xml.String())
}

// KomikSitemap serves one page of the per-series sitemap. The first file has
// no numeric suffix; continuation files count from 2.
func (h *SeoHandler) KomikSitemap(c *fiber.Ctx) error {
	page := 1
	if raw := c.Params("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.SendStatus(fiber.StatusNotFound)
		}
		page = parsed
	}

	series, err := h.repo.List(repository.SeriesListOptions{
		OrderBy:      "update",
		Limit:        sitemapLimit,
		Offset:       (page - 1) * sitemapLimit,
		ChapterLimit: 0,
	})
	if err != nil {
		return c.SendStatus(fiber.StatusInternalServerError)
	}
	if len(series) == 0 && page > 1 {
		return c.Status(fiber.StatusNotFound).SendString("Sitemap not found")
	}

	base := h.resolveBase(c)
	now := time.Now().UTC().Format(time.RFC3339)

	var xml strings.Builder
	xml.WriteString(`<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"
xmlns:image="http://www.google.com/schemas/sitemap-image/1.1">`)

	for _, item := range series {
		lastmod := now
		if !item.LastUpdated.IsZero() {
			lastmod = item.LastUpdated.UTC().Format(time.RFC3339)
		}

		imageXML := ""
		if strings.HasPrefix(item.CoverImage, "http") {
			imageXML = fmt.Sprintf(`
<image:image>
<image:loc>%s</image:loc>
</image:image>`, item.CoverImage)
		}

		xml.WriteString(`
<url>
<loc>` + base + `/komik/` + item.Slug + `</loc>
<lastmod>` + lastmod + `</lastmod>
<changefreq>daily</changefreq>
<priority>0.6</priority>` + imageXML + `
</url>`)
	}
	xml.WriteString(`
</urlset>`)

	c.Type("xml")
	return c.SendString(xml.String())
}
