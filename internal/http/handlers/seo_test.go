package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/lelipitri23-dev/Komikcast/internal/config"
)

func fetchBody(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()

	res, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	if err != nil {
		t.Fatalf("request %s: %v", path, err)
	}
	content, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return res.StatusCode, string(content)
}

func TestRobotsTxt(t *testing.T) {
	_, app := setupTestApp(t, config.Config{PublicBaseURL: "https://mirror.example"}, nil)

	status, body := fetchBody(t, app, "/robots.txt")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}

	for _, expected := range []string{
		"User-agent: *",
		"Disallow: /admin/",
		"Disallow: /api/",
		"Disallow: /baca/",
		"Disallow: /search",
		"Disallow: /genres/",
		"Sitemap: https://mirror.example/sitemap_index.xml",
	} {
		if !strings.Contains(body, expected) {
			t.Fatalf("robots.txt missing %q:\n%s", expected, body)
		}
	}
}

func TestSitemapIndexListsChildSitemaps(t *testing.T) {
	db, app := setupTestApp(t, config.Config{PublicBaseURL: "https://mirror.example"}, nil)
	seedSeries(t, db, testSeries("solo-leveling"))

	status, body := fetchBody(t, app, "/sitemap_index.xml")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, "https://mirror.example/page-sitemap.xml") {
		t.Fatalf("missing page sitemap entry:\n%s", body)
	}
	if !strings.Contains(body, "https://mirror.example/komik-sitemap.xml") {
		t.Fatalf("missing series sitemap entry:\n%s", body)
	}
	if strings.Contains(body, "komik-sitemap-2.xml") {
		t.Fatalf("did not expect a second sitemap page for 1 series:\n%s", body)
	}
}

func TestPageSitemapListsStaticPages(t *testing.T) {
	_, app := setupTestApp(t, config.Config{PublicBaseURL: "https://mirror.example"}, nil)

	status, body := fetchBody(t, app, "/page-sitemap.xml")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	for _, expected := range []string{
		"<loc>https://mirror.example/</loc>",
		"<loc>https://mirror.example/popular</loc>",
		"<loc>https://mirror.example/project</loc>",
	} {
		if !strings.Contains(body, expected) {
			t.Fatalf("page sitemap missing %q:\n%s", expected, body)
		}
	}
}

func TestKomikSitemapListsSeriesWithCoverImages(t *testing.T) {
	db, app := setupTestApp(t, config.Config{PublicBaseURL: "https://mirror.example"}, nil)

	withCover := testSeries("with-cover")
	withCover.CoverImage = "https://cdn.example/cover.jpg"
	seedSeries(t, db, withCover)

	withoutCover := testSeries("without-cover")
	seedSeries(t, db, withoutCover)

	status, body := fetchBody(t, app, "/komik-sitemap.xml")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, "<loc>https://mirror.example/komik/with-cover</loc>") {
		t.Fatalf("missing series entry:\n%s", body)
	}
	if !strings.Contains(body, "<image:loc>https://cdn.example/cover.jpg</image:loc>") {
		t.Fatalf("missing image tag for absolute cover:\n%s", body)
	}
	if strings.Count(body, "<image:image>") != 1 {
		t.Fatalf("expected image tag only for the covered series:\n%s", body)
	}
}

func TestKomikSitemapMissingPageIs404(t *testing.T) {
	db, app := setupTestApp(t, config.Config{}, nil)
	seedSeries(t, db, testSeries("only-one"))

	status, _ := fetchBody(t, app, "/komik-sitemap-2.xml")
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for empty continuation page, got %d", status)
	}
}
