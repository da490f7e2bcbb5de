package http

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/lelipitri23-dev/Komikcast/internal/config"
	"github.com/lelipitri23-dev/Komikcast/internal/http/handlers"
	"github.com/lelipitri23-dev/Komikcast/internal/ingest"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
)

// defaultAdminBatchSpacingSeconds is the pause between consecutive source
// fetches when an admin submits a URL list. The source site sees at most one
// request per spacing window. Overridable through the seeded
// admin_batch_spacing_seconds setting.
const defaultAdminBatchSpacingSeconds = 2

func NewServer(cfg config.Config, db *sql.DB, svc *ingest.Service) *fiber.App {
	return NewServerWithClock(cfg, db, svc, nil)
}

// NewServerWithClock lets tests substitute the pacing clock used by the admin
// batch path.
func NewServerWithClock(cfg config.Config, db *sql.DB, svc *ingest.Service, clock ingest.Clock) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	app.Use(recover.New())

	sessions := session.New()

	spacingSeconds, err := repository.NewSettingsRepository(db).GetInt("admin_batch_spacing_seconds", defaultAdminBatchSpacingSeconds)
	if err != nil {
		spacingSeconds = defaultAdminBatchSpacingSeconds
	}
	batch := ingest.NewBatchRunner(svc, time.Duration(spacingSeconds)*time.Second, clock, nil)

	health := handlers.NewHealthHandler(db)
	catalog := handlers.NewCatalogHandler(db)
	reader := handlers.NewReaderHandler(db, svc)
	admin := handlers.NewAdminHandler(db, cfg.AdminPassword, sessions, batch)
	seo := handlers.NewSeoHandler(db, cfg.PublicBaseURL)

	app.Get("/", catalog.Home)
	app.Get("/popular", catalog.Popular)
	app.Get("/project", catalog.Project)
	app.Get("/komik/:slug", catalog.Detail)
	app.Get("/search", catalog.Search)
	app.Get("/genres/:slug", catalog.Genre)
	app.Get("/baca/:mangaSlug/:chapterSlug", reader.Read)
	app.Post("/api/bookmarks", catalog.Bookmarks)

	app.Get("/robots.txt", seo.Robots)
	app.Get("/sitemap_index.xml", seo.SitemapIndex)
	app.Get("/page-sitemap.xml", seo.PageSitemap)
	app.Get("/komik-sitemap.xml", seo.KomikSitemap)
	app.Get("/komik-sitemap-:page.xml", seo.KomikSitemap)

	app.Get("/health", health.Check)
	app.Get("/v1/health", health.Check)

	v1 := app.Group("/v1")
	v1.Get("/catalog", catalog.List)

	adminGroup := app.Group("/admin")
	adminGroup.Post("/login", admin.Login)
	adminGroup.Post("/logout", admin.Logout)
	adminGroup.Get("/", admin.RequireAdmin, admin.Dashboard)
	adminGroup.Post("/add-manga", admin.RequireAdmin, admin.AddManga)

	return app
}
