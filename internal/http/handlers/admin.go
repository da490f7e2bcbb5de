package handlers

import (
	"crypto/subtle"
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/lelipitri23-dev/Komikcast/internal/ingest"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
)

type loginRequest struct {
	Password string `json:"password"`
}

type addMangaRequest struct {
	URLs string `json:"urls"`
}

type AdminHandler struct {
	password string
	sessions *session.Store
	repo     *repository.SeriesRepository
	batch    *ingest.BatchRunner
}

func NewAdminHandler(db *sql.DB, password string, sessions *session.Store, batch *ingest.BatchRunner) *AdminHandler {
	return &AdminHandler{
		password: password,
		sessions: sessions,
		repo:     repository.NewSeriesRepository(db),
		batch:    batch,
	}
}

func (h *AdminHandler) Login(c *fiber.Ctx) error {
	if h.password == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "admin access is not configured"})
	}

	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid json body"})
	}

	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.password)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid password"})
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to open session"})
	}
	sess.Set("admin", true)
	if err := sess.Save(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to save session"})
	}

	return c.JSON(fiber.Map{"message": "logged in"})
}

func (h *AdminHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to open session"})
	}
	if err := sess.Destroy(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to end session"})
	}

	return c.JSON(fiber.Map{"message": "logged out"})
}

// RequireAdmin guards the admin routes behind the session flag set by Login.
func (h *AdminHandler) RequireAdmin(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to open session"})
	}

	if admin, ok := sess.Get("admin").(bool); !ok || !admin {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "admin login required"})
	}

	return c.Next()
}

func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	total, err := h.repo.Count(repository.SeriesListOptions{})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to count series"})
	}

	recent, err := h.repo.List(repository.SeriesListOptions{
		OrderBy:      "update",
		Limit:        50,
		ChapterLimit: 1,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "failed to list series"})
	}

	return c.JSON(fiber.Map{
		"total": total,
		"items": recent,
	})
}

// AddManga ingests a textarea-style list of source URLs one at a time. The
// request blocks until the whole batch is processed; failures are counted,
// not surfaced individually.
func (h *AdminHandler) AddManga(c *fiber.Ctx) error {
	var req addMangaRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid json body"})
	}

	urls := ingest.SplitURLList(req.URLs)
	if len(urls) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "no urls provided"})
	}

	result := h.batch.Run(c.Context(), urls)
	return c.JSON(result)
}
