package main

import (
	"flag"
	"log/slog"
	"os"
	"strings"

	"github.com/lelipitri23-dev/Komikcast/internal/config"
	"github.com/lelipitri23-dev/Komikcast/internal/database"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
)

// prune-chapters deletes stored chapter content so the next read request
// re-scrapes it from the source. Without -chapter it targets every stored
// chapter of the series.
func main() {
	var mangaSlug string
	var chapterSlug string
	var apply bool
	flag.StringVar(&mangaSlug, "manga", "", "Series slug whose stored chapters should be pruned.")
	flag.StringVar(&chapterSlug, "chapter", "", "Single chapter slug to prune. Empty prunes every chapter of the series.")
	flag.BoolVar(&apply, "apply", false, "Apply the deletion. Without this flag, the command is a dry-run preview.")
	flag.Parse()

	mangaSlug = strings.TrimSpace(mangaSlug)
	chapterSlug = strings.TrimSpace(chapterSlug)

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	if mangaSlug == "" {
		slog.Error("missing required -manga flag")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg.SQLitePath)
	if err != nil {
		slog.Error("failed to open sqlite", "path", cfg.SQLitePath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.ApplyMigrations(db, cfg.MigrationsPath); err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}

	chapters := repository.NewChapterRepository(db)

	stored, err := chapters.ListByManga(mangaSlug)
	if err != nil {
		slog.Error("failed to list stored chapters", "manga", mangaSlug, "error", err)
		os.Exit(1)
	}

	targets := 0
	for _, chapter := range stored {
		if chapterSlug != "" && chapter.ChapterSlug != chapterSlug {
			continue
		}
		targets++
		slog.Info(
			"stored chapter matched",
			"manga", chapter.MangaSlug,
			"chapter", chapter.ChapterSlug,
			"images", len(chapter.Images),
			"last_scraped", chapter.LastScraped,
		)
	}

	if targets == 0 {
		slog.Info("no stored chapters matched; nothing to prune", "manga", mangaSlug, "chapter", chapterSlug)
		return
	}

	if !apply {
		slog.Info("dry-run complete", "manga", mangaSlug, "chapters_to_delete", targets)
		return
	}

	var deleted int64
	if chapterSlug != "" {
		deleted, err = chapters.Delete(mangaSlug, chapterSlug)
	} else {
		deleted, err = chapters.DeleteByManga(mangaSlug)
	}
	if err != nil {
		slog.Error("failed to prune chapters", "manga", mangaSlug, "error", err)
		os.Exit(1)
	}

	slog.Info("prune completed", "manga", mangaSlug, "deleted", deleted)
}
