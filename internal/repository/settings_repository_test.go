package repository_test

import (
	"testing"

	"github.com/lelipitri23-dev/Komikcast/internal/database"
	"github.com/lelipitri23-dev/Komikcast/internal/repository"
)

func TestSettingsGetSetAndFallbacks(t *testing.T) {
	db := openTestDB(t)
	if err := database.SeedDefaults(db); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
	repo := repository.NewSettingsRepository(db)

	spacing, err := repo.GetInt("admin_batch_spacing_seconds", 99)
	if err != nil {
		t.Fatalf("get seeded setting: %v", err)
	}
	if spacing != 2 {
		t.Fatalf("expected seeded value 2, got %d", spacing)
	}

	missing, err := repo.GetInt("does_not_exist", 7)
	if err != nil {
		t.Fatalf("get missing setting: %v", err)
	}
	if missing != 7 {
		t.Fatalf("expected fallback 7, got %d", missing)
	}

	if err := repo.Set("refresh_minutes", "30"); err != nil {
		t.Fatalf("set: %v", err)
	}
	minutes, err := repo.GetInt("refresh_minutes", 60)
	if err != nil {
		t.Fatalf("get updated setting: %v", err)
	}
	if minutes != 30 {
		t.Fatalf("expected updated value 30, got %d", minutes)
	}

	if err := repo.Set("refresh_minutes", "not-a-number"); err != nil {
		t.Fatalf("set non-numeric: %v", err)
	}
	fallback, err := repo.GetInt("refresh_minutes", 60)
	if err != nil {
		t.Fatalf("get non-numeric setting: %v", err)
	}
	if fallback != 60 {
		t.Fatalf("expected fallback for non-numeric value, got %d", fallback)
	}
}
