package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment      string
	AppName          string
	Port             string
	LogLevel         slog.Level
	SQLitePath       string
	MigrationsPath   string
	SeedDefaultData  bool
	LayoutsPath      string
	SourceLayout     string
	RefreshEnabled   bool
	RefreshMinutes   int
	AdminPassword    string
	NotifyWebhookURL string
	PublicBaseURL    string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Environment:      getEnv("APP_ENV", "development"),
		AppName:          getEnv("APP_NAME", "komikcast"),
		Port:             getEnv("APP_PORT", "3000"),
		SQLitePath:       getEnv("SQLITE_PATH", "./data/app.sqlite"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "./migrations"),
		SeedDefaultData:  getEnvAsBool("SEED_DEFAULT_DATA", true),
		LayoutsPath:      getEnv("LAYOUTS_PATH", "./layouts"),
		SourceLayout:     getEnv("SOURCE_LAYOUT", "komikcast"),
		RefreshEnabled:   getEnvAsBool("REFRESH_ENABLED", true),
		RefreshMinutes:   getEnvAsInt("REFRESH_MINUTES", 60),
		AdminPassword:    getEnv("ADMIN_PASSWORD", ""),
		NotifyWebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		PublicBaseURL:    getEnv("PUBLIC_BASE_URL", ""),
	}

	if cfg.RefreshMinutes <= 0 {
		cfg.RefreshMinutes = 60
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "INFO"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch raw {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q, expected DEBUG|INFO|WARN|ERROR", raw)
	}
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
