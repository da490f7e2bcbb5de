package layout

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lelipitri23-dev/Komikcast/internal/scrape"
	"gopkg.in/yaml.v3"
)

// LoadFromDir loads layout profiles from every .yaml/.yml file in dirPath.
// A missing directory is not an error; individual broken profiles are
// collected and reported without blocking the rest.
func LoadFromDir(dirPath string) ([]scrape.Layout, error) {
	trimmed := strings.TrimSpace(dirPath)
	if trimmed == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read layouts dir: %w", err)
	}

	files := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		lower := strings.ToLower(entry.Name())
		if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
			files = append(files, filepath.Join(trimmed, entry.Name()))
		}
	}
	sort.Strings(files)

	loaded := make([]scrape.Layout, 0, len(files))
	problems := make([]string, 0)

	for _, filePath := range files {
		content, err := os.ReadFile(filePath)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", filepath.Base(filePath), err))
			continue
		}

		var cfg Config
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", filepath.Base(filePath), err))
			continue
		}
		if !cfg.isEnabled() {
			continue
		}

		extractor, err := NewExtractor(cfg)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", filepath.Base(filePath), err))
			continue
		}
		loaded = append(loaded, extractor)
	}

	if len(problems) > 0 {
		return loaded, fmt.Errorf("layouts failed to load: %s", strings.Join(problems, " | "))
	}

	return loaded, nil
}

// NewRegistry builds the layout registry: the built-in Komikcast layout plus
// everything under dirPath. Profiles may shadow the built-in key by using a
// different key; duplicate keys are reported.
func NewRegistry(dirPath string) (*scrape.Registry, error) {
	registry := scrape.NewRegistry()
	problems := make([]string, 0)

	if err := registry.Register(Default()); err != nil {
		problems = append(problems, err.Error())
	}

	loaded, err := LoadFromDir(dirPath)
	if err != nil {
		problems = append(problems, err.Error())
	}
	for _, layout := range loaded {
		if layout.Key() == "komikcast" {
			// the built-in default already owns this key
			continue
		}
		if err := registry.Register(layout); err != nil {
			problems = append(problems, err.Error())
		}
	}

	if len(problems) > 0 {
		return registry, fmt.Errorf("layout registry: %s", strings.Join(problems, " | "))
	}
	return registry, nil
}
