package ingest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/lelipitri23-dev/Komikcast/internal/models"
)

// SeriesIngestor is what a batch run needs from the orchestrator.
type SeriesIngestor interface {
	IngestSeries(ctx context.Context, sourceURL string) *models.Series
}

// BatchRunner ingests a list of source URLs strictly sequentially with a
// fixed minimum spacing between outbound fetches. The spacing is a deliberate
// rate limit so the source site does not see the mirror as abusive traffic.
type BatchRunner struct {
	ingestor SeriesIngestor
	spacing  time.Duration
	clock    Clock
	logger   *slog.Logger
}

type BatchResult struct {
	Requested int `json:"requested"`
	Ingested  int `json:"ingested"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

func NewBatchRunner(ingestor SeriesIngestor, spacing time.Duration, clock Clock, logger *slog.Logger) *BatchRunner {
	if clock == nil {
		clock = SystemClock()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &BatchRunner{
		ingestor: ingestor,
		spacing:  spacing,
		clock:    clock,
		logger:   logger,
	}
}

// Run processes the URLs one at a time, sleeping the configured spacing
// between consecutive fetches. Lines that are not http(s) URLs are skipped.
// A canceled context stops the batch between units of work.
func (r *BatchRunner) Run(ctx context.Context, urls []string) BatchResult {
	result := BatchResult{Requested: len(urls)}
	started := false

	for _, rawURL := range urls {
		if ctx.Err() != nil {
			r.logger.Info("batch canceled", "remaining", result.Requested-result.Ingested-result.Failed-result.Skipped)
			break
		}

		trimmed := strings.TrimSpace(rawURL)
		if !strings.HasPrefix(trimmed, "http") {
			result.Skipped++
			continue
		}

		if started {
			r.clock.Sleep(r.spacing)
		}
		started = true

		if series := r.ingestor.IngestSeries(ctx, trimmed); series != nil {
			result.Ingested++
		} else {
			result.Failed++
		}
	}

	return result
}

// SplitURLList splits textarea-style input into candidate URLs, one per line,
// dropping blank lines.
func SplitURLList(input string) []string {
	lines := strings.Split(input, "\n")
	urls := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls
}
