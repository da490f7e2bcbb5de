package ingest_test

import (
	"context"
	"testing"
	"time"

	"github.com/lelipitri23-dev/Komikcast/internal/ingest"
	"github.com/lelipitri23-dev/Komikcast/internal/models"
)

type fakeClock struct {
	sleeps []time.Duration
}

func (f *fakeClock) Now() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
func (f *fakeClock) Sleep(d time.Duration) {
	f.sleeps = append(f.sleeps, d)
}

type fakeIngestor struct {
	urls   []string
	failOn map[string]bool
	cancel context.CancelFunc
}

func (f *fakeIngestor) IngestSeries(_ context.Context, sourceURL string) *models.Series {
	f.urls = append(f.urls, sourceURL)
	if f.cancel != nil {
		f.cancel()
	}
	if f.failOn[sourceURL] {
		return nil
	}
	return &models.Series{Slug: sourceURL}
}

func TestBatchRunnerSpacesConsecutiveFetches(t *testing.T) {
	clock := &fakeClock{}
	ingestor := &fakeIngestor{}
	runner := ingest.NewBatchRunner(ingestor, 2*time.Second, clock, nil)

	result := runner.Run(context.Background(), []string{
		"https://src/komik/a",
		"https://src/komik/b",
		"https://src/komik/c",
	})

	if result.Ingested != 3 {
		t.Fatalf("expected 3 ingested, got %+v", result)
	}
	if len(clock.sleeps) != 2 {
		t.Fatalf("expected 2 sleeps between 3 fetches, got %d", len(clock.sleeps))
	}
	for _, d := range clock.sleeps {
		if d != 2*time.Second {
			t.Fatalf("expected 2s spacing, got %v", d)
		}
	}
}

func TestBatchRunnerSkipsNonHTTPLines(t *testing.T) {
	clock := &fakeClock{}
	ingestor := &fakeIngestor{failOn: map[string]bool{"https://src/komik/bad": true}}
	runner := ingest.NewBatchRunner(ingestor, 2*time.Second, clock, nil)

	result := runner.Run(context.Background(), []string{
		"not-a-url",
		"https://src/komik/good",
		"ftp://src/komik/elsewhere",
		"https://src/komik/bad",
	})

	if result.Requested != 4 {
		t.Fatalf("expected 4 requested, got %d", result.Requested)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected 2 skipped, got %d", result.Skipped)
	}
	if result.Ingested != 1 || result.Failed != 1 {
		t.Fatalf("unexpected counts %+v", result)
	}
	if len(ingestor.urls) != 2 {
		t.Fatalf("expected 2 fetch attempts, got %v", ingestor.urls)
	}
	// skipped lines never consume a pacing slot
	if len(clock.sleeps) != 1 {
		t.Fatalf("expected 1 sleep, got %d", len(clock.sleeps))
	}
}

func TestBatchRunnerStopsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ingestor := &fakeIngestor{cancel: cancel}
	runner := ingest.NewBatchRunner(ingestor, time.Second, &fakeClock{}, nil)

	result := runner.Run(ctx, []string{
		"https://src/komik/a",
		"https://src/komik/b",
	})

	if len(ingestor.urls) != 1 {
		t.Fatalf("expected batch to stop after cancellation, got %v", ingestor.urls)
	}
	if result.Ingested != 1 {
		t.Fatalf("unexpected counts %+v", result)
	}
}

func TestSplitURLList(t *testing.T) {
	urls := ingest.SplitURLList("https://src/komik/a\n\n  https://src/komik/b  \nplain text\n")

	if len(urls) != 3 {
		t.Fatalf("expected 3 lines, got %v", urls)
	}
	if urls[0] != "https://src/komik/a" || urls[1] != "https://src/komik/b" || urls[2] != "plain text" {
		t.Fatalf("unexpected lines %v", urls)
	}
}

func TestSplitURLListEmptyInput(t *testing.T) {
	if urls := ingest.SplitURLList("   \n\n"); len(urls) != 0 {
		t.Fatalf("expected no lines, got %v", urls)
	}
}
