package scrape

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const requestTimeout = 10 * time.Second

// Fixed headers to reduce anti-bot rejection by the source site. The
// fingerprint is intentionally constant across requests.
const (
	headerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	headerAccept    = "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8"
	headerReferer   = "https://google.com"
)

// Fetcher issues single outbound GETs against source pages. No retries, no
// cookie state between requests.
type Fetcher struct {
	client *http.Client
}

func NewFetcher(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	return &Fetcher{client: client}
}

// FetchDocument fetches the page at rawURL and parses it into a goquery
// document. Failures are classified as *FetchError.
func (f *Fetcher) FetchDocument(ctx context.Context, rawURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Reason: FetchReasonNetwork, Err: err}
	}

	req.Header.Set("User-Agent", headerUserAgent)
	req.Header.Set("Accept", headerAccept)
	req.Header.Set("Referer", headerReferer)

	res, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Reason: classifyFetchFailure(err), Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, &FetchError{URL: rawURL, Reason: FetchReasonStatus, Status: res.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Reason: FetchReasonNetwork, Err: err}
	}

	return doc, nil
}

func classifyFetchFailure(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return FetchReasonTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return FetchReasonTimeout
	}

	return FetchReasonNetwork
}
