package scrape

import "fmt"

const (
	FetchReasonTimeout = "timeout"
	FetchReasonNetwork = "network"
	FetchReasonStatus  = "http_status"
)

// FetchError is returned when the outbound page request fails. A fetch is
// never retried; the caller aborts the current unit of work.
type FetchError struct {
	URL    string
	Reason string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Reason == FetchReasonStatus {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch %s: %s", e.URL, e.Reason)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

const ExtractReasonNoImages = "no_images_found"

// ExtractError is a structural parse failure. It is only hard-enforced for
// chapter content that yields zero images; series extraction fills defaults
// instead of failing.
type ExtractError struct {
	URL    string
	Reason string
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract %s: %s", e.URL, e.Reason)
}
