package scrape

import "strings"

// DeriveSlug normalizes a source URL into the stable identifier used as the
// primary lookup key: one trailing slash is stripped and the final path
// segment is returned. It is a pure function of the URL string, so repeated
// ingestion of the same URL always resolves to the same slug.
func DeriveSlug(rawURL string) string {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return ""
	}

	trimmed = strings.TrimSuffix(trimmed, "/")
	parts := strings.Split(trimmed, "/")
	return parts[len(parts)-1]
}
