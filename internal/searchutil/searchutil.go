package searchutil

import "strings"

var likeEscaper = strings.NewReplacer(
	`\`, `\\`,
	`%`, `\%`,
	`_`, `\_`,
)

// EscapeLike escapes LIKE wildcards in user-supplied search input so a query
// for "100%" does not match everything.
func EscapeLike(input string) string {
	return likeEscaper.Replace(strings.TrimSpace(input))
}

// NormalizeGenre lowers a genre name or genre slug into the comparison form
// used by the catalog's genre filter: lowercase with hyphens treated as
// spaces, so "slice-of-life" matches the stored label "Slice of Life".
func NormalizeGenre(input string) string {
	normalized := strings.ToLower(strings.TrimSpace(input))
	normalized = strings.ReplaceAll(normalized, "-", " ")
	return strings.Join(strings.Fields(normalized), " ")
}

// GenreDisplayName formats a genre slug for presentation, e.g.
// "action-adventure" becomes "Action Adventure".
func GenreDisplayName(slug string) string {
	words := strings.Fields(strings.ReplaceAll(strings.TrimSpace(slug), "-", " "))
	for index, word := range words {
		words[index] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
