package searchutil_test

import (
	"testing"

	"github.com/lelipitri23-dev/Komikcast/internal/searchutil"
)

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"plain", "plain"},
		{"100%", `100\%`},
		{"a_b", `a\_b`},
		{`back\slash`, `back\\slash`},
	}

	for _, test := range tests {
		if got := searchutil.EscapeLike(test.in); got != test.expected {
			t.Fatalf("EscapeLike(%q) = %q, expected %q", test.in, got, test.expected)
		}
	}
}

func TestNormalizeGenre(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Martial Arts", "martial arts"},
		{"martial-arts", "martial arts"},
		{"  Sci-Fi  ", "sci fi"},
		{"", ""},
	}

	for _, test := range tests {
		if got := searchutil.NormalizeGenre(test.in); got != test.expected {
			t.Fatalf("NormalizeGenre(%q) = %q, expected %q", test.in, got, test.expected)
		}
	}
}

func TestGenreDisplayName(t *testing.T) {
	if got := searchutil.GenreDisplayName("martial-arts"); got != "Martial Arts" {
		t.Fatalf("unexpected display name %q", got)
	}
	if got := searchutil.GenreDisplayName("comedy"); got != "Comedy" {
		t.Fatalf("unexpected display name %q", got)
	}
}
