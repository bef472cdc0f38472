package textutil_test

import (
	"strings"
	"testing"

	"boardshelf/internal/textutil"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Brass Birmingham", "Brass Birmingham"},
		{"punctuation dropped", "7 Wonders: Duel!", "7 Wonders Duel"},
		{"diacritics folded", "Café Mélange", "Cafe Melange"},
		{"control chars removed", "Root\x00\x1f", "Root"},
		{"whitespace collapsed", "  Dune   Imperium  ", "Dune Imperium"},
		{"keeps dashes and underscores", "Tzolk-in_2012", "Tzolk-in_2012"},
		{"empty", "   ", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := textutil.SanitizeFileName(tc.input); got != tc.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeFileNameIdempotent(t *testing.T) {
	inputs := []string{"Brass: Birmingham", "Café Mélange", "A\tB   C", strings.Repeat("Gloomhaven ", 20)}
	for _, input := range inputs {
		once := textutil.SanitizeFileName(input)
		twice := textutil.SanitizeFileName(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q != %q", input, once, twice)
		}
	}
}

func TestSanitizeFileNameTruncates(t *testing.T) {
	long := strings.Repeat("abcde ", 40)
	got := textutil.SanitizeFileName(long)
	if len(got) > 80 {
		t.Fatalf("expected bounded length, got %d", len(got))
	}
	if got == "" {
		t.Fatal("expected non-empty result")
	}
}

func TestNormalizeForComparison(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"Ticket to Ride", "tickettoride"},
		{"Dungeons & Dragons", "dungeonsanddragons"},
		{"7 Wonders: Duel", "7wondersduel"},
		{"  ", ""},
	}
	for _, tc := range cases {
		if got := textutil.NormalizeForComparison(tc.input); got != tc.want {
			t.Fatalf("NormalizeForComparison(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
