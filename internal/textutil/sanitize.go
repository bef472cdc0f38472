package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// maxBaseLength bounds the sanitized base name so constructed filenames stay
// within common filesystem limits once year/id suffixes are appended.
const maxBaseLength = 80

var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SanitizeFileName converts a display name into a filesystem-safe base name.
// Accented characters are folded to their base letters, control characters
// and filesystem-unsafe punctuation are dropped, runs of whitespace collapse
// to a single space, and the result is truncated to a bounded rune length.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if folded, _, err := transform.String(stripMarks, name); err == nil {
		name = folded
	}

	var b strings.Builder
	b.Grow(len(name))
	lastSpace := false
	for _, r := range name {
		switch {
		case r == ' ' || r == '\t':
			if !lastSpace && b.Len() > 0 {
				b.WriteByte(' ')
				lastSpace = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			if r > unicode.MaxASCII {
				continue
			}
			b.WriteRune(r)
			lastSpace = false
		}
	}

	out := strings.TrimSpace(b.String())
	if len(out) > maxBaseLength {
		out = strings.TrimSpace(out[:maxBaseLength])
	}
	return out
}

// NormalizeForComparison lowercases a name and strips everything but letters
// and digits, folding "&" and "+" to "and" first so stylized titles compare
// equal to their plain spellings.
func NormalizeForComparison(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}
	normalized := strings.ToLower(input)
	normalized = strings.ReplaceAll(normalized, "&", "and")
	normalized = strings.ReplaceAll(normalized, "+", "and")

	var builder strings.Builder
	for _, r := range normalized {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
