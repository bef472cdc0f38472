package resolve

import (
	"regexp"
	"strconv"
	"strings"
)

// URL patterns that carry a BGG id, tried in order. The bare /NNN/ form
// matches the id segment of copy-pasted BGG links without a hostname.
var urlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`boardgamegeek\.com/boardgame(?:expansion)?/(\d+)`),
	regexp.MustCompile(`bgg\.cc/(\d+)`),
	regexp.MustCompile(`/(\d+)/`),
}

var (
	leadingNumbering  = regexp.MustCompile(`^\d+\.\s*`)
	trailingComment   = regexp.MustCompile(`\s*#.*$`)
	trailingParens    = regexp.MustCompile(`\s*\(.*\)$`)
	trailingEmDash    = regexp.MustCompile(`\s*–.*$`)
	trailingExpansion = regexp.MustCompile(`(?i)\s*-.*expansion.*$`)
)

// ExtractIDFromURL returns the BGG id embedded in a line, if any. Digit runs
// that do not fit an int64 are not ids.
func ExtractIDFromURL(line string) (int64, bool) {
	for _, pattern := range urlPatterns {
		if match := pattern.FindStringSubmatch(line); match != nil {
			id, err := strconv.ParseInt(match[1], 10, 64)
			if err == nil && id >= 1 {
				return id, true
			}
		}
	}
	return 0, false
}

// CleanName reduces a raw list line to a searchable game name: numbering,
// trailing comments, parenthetical remarks, em-dash notes, and expansion
// qualifiers are stripped. Returns "" for lines that carry no usable name,
// including placeholder tokens like "???".
func CleanName(line string) string {
	name := strings.TrimSpace(line)
	name = leadingNumbering.ReplaceAllString(name, "")
	name = trailingComment.ReplaceAllString(name, "")
	name = trailingParens.ReplaceAllString(name, "")
	name = trailingEmDash.ReplaceAllString(name, "")
	name = trailingExpansion.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if isPlaceholder(name) {
		return ""
	}
	return name
}

// isPlaceholder reports whether the cleaned name is a stand-in token rather
// than a game name.
func isPlaceholder(name string) bool {
	if name == "" {
		return true
	}
	for _, r := range name {
		if r != '?' && r != '-' && r != '.' {
			return false
		}
	}
	return true
}
