package resolve

import (
	"strings"

	"boardshelf/internal/bgg"
	"boardshelf/internal/collection"
)

// maxCandidates caps how many search results participate in matching.
const maxCandidates = 5

// selectMatch applies the fixed matching policy over a candidate set:
// exact case-insensitive equality wins outright (High); else substring
// containment in either direction (Medium); else the first returned result
// (Low). An empty candidate set yields no match (None).
func selectMatch(query string, results []bgg.SearchResult) (bgg.SearchResult, collection.Confidence, bool) {
	if len(results) == 0 {
		return bgg.SearchResult{}, collection.ConfidenceNone, false
	}
	if len(results) > maxCandidates {
		results = results[:maxCandidates]
	}

	queryLower := strings.ToLower(query)
	for _, result := range results {
		if strings.ToLower(result.Name) == queryLower {
			return result, collection.ConfidenceHigh, true
		}
	}
	for _, result := range results {
		nameLower := strings.ToLower(result.Name)
		if strings.Contains(nameLower, queryLower) || strings.Contains(queryLower, nameLower) {
			return result, collection.ConfidenceMedium, true
		}
	}
	return results[0], collection.ConfidenceLow, true
}
