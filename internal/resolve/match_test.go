package resolve

import (
	"testing"

	"boardshelf/internal/bgg"
	"boardshelf/internal/collection"
)

func TestSelectMatchExactWinsRegardlessOfOrder(t *testing.T) {
	results := []bgg.SearchResult{
		{ID: 1, Name: "Azul: Summer Pavilion"},
		{ID: 2, Name: "azul"},
	}
	match, confidence, ok := selectMatch("Azul", results)
	if !ok || match.ID != 2 || confidence != collection.ConfidenceHigh {
		t.Fatalf("selectMatch = (%+v, %s, %v)", match, confidence, ok)
	}
}

func TestSelectMatchSubstringEitherDirection(t *testing.T) {
	// Query contained in result name.
	match, confidence, ok := selectMatch("Brass", []bgg.SearchResult{{ID: 7, Name: "Brass: Birmingham"}})
	if !ok || match.ID != 7 || confidence != collection.ConfidenceMedium {
		t.Fatalf("query-in-name = (%+v, %s, %v)", match, confidence, ok)
	}

	// Result name contained in query.
	match, confidence, ok = selectMatch("Brass Birmingham Deluxe", []bgg.SearchResult{{ID: 8, Name: "brass birmingham"}})
	if !ok || match.ID != 8 || confidence != collection.ConfidenceMedium {
		t.Fatalf("name-in-query = (%+v, %s, %v)", match, confidence, ok)
	}
}

func TestSelectMatchFallsBackToFirstResult(t *testing.T) {
	results := []bgg.SearchResult{
		{ID: 10, Name: "Completely Different"},
		{ID: 11, Name: "Also Unrelated"},
	}
	match, confidence, ok := selectMatch("Gloomhaven", results)
	if !ok || match.ID != 10 || confidence != collection.ConfidenceLow {
		t.Fatalf("selectMatch = (%+v, %s, %v)", match, confidence, ok)
	}
}

func TestSelectMatchEmptyResults(t *testing.T) {
	_, confidence, ok := selectMatch("Anything", nil)
	if ok || confidence != collection.ConfidenceNone {
		t.Fatalf("selectMatch = (%s, %v), want no match", confidence, ok)
	}
}

func TestSelectMatchIgnoresCandidatesBeyondCap(t *testing.T) {
	results := make([]bgg.SearchResult, 0, maxCandidates+1)
	for i := 0; i <= maxCandidates; i++ {
		results = append(results, bgg.SearchResult{ID: int64(i + 1), Name: "Filler"})
	}
	results[maxCandidates].Name = "Exact Target"

	match, confidence, ok := selectMatch("Exact Target", results)
	if !ok {
		t.Fatal("expected a match")
	}
	if confidence == collection.ConfidenceHigh {
		t.Fatalf("exact name beyond the candidate cap should not match, got %+v", match)
	}
}
