package enrich

import "testing"

func TestFormatPlaytime(t *testing.T) {
	cases := []struct {
		min, max int
		want     string
	}{
		{60, 60, "60 min"},
		{45, 90, "45-90 min"},
		{0, 120, "120 min"},
		{30, 0, "30 min"},
		{0, 0, ""},
	}
	for _, tc := range cases {
		if got := formatPlaytime(tc.min, tc.max); got != tc.want {
			t.Errorf("formatPlaytime(%d, %d) = %q, want %q", tc.min, tc.max, got, tc.want)
		}
	}
}

func TestFormatWeight(t *testing.T) {
	cases := []struct {
		weight float64
		want   string
	}{
		{3.8642, "3.86"},
		{2.5, "2.50"},
		{5, "5.00"},
		{0, ""},
	}
	for _, tc := range cases {
		if got := formatWeight(tc.weight); got != tc.want {
			t.Errorf("formatWeight(%v) = %q, want %q", tc.weight, got, tc.want)
		}
	}
}

func TestJoinLeading(t *testing.T) {
	values := []string{"Hand Management", "Set Collection", "Drafting", "Tile Placement", "Engine Building", "Auction"}
	if got := joinLeading(values, 5); got != "Hand Management; Set Collection; Drafting; Tile Placement; Engine Building" {
		t.Errorf("joinLeading capped = %q", got)
	}
	if got := joinLeading(values[:2], 5); got != "Hand Management; Set Collection" {
		t.Errorf("joinLeading short = %q", got)
	}
	if got := joinLeading(nil, 5); got != "" {
		t.Errorf("joinLeading nil = %q", got)
	}
}
