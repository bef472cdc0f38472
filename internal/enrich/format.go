package enrich

import (
	"fmt"
	"strings"
)

// formatPlaytime renders the min/max playtime pair the way it reads on a
// shelf label. A zero on either side means the API did not report that bound.
func formatPlaytime(minutes, maxMinutes int) string {
	switch {
	case minutes <= 0 && maxMinutes <= 0:
		return ""
	case minutes <= 0:
		return fmt.Sprintf("%d min", maxMinutes)
	case maxMinutes <= 0 || minutes == maxMinutes:
		return fmt.Sprintf("%d min", minutes)
	default:
		return fmt.Sprintf("%d-%d min", minutes, maxMinutes)
	}
}

// formatWeight renders the average complexity weight to two decimals. Zero
// means the community has not rated the game, rendered as absent.
func formatWeight(weight float64) string {
	if weight <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", weight)
}

// joinLeading joins up to limit values with a semicolon separator. The thing
// endpoint returns links in site order, so the leading entries are the
// defining ones.
func joinLeading(values []string, limit int) string {
	if len(values) > limit {
		values = values[:limit]
	}
	return strings.Join(values, "; ")
}
