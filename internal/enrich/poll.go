package enrich

import (
	"sort"
	"strconv"
	"strings"

	"boardshelf/internal/bgg"
)

// Vote thresholds for the suggested-player-count poll. A bucket needs more
// than minPollVotes total votes to count at all; "best" needs a strict
// majority of best votes; "recommended" needs best plus recommended votes to
// clear sixty percent.
const (
	minPollVotes     = 5
	bestShare        = 0.5
	recommendedShare = 0.6
)

// classifyPlayerCounts reduces the poll to two display lists, each sorted by
// numeric player count. Each qualifying bucket lands in exactly one list, best
// taking precedence.
func classifyPlayerCounts(poll []bgg.PollBucket) (best, recommended string) {
	var bestCounts, recCounts []string
	for _, bucket := range poll {
		total := bucket.TotalVotes()
		if total <= minPollVotes {
			continue
		}
		bestRatio := float64(bucket.Best) / float64(total)
		combinedRatio := float64(bucket.Best+bucket.Recommended) / float64(total)
		switch {
		case bestRatio > bestShare:
			bestCounts = append(bestCounts, bucket.NumPlayers)
		case combinedRatio > recommendedShare:
			recCounts = append(recCounts, bucket.NumPlayers)
		}
	}
	sortPlayerCounts(bestCounts)
	sortPlayerCounts(recCounts)
	return strings.Join(bestCounts, ", "), strings.Join(recCounts, ", ")
}

// sortPlayerCounts orders counts numerically. Open-ended counts like "4+"
// are not plain integers and sort to the end.
func sortPlayerCounts(counts []string) {
	sort.SliceStable(counts, func(i, j int) bool {
		return playerCountKey(counts[i]) < playerCountKey(counts[j])
	})
}

func playerCountKey(count string) int {
	if n, err := strconv.Atoi(count); err == nil {
		return n
	}
	return 999
}
