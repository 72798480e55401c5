package stats

import (
	"sort"

	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/scoring"
)

// MaxConfusions caps the confusion list shown in results.
const MaxConfusions = 6

// ConfusionEntry is a recorded wrong match with both pairs resolved.
type ConfusionEntry struct {
	Left  model.Pair
	Right model.Pair
	Count int
}

// TopConfusions returns up to n confusions by count, most frequent first.
// Ties keep first-occurrence order.
func TopConfusions(unit model.Unit, tallies scoring.Tallies, n int) []ConfusionEntry {
	if n <= 0 {
		return nil
	}
	entries := make([]ConfusionEntry, 0, len(tallies.ConfusionOrder))
	for _, c := range tallies.ConfusionOrder {
		left, lok := unit.Pair(c.Left)
		right, rok := unit.Pair(c.Right)
		if !lok || !rok {
			continue
		}
		entries = append(entries, ConfusionEntry{Left: left, Right: right, Count: tallies.Confusions[c]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	if n > len(entries) {
		n = len(entries)
	}
	return entries[:n]
}
