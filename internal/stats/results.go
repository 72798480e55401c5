package stats

import (
	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/scoring"
)

// Results summarizes a completed round.
type Results struct {
	Total      int
	Solved     int
	Mistakes   int
	WeakWords  []WeakWord
	Confusions []ConfusionEntry
}

// BuildResults aggregates the session tallies of a round. It returns false
// until every pair has been solved.
func BuildResults(unit model.Unit, solved int, tallies scoring.Tallies) (Results, bool) {
	total := len(unit.Pairs)
	if solved != total {
		return Results{}, false
	}
	return Results{
		Total:      total,
		Solved:     solved,
		Mistakes:   tallies.MistakeTotal,
		WeakWords:  SelectWeakWords(unit, tallies.MistakeByPair),
		Confusions: TopConfusions(unit, tallies, MaxConfusions),
	}, true
}
