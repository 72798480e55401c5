package stats

import (
	"sort"

	"github.com/verte-zerg/wordmatch/internal/model"
)

// WeakWord is a pair mistaken at least once in the session.
type WeakWord struct {
	Pair  model.Pair
	Count int
}

// SelectWeakWords returns every pair with a positive mistake count, most
// mistaken first. Ties keep ascending pair order.
func SelectWeakWords(unit model.Unit, mistakeByPair map[int]int) []WeakWord {
	ids := make([]int, 0, len(mistakeByPair))
	for id, n := range mistakeByPair {
		if n > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	words := make([]WeakWord, 0, len(ids))
	for _, id := range ids {
		pair, ok := unit.Pair(id)
		if !ok {
			continue
		}
		words = append(words, WeakWord{Pair: pair, Count: mistakeByPair[id]})
	}
	sort.SliceStable(words, func(i, j int) bool {
		return words[i].Count > words[j].Count
	})
	return words
}
