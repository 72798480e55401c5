// Package scoring tracks session mistakes and promotes or graduates words in
// the persisted review set.
package scoring

import "github.com/verte-zerg/wordmatch/internal/model"

// GraduationStreak is the number of consecutive correct matches that clears a
// word's persisted mistakes.
const GraduationStreak = 2

// MistakeStore persists mistake counts by global key. Implementations are
// best-effort: Get returns an empty map on failure and Set drops failed writes.
type MistakeStore interface {
	Get() map[string]int
	Set(map[string]int)
}

// Confusion is an ordered (left pair, right pair) wrong match.
type Confusion struct {
	Left  int
	Right int
}

// Tallies are the mistake counters of the current session.
type Tallies struct {
	MistakeTotal  int
	MistakeByPair map[int]int
	Confusions    map[Confusion]int
	// ConfusionOrder lists confusions by first occurrence.
	ConfusionOrder []Confusion
}

func newTallies() Tallies {
	return Tallies{
		MistakeByPair: map[int]int{},
		Confusions:    map[Confusion]int{},
	}
}

// Engine applies match outcomes to session tallies, correct streaks and the
// persisted mistake store. It is not safe for concurrent use.
type Engine struct {
	store     MistakeStore
	persisted map[string]int
	streaks   map[string]int
	tallies   Tallies
}

// NewEngine loads the persisted mistakes and returns an engine with empty tallies.
func NewEngine(store MistakeStore) *Engine {
	persisted := map[string]int{}
	for gk, n := range store.Get() {
		if n > 0 {
			persisted[gk] = n
		}
	}
	return &Engine{
		store:     store,
		persisted: persisted,
		streaks:   map[string]int{},
		tallies:   newTallies(),
	}
}

// Correct records a correct match. It reports whether the word graduated out
// of the review set.
func (e *Engine) Correct(p model.Pair) bool {
	gk := p.GlobalKey
	e.streaks[gk]++
	if e.streaks[gk] < GraduationStreak || e.persisted[gk] <= 0 {
		return false
	}
	delete(e.persisted, gk)
	e.streaks[gk] = 0
	e.flush()
	return true
}

// Wrong records a wrong match between the pair shown on the left and the pair
// shown on the right. Both words are implicated.
func (e *Engine) Wrong(left, right model.Pair) {
	e.tallies.MistakeTotal++
	e.tallies.MistakeByPair[left.LocalIndex]++
	e.tallies.MistakeByPair[right.LocalIndex]++

	c := Confusion{Left: left.LocalIndex, Right: right.LocalIndex}
	if _, seen := e.tallies.Confusions[c]; !seen {
		e.tallies.ConfusionOrder = append(e.tallies.ConfusionOrder, c)
	}
	e.tallies.Confusions[c]++

	e.persisted[left.GlobalKey]++
	e.persisted[right.GlobalKey]++
	e.streaks[left.GlobalKey] = 0
	e.streaks[right.GlobalKey] = 0
	e.flush()
}

// ResetSession clears the session tallies. Streaks and persisted counts are kept.
func (e *Engine) ResetSession() {
	e.tallies = newTallies()
}

// ResetStreaks clears every correct streak.
func (e *Engine) ResetStreaks() {
	e.streaks = map[string]int{}
}

// Tallies returns a copy of the session tallies.
func (e *Engine) Tallies() Tallies {
	out := newTallies()
	out.MistakeTotal = e.tallies.MistakeTotal
	for k, v := range e.tallies.MistakeByPair {
		out.MistakeByPair[k] = v
	}
	for k, v := range e.tallies.Confusions {
		out.Confusions[k] = v
	}
	out.ConfusionOrder = append([]Confusion(nil), e.tallies.ConfusionOrder...)
	return out
}

// Streak returns the consecutive correct matches recorded for a global key.
func (e *Engine) Streak(gk string) int {
	return e.streaks[gk]
}

// MistakeCount returns the persisted mistake count for a global key.
func (e *Engine) MistakeCount(gk string) int {
	return e.persisted[gk]
}

// Persisted returns a copy of the persisted mistake counts.
func (e *Engine) Persisted() map[string]int {
	return copyCounts(e.persisted)
}

func (e *Engine) flush() {
	e.store.Set(copyCounts(e.persisted))
}

func copyCounts(src map[string]int) map[string]int {
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
