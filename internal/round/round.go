// Package round implements the two-column matching round.
//
// A round shows a window of pairs in two independently shuffled columns. A
// single cursor walks the unit's backlog; whenever a pair is solved, the next
// unseen pair takes its slot in both columns, so both columns always hold the
// same set of pair ids. Arbitration is split in two steps: Pick decides the
// outcome and locks the round, Settle commits it once the caller's settle
// delay has elapsed. Picks made while locked are ignored.
package round

import "github.com/verte-zerg/wordmatch/internal/model"

// DefaultWindow is the number of pairs visible at once.
const DefaultWindow = 5

// Shuffler permutes the initial pair ids of a column.
type Shuffler interface {
	Shuffle(ids []int) []int
}

// Empty marks a slot whose pair was solved with no backlog left.
const Empty = 0

// Arbitration is the outcome of comparing one selected card per column.
type Arbitration struct {
	Ticket uint64
	Match  bool
	Left   model.Card
	Right  model.Card
}

// Round holds the state of one round over a single unit.
type Round struct {
	unit     model.Unit
	window   int
	shuffler Shuffler

	left     []int
	right    []int
	cursor   int
	solved   map[int]struct{}
	selected [2]*model.Card
	incoming map[int]struct{}

	locked     bool
	pending    *Arbitration
	lastTicket uint64
}

// New creates a round for the unit and deals the initial window.
func New(unit model.Unit, window int, shuffler Shuffler) *Round {
	if window <= 0 {
		window = DefaultWindow
	}
	r := &Round{unit: unit, window: window, shuffler: shuffler}
	r.Reset()
	return r
}

// Reset deals a fresh window and clears all round state.
func (r *Round) Reset() {
	n := r.window
	if total := len(r.unit.Pairs); total < n {
		n = total
	}
	ids := make([]int, n)
	for i := 0; i < n; i++ {
		ids[i] = r.unit.Pairs[i].LocalIndex
	}
	r.left = r.shuffler.Shuffle(ids)
	r.right = r.shuffler.Shuffle(ids)
	r.cursor = n
	r.solved = map[int]struct{}{}
	r.selected = [2]*model.Card{}
	r.incoming = map[int]struct{}{}
	r.locked = false
	r.pending = nil
}

// Unit returns the unit the round was dealt from.
func (r *Round) Unit() model.Unit {
	return r.unit
}

// Total returns the number of pairs in the round.
func (r *Round) Total() int {
	return len(r.unit.Pairs)
}

// Solved returns the number of solved pairs.
func (r *Round) Solved() int {
	return len(r.solved)
}

// IsSolved reports whether the pair has been matched.
func (r *Round) IsSolved(pairID int) bool {
	_, ok := r.solved[pairID]
	return ok
}

// Complete reports whether every pair has been solved.
func (r *Round) Complete() bool {
	return len(r.solved) == len(r.unit.Pairs)
}

// Cursor returns the index of the next pair not yet dealt.
func (r *Round) Cursor() int {
	return r.cursor
}

// Locked reports whether an arbitration awaits Settle.
func (r *Round) Locked() bool {
	return r.locked
}

// Order returns a copy of a column's slot order. Empty slots hold Empty.
func (r *Round) Order(col model.Column) []int {
	src := r.left
	if col == model.Right {
		src = r.right
	}
	out := make([]int, len(src))
	copy(out, src)
	return out
}

// CardAt returns the card shown at a slot.
func (r *Round) CardAt(col model.Column, slot int) (model.Card, bool) {
	order := r.left
	if col == model.Right {
		order = r.right
	}
	if slot < 0 || slot >= len(order) || order[slot] == Empty {
		return model.Card{}, false
	}
	pair, ok := r.unit.Pair(order[slot])
	if !ok {
		return model.Card{}, false
	}
	text := pair.Source
	if col == model.Right {
		text = pair.Target
	}
	return model.Card{PairID: pair.LocalIndex, Column: col, Text: text}, true
}

// Selected returns the selected card of a column.
func (r *Round) Selected(col model.Column) (model.Card, bool) {
	if c := r.selected[col]; c != nil {
		return *c, true
	}
	return model.Card{}, false
}

// Pending returns the arbitration waiting to be settled.
func (r *Round) Pending() (Arbitration, bool) {
	if r.pending == nil {
		return Arbitration{}, false
	}
	return *r.pending, true
}

// Incoming reports whether the pair was dealt by the last replenishment and
// has not been expired yet.
func (r *Round) Incoming(pairID int) bool {
	_, ok := r.incoming[pairID]
	return ok
}

// ExpireIncoming clears the incoming marker of a pair.
func (r *Round) ExpireIncoming(pairID int) {
	delete(r.incoming, pairID)
}

// Pick handles a click on a slot. Picking the selected card again deselects
// it. When both columns hold a selection, the round locks and the returned
// arbitration must be passed to Settle.
func (r *Round) Pick(col model.Column, slot int) (Arbitration, bool) {
	if r.locked {
		return Arbitration{}, false
	}
	card, ok := r.CardAt(col, slot)
	if !ok {
		return Arbitration{}, false
	}
	if cur := r.selected[col]; cur != nil && cur.Key() == card.Key() {
		r.selected[col] = nil
		return Arbitration{}, false
	}
	r.selected[col] = &card
	if r.selected[col.Opposite()] == nil {
		return Arbitration{}, false
	}
	return r.arbitrate(*r.selected[model.Left], *r.selected[model.Right]), true
}

func (r *Round) arbitrate(left, right model.Card) Arbitration {
	r.locked = true
	r.lastTicket++
	a := Arbitration{
		Ticket: r.lastTicket,
		Match:  left.PairID == right.PairID && left.Key() != right.Key(),
		Left:   left,
		Right:  right,
	}
	r.pending = &a
	return a
}

// Settle commits the pending arbitration with the given ticket. A stale or
// repeated ticket is ignored. For a match, the solved pair's slot is refilled
// in both columns from the backlog, or emptied when the backlog is exhausted.
// The second result is the newly dealt pair id, if any.
func (r *Round) Settle(ticket uint64) (Arbitration, int, bool) {
	if r.pending == nil || r.pending.Ticket != ticket {
		return Arbitration{}, Empty, false
	}
	a := *r.pending
	r.pending = nil

	next := Empty
	if a.Match && !r.IsSolved(a.Left.PairID) {
		pid := a.Left.PairID
		r.solved[pid] = struct{}{}
		if r.cursor < len(r.unit.Pairs) {
			next = r.unit.Pairs[r.cursor].LocalIndex
			r.cursor++
		}
		replace(r.left, pid, next)
		replace(r.right, pid, next)
		if next != Empty {
			r.incoming[next] = struct{}{}
		}
	}

	r.selected = [2]*model.Card{}
	r.locked = false
	return a, next, true
}

func replace(order []int, target, next int) {
	for i, id := range order {
		if id == target {
			order[i] = next
		}
	}
}
