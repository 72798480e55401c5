package game

import (
	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/stats"
)

// Flash is the feedback phase of a selected card while an arbitration is pending.
type Flash int

const (
	FlashNone Flash = iota
	FlashMatch
	FlashWrong
)

// CardView describes one slot of a column.
type CardView struct {
	Card     model.Card
	Empty    bool
	Selected bool
	Flash    Flash
	Incoming bool
	// Marked is set on left cards whose word has persisted mistakes.
	Marked bool
}

// UnitTab is one entry of the unit selector.
type UnitTab struct {
	ID     string
	Name   string
	Pairs  int
	Active bool
}

// View is a render snapshot of the game.
type View struct {
	Units    []UnitTab
	Unit     model.Unit
	Left     []CardView
	Right    []CardView
	Solved   int
	Total    int
	Mistakes int
	Locked   bool
	Complete bool
	Results  *stats.Results
}

// View builds the render snapshot of the current state.
func (g *Game) View() View {
	r := g.round
	unit := r.Unit()
	v := View{
		Unit:     unit,
		Solved:   r.Solved(),
		Total:    r.Total(),
		Mistakes: g.engine.Tallies().MistakeTotal,
		Locked:   r.Locked(),
		Complete: r.Complete(),
	}
	for _, u := range g.units {
		v.Units = append(v.Units, UnitTab{
			ID:     u.ID,
			Name:   u.Name,
			Pairs:  len(u.Pairs),
			Active: u.ID == g.active,
		})
	}

	flash := FlashNone
	if a, ok := r.Pending(); ok {
		flash = FlashWrong
		if a.Match {
			flash = FlashMatch
		}
	}
	for _, col := range []model.Column{model.Left, model.Right} {
		sel, hasSel := r.Selected(col)
		order := r.Order(col)
		cards := make([]CardView, len(order))
		for slot := range order {
			card, ok := r.CardAt(col, slot)
			if !ok {
				cards[slot] = CardView{Empty: true}
				continue
			}
			cv := CardView{Card: card, Incoming: r.Incoming(card.PairID)}
			if hasSel && sel.Key() == card.Key() {
				cv.Selected = true
				cv.Flash = flash
			}
			if col == model.Left {
				if pair, found := unit.Pair(card.PairID); found {
					cv.Marked = g.engine.MistakeCount(pair.GlobalKey) > 0
				}
			}
			cards[slot] = cv
		}
		if col == model.Left {
			v.Left = cards
		} else {
			v.Right = cards
		}
	}

	if res, ok := g.Results(); ok {
		v.Results = &res
	}
	return v
}
