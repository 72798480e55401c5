// Package game wires the unit catalog, the active round and the scoring
// engine behind the commands a front end can issue: pick a card, settle an
// arbitration, select a unit and restart.
package game

import (
	"errors"
	"log/slog"
	"time"

	"github.com/verte-zerg/wordmatch/internal/catalog"
	"github.com/verte-zerg/wordmatch/internal/generator"
	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/round"
	"github.com/verte-zerg/wordmatch/internal/scoring"
	"github.com/verte-zerg/wordmatch/internal/stats"
)

// ErrNoUnits is returned when the game is created without static units.
var ErrNoUnits = errors.New("no units to play")

// RoundRecorder receives every completed round.
type RoundRecorder interface {
	RecordRound(model.RoundRecord)
}

// RecorderFunc adapts a function to RoundRecorder.
type RecorderFunc func(model.RoundRecord)

// RecordRound calls f.
func (f RecorderFunc) RecordRound(rec model.RoundRecord) {
	f(rec)
}

// Options configures a Game.
type Options struct {
	Unit     string
	Window   int
	Shuffler round.Shuffler
	Recorder RoundRecorder
	Logger   *slog.Logger
	Now      func() time.Time
}

// Game is the single-writer game state. All methods must be called from one
// goroutine, typically the UI event loop.
type Game struct {
	static []model.Unit
	units  []model.Unit
	active string

	round  *round.Round
	engine *scoring.Engine

	window   int
	shuffler round.Shuffler
	recorder RoundRecorder
	log      *slog.Logger
	now      func() time.Time

	startedAt time.Time
	recorded  bool
	// epoch tags tickets so timers armed before a redeal are ignored.
	epoch uint64
}

// New creates a game over the static units and deals a round for the
// requested unit, or the first unit of the catalog.
func New(static []model.Unit, mistakes scoring.MistakeStore, opts Options) (*Game, error) {
	if len(static) == 0 {
		return nil, ErrNoUnits
	}
	g := &Game{
		static:   static,
		engine:   scoring.NewEngine(mistakes),
		window:   opts.Window,
		shuffler: opts.Shuffler,
		recorder: opts.Recorder,
		log:      opts.Logger,
		now:      opts.Now,
	}
	if g.window <= 0 {
		g.window = round.DefaultWindow
	}
	if g.shuffler == nil {
		g.shuffler = generator.New()
	}
	if g.log == nil {
		g.log = slog.Default()
	}
	if g.now == nil {
		g.now = time.Now
	}

	g.units = catalog.Derive(static, g.engine.Persisted())
	unit, fallback := catalog.Resolve(g.units, opts.Unit)
	if fallback && opts.Unit != "" {
		g.log.Info("unit not found, using first unit", "unit", opts.Unit, "fallback", unit.ID)
	}
	g.startRound(unit)
	return g, nil
}

// Units returns the current unit catalog, review unit first when present.
func (g *Game) Units() []model.Unit {
	return g.units
}

// ActiveUnit returns the unit the current round was dealt from.
func (g *Game) ActiveUnit() model.Unit {
	return g.round.Unit()
}

// Round exposes the active round for read access.
func (g *Game) Round() *round.Round {
	return g.round
}

// Tallies returns the session mistake tallies.
func (g *Game) Tallies() scoring.Tallies {
	return g.engine.Tallies()
}

// Mistakes returns the persisted mistake counts.
func (g *Game) Mistakes() map[string]int {
	return g.engine.Persisted()
}

// Streak returns the correct streak of a global key.
func (g *Game) Streak(gk string) int {
	return g.engine.Streak(gk)
}

// SelectUnit switches to another unit, discarding the round and session
// tallies. Persisted mistakes are untouched. It reports whether the active
// unit changed.
func (g *Game) SelectUnit(id string) bool {
	if id == g.active {
		return false
	}
	unit, ok := catalog.Find(g.units, id)
	if !ok {
		return false
	}
	g.switchTo(unit)
	return true
}

// Restart deals a fresh round of the active unit as currently listed in the
// catalog and clears the session tallies. Correct streaks are kept.
func (g *Game) Restart() {
	unit, fallback := catalog.Resolve(g.units, g.active)
	if fallback {
		g.switchTo(unit)
		return
	}
	g.engine.ResetSession()
	g.startRound(unit)
}

// Pick forwards a card pick to the round. A wrong arbitration is scored
// immediately; a match is scored when settled.
func (g *Game) Pick(col model.Column, slot int) (round.Arbitration, bool) {
	a, ok := g.round.Pick(col, slot)
	if !ok {
		return a, false
	}
	a.Ticket = g.epoch<<32 | a.Ticket
	if a.Match {
		return a, true
	}
	unit := g.round.Unit()
	left, lok := unit.Pair(a.Left.PairID)
	right, rok := unit.Pair(a.Right.PairID)
	if lok && rok {
		g.engine.Wrong(left, right)
		g.refreshCatalog()
	}
	return a, true
}

// Settle commits the pending arbitration once the settle delay has elapsed.
// Stale or repeated tickets are ignored. The second result is the pair dealt
// into the freed slot, or round.Empty.
func (g *Game) Settle(ticket uint64) (round.Arbitration, int, bool) {
	if ticket>>32 != g.epoch {
		return round.Arbitration{}, round.Empty, false
	}
	r := g.round
	a, next, ok := r.Settle(ticket & 0xffffffff)
	if !ok {
		return a, next, false
	}
	a.Ticket = ticket
	if !a.Match {
		return a, next, true
	}
	graduated := false
	if pair, found := r.Unit().Pair(a.Left.PairID); found {
		graduated = g.engine.Correct(pair)
		if graduated {
			g.log.Debug("word graduated from review", "key", pair.GlobalKey)
		}
	}
	if r.Complete() {
		g.finishRound()
	}
	if graduated {
		g.refreshCatalog()
	}
	return a, next, true
}

// ExpireIncoming clears the incoming marker of a pair.
func (g *Game) ExpireIncoming(pairID int) {
	g.round.ExpireIncoming(pairID)
}

// Results returns the aggregated results once the round is complete.
func (g *Game) Results() (stats.Results, bool) {
	return stats.BuildResults(g.round.Unit(), g.round.Solved(), g.engine.Tallies())
}

func (g *Game) switchTo(unit model.Unit) {
	g.engine.ResetSession()
	g.engine.ResetStreaks()
	g.startRound(unit)
}

func (g *Game) startRound(unit model.Unit) {
	g.epoch++
	g.active = unit.ID
	g.round = round.New(unit, g.window, g.shuffler)
	g.startedAt = g.now()
	g.recorded = false
}

func (g *Game) finishRound() {
	if g.recorded || g.recorder == nil {
		g.recorded = true
		return
	}
	g.recorded = true
	g.recorder.RecordRound(model.RoundRecord{
		UnitID:    g.active,
		StartedAt: g.startedAt,
		EndedAt:   g.now(),
		Total:     g.round.Total(),
		Mistakes:  g.engine.Tallies().MistakeTotal,
	})
}

// refreshCatalog recomputes the unit list after the persisted mistakes
// changed. If the active unit vanished, the first unit is dealt.
func (g *Game) refreshCatalog() {
	g.units = catalog.Derive(g.static, g.engine.Persisted())
	unit, fallback := catalog.Resolve(g.units, g.active)
	if !fallback {
		return
	}
	g.log.Info("active unit left the catalog", "unit", g.active, "fallback", unit.ID)
	g.switchTo(unit)
}
