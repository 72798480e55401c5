// Package model defines shared data structures.
package model

import (
	"strconv"
	"time"
)

// ReviewUnitID is the id of the synthetic unit built from persisted mistakes.
const ReviewUnitID = "review"

// ReviewUnitName is the display name of the review unit.
const ReviewUnitName = "Review"

// Config defines play settings.
type Config struct {
	Unit        string
	Window      int           `validate:"gte=1,lte=10"`
	SettleDelay time.Duration `validate:"gte=0,lte=5s"`
	FadeDelay   time.Duration `validate:"gte=0,lte=5s"`
	UnitsFile   string
	Ephemeral   bool
	LogLevel    string `validate:"oneof=debug info warn error"`
}

// StatsConfig defines filters for round history output.
type StatsConfig struct {
	Unit  string
	Since *time.Time
	Last  int
}

// SourcePair is a translation pair as supplied by a units file.
type SourcePair struct {
	EN string `toml:"en" validate:"required"`
	DE string `toml:"de" validate:"required"`
}

// SourceUnit is a unit as supplied by a units file, before keys are assigned.
type SourceUnit struct {
	ID    string       `toml:"id" validate:"required,excludes=:,ne=review"`
	Name  string       `toml:"name" validate:"required"`
	Pairs []SourcePair `toml:"pairs" validate:"required,min=1,dive"`
}

// Pair is an ingested translation pair. Source is shown in the left column,
// Target in the right one.
type Pair struct {
	LocalIndex int
	GlobalKey  string
	Source     string
	Target     string
}

// Unit is an ordered list of pairs with stable global keys.
type Unit struct {
	ID    string
	Name  string
	Pairs []Pair
}

// Pair returns the pair with the given 1-based local index.
func (u Unit) Pair(localIndex int) (Pair, bool) {
	if localIndex < 1 || localIndex > len(u.Pairs) {
		return Pair{}, false
	}
	return u.Pairs[localIndex-1], true
}

// GlobalKey builds the process-wide key for a pair of a static unit.
func GlobalKey(unitID string, localIndex int) string {
	return unitID + ":" + strconv.Itoa(localIndex)
}

// Column identifies one side of the board.
type Column int

const (
	Left Column = iota
	Right
)

// Opposite returns the other column.
func (c Column) Opposite() Column {
	if c == Left {
		return Right
	}
	return Left
}

func (c Column) String() string {
	if c == Left {
		return "de"
	}
	return "en"
}

// Card is a pair presented in one column. Two cards with the same PairID in
// different columns are distinct cards.
type Card struct {
	PairID int
	Column Column
	Text   string
}

// Key returns the structural identity of the card.
func (c Card) Key() string {
	return strconv.Itoa(c.PairID) + "-" + c.Column.String()
}

// RoundRecord captures a completed round for history.
type RoundRecord struct {
	ID        string
	UnitID    string
	StartedAt time.Time
	EndedAt   time.Time
	Total     int
	Mistakes  int
}
