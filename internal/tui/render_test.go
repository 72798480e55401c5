package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordmatch/internal/game"
	"github.com/verte-zerg/wordmatch/internal/model"
)

func TestFitTextTruncatesAndPads(t *testing.T) {
	if got := fitText("Hund", 6); got != "Hund  " {
		t.Fatalf("expected padded text, got %q", got)
	}
	got := fitText("Schlüssel", 5)
	if runewidth.StringWidth(got) != 5 || !strings.HasSuffix(got, "…") {
		t.Fatalf("expected truncated text of width 5, got %q", got)
	}
	if got := fitText("漢字漢字", 4); runewidth.StringWidth(got) != 4 {
		t.Fatalf("expected wide runes to fit width 4, got %q", got)
	}
	if got := fitText("x", 0); got != "" {
		t.Fatalf("expected empty text for zero width, got %q", got)
	}
}

func TestCardWidthBounds(t *testing.T) {
	cases := map[int]int{0: maxCardWidth, 20: minCardWidth, 60: 24, 400: maxCardWidth}
	for term, want := range cases {
		if got := cardWidth(term); got != want {
			t.Fatalf("cardWidth(%d) = %d, want %d", term, got, want)
		}
	}
}

func TestRenderCardShowsMarker(t *testing.T) {
	cv := game.CardView{Card: model.Card{PairID: 1, Column: model.Left, Text: "Hund"}, Marked: true}
	out := renderCard(cv, 10, false)
	if !strings.Contains(out, markerGlyph) || !strings.Contains(out, "Hund") {
		t.Fatalf("expected marker and text, got %q", out)
	}
	cv.Marked = false
	if strings.Contains(renderCard(cv, 10, true), markerGlyph) {
		t.Fatalf("expected no marker on unmarked card")
	}
}

func TestRenderCardEmptyKeepsHeight(t *testing.T) {
	full := renderCard(game.CardView{Card: model.Card{Text: "Dog"}}, 10, false)
	empty := renderCard(game.CardView{Empty: true}, 10, false)
	if strings.TrimSpace(empty) != "" {
		t.Fatalf("expected blank card, got %q", empty)
	}
	if strings.Count(full, "\n") != strings.Count(empty, "\n") {
		t.Fatalf("expected empty card to keep card height")
	}
}

func TestRenderPills(t *testing.T) {
	out := renderPills([]game.UnitTab{
		{ID: "review", Name: "Review", Pairs: 2},
		{ID: "animals", Name: "Animals", Pairs: 8, Active: true},
	})
	for _, want := range []string{"Review 2", "Animals 8"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected pill %q in %q", want, out)
		}
	}
}
