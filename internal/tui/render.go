package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/wordmatch/internal/game"
)

const (
	minCardWidth = 8
	maxCardWidth = 32
	columnGap    = 4
	markerGlyph  = "•"
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3A3A3A")).
			Foreground(lipgloss.Color("#F0F0F0")).
			Padding(0, 1)
	emptyCardStyle = lipgloss.NewStyle().
			Border(lipgloss.HiddenBorder()).
			Padding(0, 1)
	focusBorder    = lipgloss.Color("#C89A3A")
	selectedBg     = lipgloss.Color("#D9D9D9")
	selectedFg     = lipgloss.Color("#141414")
	matchBg        = lipgloss.Color("#22C55E")
	wrongBg        = lipgloss.Color("#EF4444")
	flashFg        = lipgloss.Color("#FFFFFF")
	incomingFg     = lipgloss.Color("#8C8C8C")
	markerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pillStyle      = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("#BFBFBF")).Background(lipgloss.Color("#262626"))
	activePill     = pillStyle.Foreground(lipgloss.Color("#141414")).Background(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	headingStyle   = lipgloss.NewStyle().Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	statValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
)

// fitText truncates s to width display cells and pads it on the right.
func fitText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

// cardWidth returns the inner text width of a card for a terminal width.
func cardWidth(termWidth int) int {
	if termWidth <= 0 {
		return maxCardWidth
	}
	// Two columns, each card adds border and padding.
	w := (termWidth-columnGap)/2 - 4
	if w < minCardWidth {
		return minCardWidth
	}
	if w > maxCardWidth {
		return maxCardWidth
	}
	return w
}

func cardLabel(cv game.CardView, width int) string {
	if !cv.Marked {
		return fitText(cv.Card.Text, width)
	}
	mark := markerGlyph + " "
	return markerStyle.Render(mark) + fitText(cv.Card.Text, width-runewidth.StringWidth(mark))
}

func renderCard(cv game.CardView, width int, focused bool) string {
	if cv.Empty {
		return emptyCardStyle.Render(strings.Repeat(" ", width))
	}
	style := cardStyle
	switch {
	case cv.Flash == game.FlashMatch:
		style = style.Background(matchBg).Foreground(flashFg)
	case cv.Flash == game.FlashWrong:
		style = style.Background(wrongBg).Foreground(flashFg)
	case cv.Selected:
		style = style.Background(selectedBg).Foreground(selectedFg)
	case cv.Incoming:
		style = style.Foreground(incomingFg)
	}
	if focused {
		style = style.BorderForeground(focusBorder)
	}
	return style.Render(cardLabel(cv, width))
}

func renderColumn(cards []game.CardView, width int, focusedSlot int) string {
	rendered := make([]string, len(cards))
	for i, cv := range cards {
		rendered[i] = renderCard(cv, width, i == focusedSlot)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func renderPills(tabs []game.UnitTab) string {
	pills := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("%s %d", tab.Name, tab.Pairs)
		if tab.Active {
			pills = append(pills, activePill.Render(label))
		} else {
			pills = append(pills, pillStyle.Render(label))
		}
	}
	return strings.Join(pills, " ")
}
