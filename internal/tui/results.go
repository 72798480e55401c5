package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordmatch/internal/game"
	"github.com/verte-zerg/wordmatch/internal/stats"
)

func (m *Model) renderResults(v game.View) string {
	res := v.Results
	width := cardWidth(m.width)
	summary := lipgloss.JoinHorizontal(lipgloss.Top,
		statBox("Total words", res.Total),
		statBox("Solved correctly", res.Solved),
		statBox("Mistakes made", res.Mistakes),
	)
	sections := []string{
		headingStyle.Render(fmt.Sprintf("%s complete", v.Unit.Name)),
		summary,
		"",
		headingStyle.Render("Words needing more practice"),
		weakWordsView(res.WeakWords, width),
		"",
		headingStyle.Render("Common confusions"),
		confusionsView(res.Confusions, width),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func statBox(label string, value int) string {
	return cardStyle.Width(20).Render(mutedStyle.Render(label) + "\n" + statValueStyle.Render(strconv.Itoa(value)))
}

func weakWordsView(words []stats.WeakWord, width int) string {
	if len(words) == 0 {
		return mutedStyle.Render("No mistakes. Well done!")
	}
	rows := make([]table.Row, 0, len(words))
	for _, w := range words {
		rows = append(rows, table.Row{w.Pair.Target, w.Pair.Source, strconv.Itoa(w.Count)})
	}
	return staticTable([]table.Column{
		{Title: "English", Width: width},
		{Title: "Deutsch", Width: width},
		{Title: "×", Width: 3},
	}, rows)
}

func confusionsView(entries []stats.ConfusionEntry, width int) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No wrong matches recorded.")
	}
	rows := make([]table.Row, 0, len(entries))
	for _, c := range entries {
		rows = append(rows, table.Row{confusionLabel(c), strconv.Itoa(c.Count)})
	}
	return staticTable([]table.Column{
		{Title: "EN ↔ DE (wrong)", Width: 2 * width},
		{Title: "×", Width: 3},
	}, rows)
}

// confusionLabel names the English word of the left card and the German word
// it was wrongly matched with.
func confusionLabel(c stats.ConfusionEntry) string {
	return fmt.Sprintf("%s ↔ %s (wrong)", c.Left.Target, c.Right.Source)
}

func staticTable(columns []table.Column, rows []table.Row) string {
	styles := table.DefaultStyles()
	styles.Selected = lipgloss.NewStyle()
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+2),
		table.WithFocused(false),
		table.WithStyles(styles),
	)
	return t.View()
}
