// Package stats aggregates round results and round history.
package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/verte-zerg/wordmatch/internal/catalog"
	"github.com/verte-zerg/wordmatch/internal/model"
)

const sparkChars = " .:-=+*#%@"

const (
	sparkLabelWidth  = 10
	defaultTermWidth = 80
)

// RoundAccuracy is the share of first-try matches: solved pairs over solved
// pairs plus wrong matches.
func RoundAccuracy(total, mistakes int) float64 {
	den := total + mistakes
	if den <= 0 {
		return 0
	}
	return float64(total) / float64(den)
}

// MovingAverage computes a rolling mean over the provided window size.
func MovingAverage(values []float64, window int) []float64 {
	if window <= 1 || len(values) == 0 {
		out := make([]float64, len(values))
		copy(out, values)
		return out
	}
	out := make([]float64, len(values))
	var sum float64
	for i := 0; i < len(values); i++ {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}
		den := float64(i + 1)
		if i >= window {
			den = float64(window)
		}
		out[i] = sum / den
	}
	return out
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary of completed rounds.
func RenderSummary(w io.Writer, rounds []model.RoundRecord) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds found.")
		return err
	}
	var words, mistakes int
	var totalAcc, bestAcc float64
	var totalDur time.Duration
	for _, r := range rounds {
		words += r.Total
		mistakes += r.Mistakes
		acc := RoundAccuracy(r.Total, r.Mistakes)
		totalAcc += acc
		if acc > bestAcc {
			bestAcc = acc
		}
		totalDur += r.EndedAt.Sub(r.StartedAt)
	}
	count := float64(len(rounds))
	lines := []string{
		"Summary",
		fmt.Sprintf("Rounds: %d", len(rounds)),
		fmt.Sprintf("Words matched: %d", words),
		fmt.Sprintf("Avg mistakes: %.2f", float64(mistakes)/count),
		fmt.Sprintf("Avg accuracy: %.2f%%", (totalAcc/count)*100),
		fmt.Sprintf("Best accuracy: %.2f%%", bestAcc*100),
		fmt.Sprintf("Avg duration: %s", (totalDur / time.Duration(len(rounds))).Round(time.Second)),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderHistory prints mistake and accuracy sparklines for the most recent
// rounds that fit in width.
func RenderHistory(w io.Writer, rounds []model.RoundRecord, window, width int) error {
	if len(rounds) == 0 {
		return nil
	}
	mistakes := make([]float64, len(rounds))
	accs := make([]float64, len(rounds))
	for i, r := range rounds {
		mistakes[i] = float64(r.Mistakes)
		accs[i] = RoundAccuracy(r.Total, r.Mistakes) * 100
	}
	mistakes = tail(MovingAverage(mistakes, window), width-sparkLabelWidth)
	accs = tail(MovingAverage(accs, window), width-sparkLabelWidth)

	lines := []string{
		"History",
		padCell("Mistakes", sparkLabelWidth, false) + Sparkline(mistakes),
		padCell("Accuracy", sparkLabelWidth, false) + Sparkline(accs),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderReview prints the persisted review set, most mistaken first.
func RenderReview(w io.Writer, static []model.Unit, mistakes map[string]int) error {
	type row struct {
		key   string
		pair  model.Pair
		count int
	}
	rows := make([]row, 0, len(mistakes))
	for gk, n := range mistakes {
		if n <= 0 {
			continue
		}
		unitID, idx, ok := catalog.ParseGlobalKey(gk)
		if !ok {
			continue
		}
		unit, ok := catalog.Find(static, unitID)
		if !ok {
			continue
		}
		pair, ok := unit.Pair(idx)
		if !ok {
			continue
		}
		rows = append(rows, row{key: gk, pair: pair, count: n})
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No words to review.")
		return err
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].count == rows[j].count {
			return rows[i].key < rows[j].key
		}
		return rows[i].count > rows[j].count
	})

	headers := []string{"Key", "Deutsch", "English", "Mistakes"}
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, []string{r.key, r.pair.Source, r.pair.Target, fmt.Sprintf("%d", r.count)})
	}
	for _, line := range formatTable(headers, tableRows, map[int]bool{3: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderUnits prints the unit catalog with pair counts.
func RenderUnits(w io.Writer, units []model.Unit) error {
	headers := []string{"ID", "Name", "Pairs"}
	rows := make([][]string, 0, len(units))
	for _, u := range units {
		rows = append(rows, []string{u.ID, u.Name, fmt.Sprintf("%d", len(u.Pairs))})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{2: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// TerminalWidth returns the stdout width, or a default when stdout is not a terminal.
func TerminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTermWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return defaultTermWidth
	}
	return width
}

func tail(values []float64, n int) []float64 {
	if n <= 0 {
		n = 1
	}
	if len(values) <= n {
		return values
	}
	return values[len(values)-n:]
}
