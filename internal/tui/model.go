// Package tui provides the Bubble Tea matching interface.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/wordmatch/internal/game"
	"github.com/verte-zerg/wordmatch/internal/model"
	"github.com/verte-zerg/wordmatch/internal/round"
)

// Options configures the UI timers.
type Options struct {
	SettleDelay time.Duration
	FadeDelay   time.Duration
	Logger      *slog.Logger
}

type settleMsg struct {
	ticket uint64
}

type fadeMsg struct {
	pairID int
}

// Model implements the Bubble Tea matching UI.
type Model struct {
	game *game.Game
	opts Options
	log  *slog.Logger

	width  int
	height int

	focus model.Column
	slots [2]int

	progress progress.Model
}

// NewModel constructs a matching TUI model over g.
func NewModel(g *game.Game, opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Model{
		game:     g,
		opts:     opts,
		log:      log,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case settleMsg:
		return m, m.handleSettle(msg.ticket)
	case fadeMsg:
		m.game.ExpireIncoming(msg.pairID)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "left", "h":
		m.focus = model.Left
	case "right", "l":
		m.focus = model.Right
	case "up", "k":
		m.moveSlot(-1)
	case "down", "j":
		m.moveSlot(1)
	case "enter", " ":
		return m, m.pick(m.focus, m.slots[m.focus])
	case "tab", "]":
		m.cycleUnit(1)
	case "shift+tab", "[":
		m.cycleUnit(-1)
	case "r":
		m.game.Restart()
		m.resetCursor()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			slot := int(key[0] - '1')
			m.slots[m.focus] = slot
			return m, m.pick(m.focus, slot)
		}
	}
	return m, nil
}

func (m *Model) moveSlot(delta int) {
	n := len(m.game.Round().Order(m.focus))
	if n == 0 {
		return
	}
	m.slots[m.focus] = (m.slots[m.focus] + delta + n) % n
}

func (m *Model) resetCursor() {
	m.focus = model.Left
	m.slots = [2]int{}
}

func (m *Model) cycleUnit(delta int) {
	units := m.game.Units()
	if len(units) < 2 {
		return
	}
	active := m.game.ActiveUnit().ID
	idx := 0
	for i, u := range units {
		if u.ID == active {
			idx = i
			break
		}
	}
	next := units[(idx+delta+len(units))%len(units)]
	if m.game.SelectUnit(next.ID) {
		m.resetCursor()
	}
}

func (m *Model) pick(col model.Column, slot int) tea.Cmd {
	a, ok := m.game.Pick(col, slot)
	if !ok {
		if _, selected := m.game.Round().Selected(col); selected {
			m.focus = col.Opposite()
		}
		return nil
	}
	if !a.Match {
		m.log.Debug("wrong match", "left", a.Left.Text, "right", a.Right.Text)
	}
	return m.after(m.opts.SettleDelay, settleMsg{ticket: a.Ticket})
}

func (m *Model) handleSettle(ticket uint64) tea.Cmd {
	before := m.game.ActiveUnit().ID
	_, next, ok := m.game.Settle(ticket)
	if !ok {
		return nil
	}
	if m.game.ActiveUnit().ID != before {
		m.resetCursor()
		return nil
	}
	if next == round.Empty {
		return nil
	}
	return m.after(m.opts.FadeDelay, fadeMsg{pairID: next})
}

func (m *Model) after(d time.Duration, msg tea.Msg) tea.Cmd {
	if d <= 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(d, func(time.Time) tea.Msg { return msg })
}

// View implements tea.Model.
func (m *Model) View() string {
	v := m.game.View()
	var content string
	if v.Complete && v.Results != nil {
		content = m.renderResults(v)
	} else {
		content = m.renderBoard(v)
	}
	header := renderPills(v.Units)
	footer := m.renderFooter(v)
	body := lipgloss.JoinVertical(lipgloss.Center, header, "", content, "", footer, footerStyle.Render(helpLine(v.Complete)))
	if m.width == 0 || m.height == 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

func (m *Model) renderBoard(v game.View) string {
	width := cardWidth(m.width)
	leftSlot, rightSlot := -1, -1
	if m.focus == model.Left {
		leftSlot = m.slots[model.Left]
	} else {
		rightSlot = m.slots[model.Right]
	}
	left := renderColumn(v.Left, width, leftSlot)
	right := renderColumn(v.Right, width, rightSlot)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, strings.Repeat(" ", columnGap), right)
}

func (m *Model) renderFooter(v game.View) string {
	pct := 0.0
	if v.Total > 0 {
		pct = float64(v.Solved) / float64(v.Total)
	}
	m.progress.Width = 2*cardWidth(m.width) + columnGap
	bar := m.progress.ViewAs(pct)
	stats := fmt.Sprintf("Solved %d/%d  Mistakes %d", v.Solved, v.Total, v.Mistakes)
	return lipgloss.JoinVertical(lipgloss.Center, bar, footerStyle.Render(stats))
}

func helpLine(complete bool) string {
	if complete {
		return "r restart  tab unit  q quit"
	}
	return "←/→ column  ↑/↓ move  enter pick  1-9 slot  tab unit  r restart  q quit"
}
