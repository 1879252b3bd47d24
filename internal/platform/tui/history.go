package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappy-neural/internal/registry"
	"github.com/vovakirdan/flappy-neural/internal/storage"
)

// maxRounds is the number of rounds loaded into the history table.
const maxRounds = 100

// HistoryModel shows the rounds finished in this session, per mode, either
// best first or newest first.
type HistoryModel struct {
	modes  []registry.Info
	cursor int
	recent bool
	ledger *storage.Ledger
	rounds []storage.Round
	stats  *storage.ModeStats
	table  table.Model
	keys   KeyMap
	width  int
	height int
}

// NewHistoryModel creates the history view and loads the first mode.
func NewHistoryModel(ledger *storage.Ledger, keys KeyMap, width, height int) HistoryModel {
	m := HistoryModel{
		modes:  registry.List(),
		ledger: ledger,
		keys:   keys,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.Reload()
	return m
}

// createTable creates a table sized for the current window.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Round", Width: 7},
		{Title: "Score", Width: 7},
		{Title: "Actors", Width: 7},
		{Title: "Longest", Width: 10},
		{Title: "Speed", Width: 6},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Reload reads the current mode's rounds and totals from the ledger.
func (m *HistoryModel) Reload() {
	m.rounds = nil
	m.stats = nil
	if m.ledger != nil && len(m.modes) > 0 {
		id := m.modes[m.cursor].ID
		load := m.ledger.Top
		if m.recent {
			load = m.ledger.Recent
		}
		if rounds, err := load(id, maxRounds); err == nil {
			m.rounds = rounds
		}
		if stats, err := m.ledger.Stats(id); err == nil {
			m.stats = stats
		}
	}

	rows := make([]table.Row, len(m.rounds))
	for i, r := range m.rounds {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Round),
			fmt.Sprintf("%d", r.Best),
			fmt.Sprintf("%d", r.Actors),
			fmt.Sprintf("%.2fs", r.Longest.Seconds()),
			fmt.Sprintf("%.0f", r.Speed),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Rounds returns the rounds currently shown.
func (m HistoryModel) Rounds() []storage.Round {
	return m.rounds
}

// Recent reports whether rounds are listed newest first.
func (m HistoryModel) Recent() bool {
	return m.recent
}

// Summary is the totals line for the current mode.
func (m HistoryModel) Summary() string {
	if m.stats == nil || m.stats.Rounds == 0 {
		return ""
	}
	return fmt.Sprintf("Rounds %d  Best %d  Avg %.1f  Longest %.2fs  Ticks %d",
		m.stats.Rounds, m.stats.BestScore, m.stats.AvgScore, m.stats.Longest.Seconds(), m.stats.TotalTicks)
}

// Update handles navigation keys and resizes.
func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.NextMode):
			if len(m.modes) > 0 {
				m.cursor = (m.cursor + 1) % len(m.modes)
				m.Reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevMode):
			if len(m.modes) > 0 {
				m.cursor = (m.cursor - 1 + len(m.modes)) % len(m.modes)
				m.Reload()
			}
			return m, nil

		case key.Matches(msg, m.keys.Order):
			m.recent = !m.recent
			m.Reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.Reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history.
func (m HistoryModel) View(footer string) string {
	var b strings.Builder

	title := "ROUND HISTORY"
	if len(m.modes) > 0 {
		title = fmt.Sprintf("ROUND HISTORY - %s", m.modes[m.cursor].Title)
	}
	order := "best first"
	if m.recent {
		order = "newest first"
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(menuDescStyle.Render(order), m.width))
	b.WriteString("\n")
	if line := m.Summary(); line != "" {
		b.WriteString(centerText(menuDescStyle.Render(line), m.width))
	}
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	if len(m.rounds) == 0 {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No rounds finished yet.\nResults last until you quit.")
	} else {
		content = m.table.View()
	}

	for _, line := range strings.Split(tableStyle.Render(content), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(footer, m.width))
	return b.String()
}
