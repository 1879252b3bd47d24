package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy-neural/internal/core"
)

// KeyMap defines the key bindings for every screen.
type KeyMap struct {
	// Round
	Jump  key.Binding
	Start key.Binding
	Back  key.Binding

	// Menu
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Mode    key.Binding
	History key.Binding

	// History
	NextMode key.Binding
	PrevMode key.Binding
	Order    key.Binding

	Quit key.Binding
}

// DefaultKeyMap returns the default bindings: Up jumps, Space starts a round,
// Esc leaves it, and digits pick a mode.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "jump"),
		),
		Start: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "start"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Mode: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "mode"),
		),
		History: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "history"),
		),
		NextMode: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next mode"),
		),
		PrevMode: key.NewBinding(
			key.WithKeys("shift+tab", "left"),
			key.WithHelp("S-tab", "prev mode"),
		),
		Order: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "best/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RoundHelp lists the bindings shown under a running round.
type RoundHelp struct{ KeyMap }

// ShortHelp implements help.KeyMap.
func (k RoundHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Start, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k RoundHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// MenuHelp lists the bindings shown under the mode menu.
type MenuHelp struct{ KeyMap }

// ShortHelp implements help.KeyMap.
func (k MenuHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Mode, k.History, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k MenuHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// HistoryHelp lists the bindings shown under the history table.
type HistoryHelp struct{ KeyMap }

// ShortHelp implements help.KeyMap.
func (k HistoryHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.PrevMode, k.Order, k.Back}
}

// FullHelp implements help.KeyMap.
func (k HistoryHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// MapRoundKey records the action for a key pressed during a round.
// Returns true if the key quits the program.
func (k KeyMap) MapRoundKey(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch {
	case key.Matches(msg, k.Quit):
		return true
	case key.Matches(msg, k.Jump):
		frame.Set(core.ActionJump)
	case key.Matches(msg, k.Start):
		frame.Set(core.ActionStart)
	case key.Matches(msg, k.Back):
		frame.Set(core.ActionQuit)
	}
	return false
}

// MapMenuKey records the menu action for a key: a mode selection for a
// digit, or the history toggle. Returns true if the key was mapped.
func (k KeyMap) MapMenuKey(msg tea.KeyMsg, frame *core.InputFrame) bool {
	switch {
	case key.Matches(msg, k.History):
		frame.Set(core.ActionHistory)
		return true
	case key.Matches(msg, k.Mode):
		n, err := strconv.Atoi(msg.String())
		if err != nil {
			return false
		}
		frame.SelectMode(n)
		return true
	}
	return false
}
