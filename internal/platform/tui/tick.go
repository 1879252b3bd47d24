// Package tui provides the Bubble Tea front end: the fixed-rate tick loop,
// key bindings, the mode menu, the round history and the SSH transport.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick message after a
// tickRate-per-second interval. Each handled tick schedules the next one, so
// the rate can change between ticks.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
