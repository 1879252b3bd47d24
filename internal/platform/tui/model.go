package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"
	"github.com/vovakirdan/flappy-neural/internal/game"
	"github.com/vovakirdan/flappy-neural/internal/modes"
	"github.com/vovakirdan/flappy-neural/internal/registry"
	"github.com/vovakirdan/flappy-neural/internal/storage"
)

// view is the screen currently shown.
type view int

const (
	viewMenu view = iota
	viewRound
	viewHistory
)

// Options configure a Model.
type Options struct {
	Config  config.FlappyConfig
	Runtime core.RuntimeConfig
	Ledger  *storage.Ledger // nil disables history
	Logger  *log.Logger     // nil discards logs

	// Mode skips the menu and starts straight in a mode when non-zero.
	Mode registry.Mode
}

// Model is the top-level Bubble Tea model: mode menu -> round -> menu,
// with the round history one key away from the menu.
type Model struct {
	cfg    config.FlappyConfig
	rt     core.RuntimeConfig
	ledger *storage.Ledger
	logger *log.Logger

	keys    KeyMap
	help    help.Model
	screen  *core.Screen
	menu    MenuModel
	history HistoryModel
	runner  *game.Runner
	frame   core.InputFrame

	view     view
	status   string
	quitting bool
}

// NewModel creates the model. A zero seed picks a time-based one.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	m := Model{
		cfg:     opts.Config,
		rt:      rt,
		ledger:  opts.Ledger,
		logger:  logger,
		keys:    keys,
		help:    help.New(),
		screen:  core.NewScreen(rt.ScreenW, max(rt.ScreenH-1, 1)),
		menu:    NewMenuModel(rt.ScreenW, rt.ScreenH),
		history: NewHistoryModel(opts.Ledger, keys, rt.ScreenW, rt.ScreenH),
		frame:   core.NewInputFrame(),
	}

	if opts.Mode != 0 {
		m.startMode(opts.Mode)
	}
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate())
}

// tickRate is the full rate during a round and the idle rate elsewhere.
func (m Model) tickRate() int {
	if m.view == viewRound {
		return m.rt.TickRate
	}
	if m.rt.IdleTickRate > 0 {
		return m.rt.IdleTickRate
	}
	return m.rt.TickRate
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input for the current view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.view {
	case viewRound:
		if m.keys.MapRoundKey(msg, &m.frame) {
			m.quitting = true
			return m, tea.Quit
		}

	case viewHistory:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.History):
			m.view = viewMenu
			return m, nil
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd

	default:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.menu.Up()
		case key.Matches(msg, m.keys.Down):
			m.menu.Down()
		case key.Matches(msg, m.keys.Select):
			if mode, ok := m.menu.Current(); ok {
				m.frame.SelectMode(int(mode))
			}
		default:
			m.keys.MapMenuKey(msg, &m.frame)
		}
	}

	return m, nil
}

// handleResize processes window resize events. A running round keeps going;
// only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.rt.ScreenW = msg.Width
	m.rt.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-1, 1))
	m.menu.Resize(msg.Width, msg.Height)
	m.help.Width = msg.Width
	m.history, _ = m.history.Update(msg)
	return m, nil
}

// handleTick runs one simulation tick, or consumes a pending menu action.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewRound:
		res := m.runner.Step(m.frame)
		if res.State.Quit {
			m.runner = nil
			m.view = viewMenu
		}

	case viewMenu:
		switch {
		case m.frame.Has(core.ActionHistory):
			m.history.Reload()
			m.view = viewHistory
		case m.frame.Has(core.ActionSelectMode):
			m.startMode(registry.Mode(m.frame.Mode))
		}
	}

	m.frame.Clear()
	return m, tickCmd(m.tickRate())
}

// startMode builds a runner for mode and switches to the round view.
func (m *Model) startMode(mode registry.Mode) {
	deps := modes.NewDeps(m.cfg, m.rt.Seed, m.logger)
	hooks, err := registry.Create(mode, deps)
	if err != nil {
		m.status = err.Error()
		return
	}

	ledger, logger := m.ledger, m.logger
	m.runner = game.NewRunner(m.cfg, hooks, m.rt,
		game.WithLogger(m.logger),
		game.WithObserver(func(rs game.RoundSummary) {
			if ledger == nil {
				return
			}
			if _, err := ledger.RecordRound(rs); err != nil {
				logger.Warn("could not record round", "mode", rs.Mode, "error", err)
			}
		}),
	)
	m.status = ""
	m.view = viewRound
	logger.Info("mode selected", "mode", hooks.ID())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewRound:
		m.runner.Render(m.screen)
		return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(RoundHelp{m.keys}))

	case viewHistory:
		return m.history.View(helpStyle.Render(m.help.View(HistoryHelp{m.keys})))
	}

	footer := helpStyle.Render(m.help.View(MenuHelp{m.keys}))
	if m.status != "" {
		footer = colorStyles[core.ColorRed].Render(m.status) + "\n" + footer
	}
	return m.menu.View(m.bestScore, footer)
}

// bestScore returns the session best for a mode, or 0 without a ledger.
func (m Model) bestScore(id string) int {
	if m.ledger == nil {
		return 0
	}
	best, err := m.ledger.BestScore(id)
	if err != nil {
		return 0
	}
	return best
}

// Runner returns the active runner, or nil outside a round.
func (m Model) Runner() *game.Runner {
	return m.runner
}

// Run starts the Bubble Tea program on the local terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
