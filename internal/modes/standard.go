package modes

import (
	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/core"
	"github.com/vovakirdan/flappy-neural/internal/game"
	"github.com/vovakirdan/flappy-neural/internal/registry"
)

// Standard is a single human-controlled actor.
type Standard struct{}

// NewStandard creates the standard mode.
func NewStandard(registry.Deps) *Standard {
	return &Standard{}
}

func (m *Standard) ID() string    { return "standard" }
func (m *Standard) Title() string { return "Standard" }

// OnInit adds the player's actor.
func (m *Standard) OnInit(s *game.Session) {
	s.AddActor(agent.Human{})
}

// OnTick forwards the keyboard to the actor.
func (m *Standard) OnTick(s *game.Session, in core.InputFrame) {
	s.Decide(in)
}

// OnRoundEnd implements game.Hooks.
func (m *Standard) OnRoundEnd(*game.Session) {}

func init() {
	registry.Register(registry.Info{
		Mode:        registry.ModeStandard,
		ID:          "standard",
		Title:       "Standard",
		Description: "Fly through the pipes yourself",
	}, func(d registry.Deps) game.Hooks {
		return NewStandard(d)
	})
}
