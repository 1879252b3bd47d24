package modes

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"
	"github.com/vovakirdan/flappy-neural/internal/game"
	"github.com/vovakirdan/flappy-neural/internal/genetic"
	"github.com/vovakirdan/flappy-neural/internal/registry"
)

// Genetic flies a population of learned actors. Each round is one
// generation; the next generation's training sets are bred from the
// survivors' when it ends.
type Genetic struct {
	cfg          config.FlappyConfig
	breeder      *genetic.Breeder
	newPredictor func() agent.Predictor
	logger       *log.Logger

	pending [][]agent.Sample
	history []genetic.Stats
}

// NewGenetic creates the genetic mode.
func NewGenetic(d registry.Deps) *Genetic {
	return &Genetic{
		cfg:          d.Config,
		breeder:      genetic.NewBreeder(d.Rand, d.Config.Genetic, d.Config.Screen.Width, d.Config.Screen.Height),
		newPredictor: d.NewPredictor,
		logger:       d.Logger,
	}
}

func (m *Genetic) ID() string    { return "genetic" }
func (m *Genetic) Title() string { return "Genetic Algorithm" }

// OnInit trains one predictor per training set and adds its actor.
func (m *Genetic) OnInit(s *game.Session) {
	if m.pending == nil {
		m.pending = m.breeder.Seed()
	}
	for _, samples := range m.pending {
		s.AddActor(agent.NewLearned(m.newPredictor(), samples, m.cfg.Agent.Threshold))
	}
	m.pending = nil
}

// OnTick lets every predictor decide.
func (m *Genetic) OnTick(s *game.Session, in core.InputFrame) {
	s.Decide(in)
}

// OnRoundEnd records the generation and breeds the next one.
func (m *Genetic) OnRoundEnd(s *game.Session) {
	pop := make([]genetic.Individual, 0, len(s.Actors()))
	for _, a := range s.Actors() {
		ind := genetic.Individual{Lifetime: a.Lifetime, Score: a.Score}
		if l, ok := a.Control.(*agent.Learned); ok {
			ind.Samples = l.Samples
		}
		pop = append(pop, ind)
	}

	stats := genetic.Summarize(m.breeder.Generation(), pop)
	m.history = append(m.history, stats)
	m.logger.Info("generation finished",
		"generation", stats.Generation,
		"best_score", stats.BestScore,
		"best_lifetime", fmt.Sprintf("%.2fs", stats.BestLifetime),
		"mean_lifetime", fmt.Sprintf("%.2fs", stats.MeanLifetime),
	)

	m.pending = m.breeder.Next(pop)
}

// Generation returns the generation the next round will fly.
func (m *Genetic) Generation() int {
	return m.breeder.Generation()
}

// History returns the statistics of every finished generation.
func (m *Genetic) History() []genetic.Stats {
	out := make([]genetic.Stats, len(m.history))
	copy(out, m.history)
	return out
}

// Status implements game.Statuser.
func (m *Genetic) Status() string {
	return fmt.Sprintf("Gen %d", m.breeder.Generation())
}

func init() {
	registry.Register(registry.Info{
		Mode:        registry.ModeGenetic,
		ID:          "genetic",
		Title:       "Genetic Algorithm",
		Description: "Watch a population of networks evolve",
	}, func(d registry.Deps) game.Hooks {
		return NewGenetic(d)
	})
}
