package modes

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"
	"github.com/vovakirdan/flappy-neural/internal/game"
	"github.com/vovakirdan/flappy-neural/internal/registry"
)

// Training records the human's decisions as training pairs. Once the human
// has passed enough obstacles, a predictor is fitted to the recording and
// every later round adds a learned actor flying beside the human.
type Training struct {
	cfg          config.FlappyConfig
	newPredictor func() agent.Predictor
	logger       *log.Logger

	recorder *agent.Recorder
	learned  *agent.Learned
	human    *game.Actor
}

// NewTraining creates the training mode.
func NewTraining(d registry.Deps) *Training {
	return &Training{
		cfg:          d.Config,
		newPredictor: d.NewPredictor,
		logger:       d.Logger,
		recorder:     agent.NewRecorder(d.Config.Training.SampleInterval, d.Config.Training.FreezeAfter),
	}
}

func (m *Training) ID() string    { return "training" }
func (m *Training) Title() string { return "Manual Training" }

// OnInit adds the human and, once trained, the learned actor.
func (m *Training) OnInit(s *game.Session) {
	m.human = s.AddActor(agent.Human{})
	if m.learned != nil {
		s.AddActor(m.learned)
	}
}

// OnTick applies decisions and records the human's.
func (m *Training) OnTick(s *game.Session, in core.InputFrame) {
	obs, ok := s.Observe(m.human)
	jumps := s.Decide(in)

	if !ok || !m.human.Alive || m.recorder.Frozen() {
		return
	}
	if m.recorder.Record(obs, jumps[m.human.ID], m.human.Score) {
		m.train()
	}
}

func (m *Training) train() {
	samples := m.recorder.Samples()
	m.learned = agent.NewLearned(m.newPredictor(), samples, m.cfg.Agent.Threshold)
	m.logger.Info("predictor trained", "samples", len(samples))
}

// OnRoundEnd implements game.Hooks.
func (m *Training) OnRoundEnd(*game.Session) {}

// Trained reports whether the learned actor is available.
func (m *Training) Trained() bool {
	return m.learned != nil
}

// Recorder returns the imitation recorder.
func (m *Training) Recorder() *agent.Recorder {
	return m.recorder
}

// Status implements game.Statuser.
func (m *Training) Status() string {
	if m.learned != nil {
		return fmt.Sprintf("Trained on %d samples", len(m.learned.Samples))
	}
	return fmt.Sprintf("Recording %d samples", m.recorder.Len())
}

func init() {
	registry.Register(registry.Info{
		Mode:        registry.ModeTraining,
		ID:          "training",
		Title:       "Manual Training",
		Description: "Teach a network by playing",
	}, func(d registry.Deps) game.Hooks {
		return NewTraining(d)
	})
}
