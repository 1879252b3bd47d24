package game

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"
)

// Hooks is what a mode plugs into the runner. The hooks are fixed for the
// lifetime of a Runner.
type Hooks interface {
	// ID returns the mode's short name.
	ID() string

	// Title returns the display name.
	Title() string

	// OnInit populates a freshly created session with actors.
	OnInit(s *Session)

	// OnTick runs before the physics step. Modes normally call s.Decide(in).
	OnTick(s *Session, in core.InputFrame)

	// OnRoundEnd consumes the finished round.
	OnRoundEnd(s *Session)
}

// Statuser is implemented by hooks that add a line to the HUD.
type Statuser interface {
	Status() string
}

// RoundSummary describes a finished round.
type RoundSummary struct {
	Mode     string
	Round    int
	Best     int
	Actors   int
	Ticks    int
	Longest  time.Duration
	Speed    float64
	Finished time.Time
}

// Runner drives rounds of one mode through the start/run cycle:
// awaiting start, running, and back to awaiting start once every actor is dead.
type Runner struct {
	cfg      config.FlappyConfig
	hooks    Hooks
	rng      *rand.Rand
	interval time.Duration
	clock    func() time.Time
	logger   *log.Logger
	observer func(RoundSummary)

	session  *Session
	phase    core.Phase
	round    int
	bestEver int
	last     RoundSummary
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for round transitions.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithObserver registers a callback invoked after every finished round.
func WithObserver(fn func(RoundSummary)) Option {
	return func(r *Runner) { r.observer = fn }
}

// WithClock replaces the wall clock used to stamp session starts.
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) { r.clock = clock }
}

// NewRunner creates a runner awaiting its first start.
func NewRunner(cfg config.FlappyConfig, hooks Hooks, rt core.RuntimeConfig, opts ...Option) *Runner {
	seed := rt.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	r := &Runner{
		cfg:      cfg,
		hooks:    hooks,
		rng:      rand.New(rand.NewSource(seed)),
		interval: rt.TickInterval(),
		clock:    time.Now,
		logger:   log.New(io.Discard),
		phase:    core.PhaseAwaitingStart,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Hooks returns the mode hooks.
func (r *Runner) Hooks() Hooks { return r.hooks }

// Session returns the current or last session, or nil before the first start.
func (r *Runner) Session() *Session { return r.session }

// Phase returns the lifecycle phase.
func (r *Runner) Phase() core.Phase { return r.phase }

// Last returns the summary of the most recent finished round.
func (r *Runner) Last() RoundSummary { return r.last }

// BestEver returns the best score over every round of this runner.
func (r *Runner) BestEver() int { return r.bestEver }

// Step advances the runner by one tick.
func (r *Runner) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		st := r.State()
		st.Quit = true
		return core.StepResult{State: st}
	}

	if r.phase == core.PhaseAwaitingStart {
		if in.Has(core.ActionStart) {
			r.start()
		}
		return core.StepResult{State: r.State()}
	}

	r.hooks.OnTick(r.session, in)
	r.session.Tick()

	if !r.session.Over() {
		return core.StepResult{State: r.State()}
	}

	r.finish()
	return core.StepResult{State: r.State(), RoundOver: true}
}

// Play runs one whole round without input. A round still running after
// maxTicks is ended by killing the remaining actors; maxTicks <= 0 means no limit.
func (r *Runner) Play(maxTicks int) RoundSummary {
	if r.phase == core.PhaseRunning {
		r.session.End()
		r.finish()
	}
	r.start()

	var none core.InputFrame
	for r.phase == core.PhaseRunning {
		if maxTicks > 0 && r.session.Ticks() >= maxTicks {
			r.session.End()
			r.finish()
			break
		}
		r.Step(none)
	}
	return r.last
}

func (r *Runner) start() {
	r.round++
	r.session = NewSession(r.cfg, r.rng, r.clock(), r.interval)
	r.hooks.OnInit(r.session)
	r.phase = core.PhaseRunning

	r.logger.Debug("round started",
		"mode", r.hooks.ID(),
		"round", r.round,
		"actors", len(r.session.Actors()),
	)
}

func (r *Runner) finish() {
	s := r.session
	r.hooks.OnRoundEnd(s)
	r.phase = core.PhaseAwaitingStart

	if s.Best() > r.bestEver {
		r.bestEver = s.Best()
	}
	r.last = RoundSummary{
		Mode:     r.hooks.ID(),
		Round:    r.round,
		Best:     s.Best(),
		Actors:   len(s.Actors()),
		Ticks:    s.Ticks(),
		Longest:  s.Longest(),
		Speed:    s.Speed(),
		Finished: s.Now(),
	}

	r.logger.Debug("round over",
		"mode", r.last.Mode,
		"round", r.last.Round,
		"best", r.last.Best,
		"ticks", r.last.Ticks,
		"longest", r.last.Longest,
	)

	if r.observer != nil {
		r.observer(r.last)
	}
}

// State returns the snapshot the platform layer reads.
func (r *Runner) State() core.GameState {
	st := core.GameState{
		Phase: r.phase,
		Round: r.round,
	}
	if r.session != nil {
		st.Score = r.session.Best()
		st.Alive = r.session.Alive()
		st.Total = len(r.session.Actors())
	}
	return st
}
