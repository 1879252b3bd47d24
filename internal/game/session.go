package game

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"
)

// Session is one round: a field of obstacles and the actors flying through it.
//
// Time inside a session is simulated: the clock advances by one tick interval
// per Tick, so lifetimes are reproducible for a given seed.
type Session struct {
	cfg    config.FlappyConfig
	field  *Field
	actors []*Actor
	ramp   config.SpeedRamp

	speed float64
	best  int
	ticks int

	start    time.Time
	interval time.Duration
}

// NewSession starts a round at start, advancing interval per tick.
func NewSession(cfg config.FlappyConfig, rng *rand.Rand, start time.Time, interval time.Duration) *Session {
	s := &Session{
		cfg:      cfg,
		field:    NewField(rng, cfg),
		ramp:     config.NewSpeedRamp(cfg),
		start:    start,
		interval: interval,
	}
	s.speed = s.ramp.Speed(0)
	s.field.Replenish()
	return s
}

// Config returns the configuration the session runs with.
func (s *Session) Config() config.FlappyConfig { return s.cfg }

// Field returns the obstacle field.
func (s *Session) Field() *Field { return s.field }

// Actors returns the actors in the order they were added.
func (s *Session) Actors() []*Actor { return s.actors }

// Speed returns the current scroll speed.
func (s *Session) Speed() float64 { return s.speed }

// Best returns the highest score of any actor, dead or alive.
func (s *Session) Best() int { return s.best }

// Ticks returns the number of ticks run so far.
func (s *Session) Ticks() int { return s.ticks }

// Now returns the simulated clock.
func (s *Session) Now() time.Time {
	return s.start.Add(time.Duration(s.ticks) * s.interval)
}

// AddActor adds a live actor created at the current simulated time.
func (s *Session) AddActor(control agent.Controller) *Actor {
	a := NewActor(len(s.actors), s.cfg, control, s.Now())
	s.actors = append(s.actors, a)
	return a
}

// Alive returns the number of live actors.
func (s *Session) Alive() int {
	n := 0
	for _, a := range s.actors {
		if a.Alive {
			n++
		}
	}
	return n
}

// Over reports whether every actor is dead.
func (s *Session) Over() bool {
	return s.Alive() == 0
}

// Observe builds the controller input for an actor. ok is false when there is
// no obstacle ahead; the observation then carries only the world size.
func (s *Session) Observe(a *Actor) (obs agent.Observation, ok bool) {
	w, h := s.cfg.Screen.Width, s.cfg.Screen.Height
	next, ok := s.field.Next()
	if !ok {
		return agent.Observation{Width: w, Height: h}, false
	}
	return agent.NewObservation(next.GapCenterY(), a.Y, next.CenterX(), a.X, w, h), true
}

// Decide asks every live, controlled actor whether to jump and applies the
// answer. The result is indexed like Actors.
func (s *Session) Decide(in core.InputFrame) []bool {
	jumps := make([]bool, len(s.actors))
	for i, a := range s.actors {
		if !a.Alive || a.Control == nil {
			continue
		}
		obs, _ := s.Observe(a)
		if a.Control.Decide(obs, in) {
			a.Jump()
			jumps[i] = true
		}
	}
	return jumps
}

// Tick advances the round by one step: obstacles move, colliding actors die,
// survivors move, a cleared obstacle scores for every survivor, the field is
// refilled and trimmed, and the speed follows the best score.
func (s *Session) Tick() {
	s.ticks++
	now := s.Now()

	s.field.Advance(s.speed)

	for _, a := range s.actors {
		if a.Alive && s.field.Hits(a.Rect()) {
			a.Kill(now)
		}
	}

	for _, a := range s.actors {
		a.Tick(now)
	}

	if s.field.Passage(s.cfg.Player.X) {
		for _, a := range s.actors {
			if !a.Alive {
				continue
			}
			a.Score++
			if a.Score > s.best {
				s.best = a.Score
			}
		}
	}
	s.field.Replenish()
	s.field.Evict()

	s.speed = s.ramp.Speed(s.best)
}

// End kills every remaining actor at the current simulated time.
func (s *Session) End() {
	now := s.Now()
	for _, a := range s.actors {
		a.Kill(now)
	}
}

// Longest returns the longest lifetime among dead actors.
func (s *Session) Longest() time.Duration {
	var longest time.Duration
	for _, a := range s.actors {
		if !a.Alive && a.Lifetime > longest {
			longest = a.Lifetime
		}
	}
	return longest
}
