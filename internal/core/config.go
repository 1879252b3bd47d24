package core

import "time"

// RuntimeConfig contains configuration passed to the simulation at startup.
type RuntimeConfig struct {
	ScreenW      int   // Terminal width in characters
	ScreenH      int   // Terminal height in characters
	TickRate     int   // Simulation ticks per second while a round runs (default 60)
	IdleTickRate int   // Ticks per second while waiting for mode selection (default 10)
	Seed         int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:      80,
		ScreenH:      24,
		TickRate:     60,
		IdleTickRate: 10,
		Seed:         0, // 0 means use current time in platform layer
	}
}

// TickInterval returns the duration of one simulation tick.
func (c RuntimeConfig) TickInterval() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Phase is the position of a game in its round lifecycle.
type Phase int

const (
	PhaseAwaitingStart Phase = iota
	PhaseRunning
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingStart:
		return "awaiting-start"
	case PhaseRunning:
		return "running"
	default:
		return "unknown"
	}
}

// GameState is the snapshot the platform reads after each tick.
type GameState struct {
	Phase Phase
	Score int // Best score among actors of the current (or last) round
	Alive int // Live actors in the current round
	Total int // Actors in the current round
	Round int // Rounds started so far (generation number in GA mode)
	Quit  bool
}

// GameOver reports whether the last round has finished.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseAwaitingStart && s.Round > 0
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State GameState

	// RoundOver is set on the tick in which the last actor died.
	RoundOver bool
}
