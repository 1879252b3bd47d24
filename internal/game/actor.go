// Package game implements the side-scrolling simulation: actors falling under
// gravity, obstacle pairs scrolling left, and the round lifecycle around them.
package game

import (
	"time"

	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"
)

// Actor is one bird. Its horizontal position never changes; the world
// scrolls past it. Y grows downward and Velocity is positive upward.
type Actor struct {
	ID       int
	X        float64
	Y        float64
	Velocity float64
	Size     float64
	Alive    bool
	Score    int

	CreatedAt time.Time
	Lifetime  time.Duration // Zero until the actor dies

	Control agent.Controller // nil never jumps
	Color   core.Color

	gravity float64
	impulse float64
	floor   float64
}

// NewActor places a live actor at the configured start position.
func NewActor(id int, cfg config.FlappyConfig, control agent.Controller, now time.Time) *Actor {
	return &Actor{
		ID:        id,
		X:         cfg.Player.X,
		Y:         cfg.Player.StartY,
		Size:      cfg.Player.Size,
		Alive:     true,
		CreatedAt: now,
		Control:   control,
		Color:     core.Palette[id%len(core.Palette)],
		gravity:   cfg.Physics.Gravity,
		impulse:   cfg.Physics.JumpImpulse,
		floor:     cfg.Screen.Height,
	}
}

// Tick applies one step of motion. Leaving the world through the top or the
// bottom kills the actor in place.
func (a *Actor) Tick(now time.Time) {
	if !a.Alive {
		return
	}

	newY := a.Y - a.Velocity
	if newY <= 0 || newY >= a.floor {
		a.Kill(now)
		return
	}
	a.Y = newY
	a.Velocity -= a.gravity
}

// Jump sets the upward velocity to the jump impulse. It does not accumulate.
func (a *Actor) Jump() {
	if !a.Alive {
		return
	}
	a.Velocity = a.impulse
}

// Kill marks the actor dead and fixes its lifetime. Later calls do nothing.
func (a *Actor) Kill(now time.Time) {
	if !a.Alive {
		return
	}
	a.Alive = false
	a.Lifetime = now.Sub(a.CreatedAt)
}

// Rect returns the actor's collision box.
func (a *Actor) Rect() core.Rect {
	return core.NewRect(a.X, a.Y, a.Size, a.Size)
}

// CenterY returns the vertical center of the collision box.
func (a *Actor) CenterY() float64 {
	return a.Y + a.Size/2
}
