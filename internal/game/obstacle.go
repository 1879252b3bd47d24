package game

import (
	"math/rand"

	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"
)

// Obstacle is a pipe pair: a top section above the gap and a bottom section
// below it, scrolling left together.
type Obstacle struct {
	X         float64 // Leading (left) edge
	GapY      float64 // Top of the gap
	GapHeight float64
	Width     float64
	Passed    bool // Set once, when the actor line clears the trailing edge

	worldH    float64
	baseWidth float64
}

// NewObstacle spawns an obstacle at the right edge of the world with a random
// gap. Gap height is drawn from [MinGap, MaxGap] and the gap top from
// [TopMargin, height-MaxGap], both inclusive.
func NewObstacle(rng *rand.Rand, cfg config.FlappyConfig) Obstacle {
	oc := cfg.Obstacles
	gapHeight := randInt(rng, oc.MinGap, oc.MaxGap)
	gapY := randInt(rng, oc.TopMargin, int(cfg.Screen.Height)-oc.MaxGap)

	return Obstacle{
		X:         cfg.Screen.Width,
		GapY:      float64(gapY),
		GapHeight: float64(gapHeight),
		Width:     oc.PipeWidth,
		worldH:    cfg.Screen.Height,
		baseWidth: oc.PipeWidth,
	}
}

// randInt returns a value in [lo, hi], or lo when the range is empty.
func randInt(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

// TopRect returns the section above the gap.
func (o Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X, 0, o.Width, o.GapY)
}

// BottomRect returns the section below the gap down to the floor.
func (o Obstacle) BottomRect() core.Rect {
	bottom := o.GapY + o.GapHeight
	return core.NewRect(o.X, bottom, o.Width, o.worldH-bottom)
}

// Advance scrolls the obstacle left by speed. A collapsed width is restored
// first so the obstacle never turns into an invisible, unhittable pipe.
func (o *Obstacle) Advance(speed float64) {
	if o.Width <= 0 {
		o.Width = o.baseWidth
	}
	o.X -= speed
}

// GapCenterY returns the vertical center of the gap.
func (o Obstacle) GapCenterY() float64 {
	return o.GapY + o.GapHeight/2
}

// CenterX returns the horizontal center of the obstacle.
func (o Obstacle) CenterX() float64 {
	return o.X + o.Width/2
}

// TrailingEdge returns the right edge of the obstacle.
func (o Obstacle) TrailingEdge() float64 {
	return o.X + o.Width
}
