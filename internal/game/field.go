package game

import (
	"math/rand"

	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"
)

// Field holds the live obstacles in spawn order.
type Field struct {
	obstacles []Obstacle
	rng       *rand.Rand
	cfg       config.FlappyConfig
	passed    int
}

// NewField creates an empty field. Call Replenish to spawn the first obstacle.
func NewField(rng *rand.Rand, cfg config.FlappyConfig) *Field {
	return &Field{
		obstacles: make([]Obstacle, 0, 4),
		rng:       rng,
		cfg:       cfg,
	}
}

// Obstacles returns the live obstacles. The slice must not be modified.
func (f *Field) Obstacles() []Obstacle {
	return f.obstacles
}

// Len returns the number of live obstacles.
func (f *Field) Len() int {
	return len(f.obstacles)
}

// Passed returns how many obstacles have been passed since the field was created.
func (f *Field) Passed() int {
	return f.passed
}

// Advance scrolls every obstacle left.
func (f *Field) Advance(speed float64) {
	for i := range f.obstacles {
		f.obstacles[i].Advance(speed)
	}
}

// Hits reports whether rect collides with any obstacle.
func (f *Field) Hits(rect core.Rect) bool {
	for _, o := range f.obstacles {
		if Collides(rect, o) {
			return true
		}
	}
	return false
}

// Passage marks the earliest unpassed obstacle whose trailing edge is strictly
// left of playerX as passed. It reports whether that happened. An obstacle is
// passed at most once.
func (f *Field) Passage(playerX float64) bool {
	for i := range f.obstacles {
		o := &f.obstacles[i]
		if o.Passed {
			continue
		}
		if o.TrailingEdge() < playerX {
			o.Passed = true
			f.passed++
			return true
		}
		return false
	}
	return false
}

// Replenish spawns a new obstacle when no unpassed obstacle remains, which keeps
// exactly one gap ahead of the actors at all times.
func (f *Field) Replenish() bool {
	for _, o := range f.obstacles {
		if !o.Passed {
			return false
		}
	}
	f.obstacles = append(f.obstacles, NewObstacle(f.rng, f.cfg))
	return true
}

// Evict drops obstacles that have scrolled fully past the left edge, that is
// whose leading edge is below -pipeWidth.
func (f *Field) Evict() int {
	limit := -f.cfg.Obstacles.PipeWidth
	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.X >= limit {
			kept = append(kept, o)
		}
	}
	evicted := len(f.obstacles) - len(kept)
	f.obstacles = kept
	return evicted
}

// Next returns the first obstacle not yet passed.
func (f *Field) Next() (Obstacle, bool) {
	for _, o := range f.obstacles {
		if !o.Passed {
			return o, true
		}
	}
	return Obstacle{}, false
}
