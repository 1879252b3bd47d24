// Package modes implements the three game modes and registers them in the
// mode table: a human playing alone, a population of learned actors evolving
// between rounds, and a human teaching a predictor by example.
package modes

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/neural"
	"github.com/vovakirdan/flappy-neural/internal/registry"
)

// NewDeps builds factory dependencies with a neural predictor per actor.
// A zero seed uses the current time; a nil logger discards output.
func NewDeps(cfg config.FlappyConfig, seed int64, logger *log.Logger) registry.Deps {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := rand.New(rand.NewSource(seed))

	return registry.Deps{
		Config:       cfg,
		Rand:         rng,
		Logger:       logger,
		NewPredictor: neural.Factory(rng, cfg.Network),
	}
}
