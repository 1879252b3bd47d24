// Package registry is the mode table: it maps the enumerated game modes to the
// factories that build their hooks. Modes register themselves in init()
// functions, so the platform can list and start them without importing each one.
package registry

import (
	"fmt"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/game"
)

// Mode enumerates the game modes. Values double as menu digits.
type Mode int

const (
	ModeStandard Mode = iota + 1
	ModeGenetic
	ModeTraining
)

// Info contains metadata about a registered mode.
type Info struct {
	Mode        Mode
	ID          string // Short name used on the command line
	Title       string
	Description string
}

// Deps are the collaborators handed to a mode factory.
type Deps struct {
	Config config.FlappyConfig
	Rand   *rand.Rand
	Logger *log.Logger

	// NewPredictor returns a fresh, untrained predictor.
	NewPredictor func() agent.Predictor
}

// Factory builds the hooks for one runner.
type Factory func(deps Deps) game.Hooks

type entry struct {
	info    Info
	factory Factory
}

var (
	modes = make(map[Mode]entry)
	mu    sync.RWMutex
)

// Register adds a mode to the table.
// Panics if the mode number or its ID is already registered.
func Register(info Info, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[info.Mode]; exists {
		panic(fmt.Sprintf("registry: mode %d already registered", info.Mode))
	}
	for _, e := range modes {
		if e.info.ID == info.ID {
			panic(fmt.Sprintf("registry: mode %q already registered", info.ID))
		}
	}

	modes[info.Mode] = entry{info: info, factory: f}
}

// List returns every registered mode, ordered by mode number.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(modes))
	for _, e := range modes {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Mode < result[j].Mode
	})

	return result
}

// Create builds the hooks for a mode.
// Returns an error if the mode is not registered.
func Create(m Mode, deps Deps) (game.Hooks, error) {
	mu.RLock()
	e, ok := modes[m]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %d", m)
	}
	return e.factory(deps), nil
}

// Lookup returns a mode's metadata.
func Lookup(m Mode) (Info, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[m]
	return e.info, ok
}

// Exists checks if a mode is registered.
func Exists(m Mode) bool {
	_, ok := Lookup(m)
	return ok
}

// Parse resolves a mode from its number ("2") or its ID ("genetic").
func Parse(s string) (Mode, error) {
	s = strings.TrimSpace(strings.ToLower(s))

	if n, err := strconv.Atoi(s); err == nil {
		if Exists(Mode(n)) {
			return Mode(n), nil
		}
		return 0, fmt.Errorf("registry: unknown mode %d", n)
	}

	mu.RLock()
	defer mu.RUnlock()
	for m, e := range modes {
		if e.info.ID == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("registry: unknown mode %q", s)
}

// String returns the mode's registered ID, or its number if unregistered.
func (m Mode) String() string {
	if info, ok := Lookup(m); ok {
		return info.ID
	}
	return "mode-" + strconv.Itoa(int(m))
}
