package modes

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"
	"github.com/vovakirdan/flappy-neural/internal/game"
	"github.com/vovakirdan/flappy-neural/internal/registry"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testConfig() config.FlappyConfig {
	cfg := config.DefaultFlappyConfig()
	cfg.Genetic.Population = 4
	cfg.Genetic.Elite = 2
	cfg.Network.Epochs = 5
	return cfg
}

func testRuntime() core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.Seed = 7
	return rt
}

func TestModesRegistered(t *testing.T) {
	tests := []struct {
		mode registry.Mode
		id   string
	}{
		{registry.ModeStandard, "standard"},
		{registry.ModeGenetic, "genetic"},
		{registry.ModeTraining, "training"},
	}
	deps := NewDeps(testConfig(), 1, nil)
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			hooks, err := registry.Create(tt.mode, deps)
			if err != nil {
				t.Fatalf("Create(%d) error = %v", tt.mode, err)
			}
			if hooks.ID() != tt.id {
				t.Errorf("ID() = %q, want %q", hooks.ID(), tt.id)
			}
			info, _ := registry.Lookup(tt.mode)
			if info.Title != hooks.Title() {
				t.Errorf("registered title %q != hooks title %q", info.Title, hooks.Title())
			}
		})
	}
}

func TestStandardFollowsKeyboard(t *testing.T) {
	r := game.NewRunner(testConfig(), NewStandard(registry.Deps{}), testRuntime())
	r.Step(core.Frame(core.ActionStart))

	actors := r.Session().Actors()
	if len(actors) != 1 || agent.Kind(actors[0].Control) != "human" {
		t.Fatalf("actors = %d, kind = %s", len(actors), agent.Kind(actors[0].Control))
	}

	r.Step(core.Frame(core.ActionJump))
	// Jump sets velocity 5, the physics step then applies gravity once.
	if got, want := actors[0].Velocity, 4.02; math.Abs(got-want) > 1e-9 {
		t.Errorf("Velocity = %v, want %v", got, want)
	}
	if actors[0].Y != 45 {
		t.Errorf("Y = %v, want 45", actors[0].Y)
	}
}

func TestGeneticBreedsEachRound(t *testing.T) {
	cfg := testConfig()
	m := NewGenetic(NewDeps(cfg, 3, nil))
	r := game.NewRunner(cfg, m, testRuntime())

	r.Play(120)
	actors := r.Session().Actors()
	if len(actors) != cfg.Genetic.Population {
		t.Fatalf("generation 0 has %d actors, want %d", len(actors), cfg.Genetic.Population)
	}
	for i, a := range actors {
		l, ok := a.Control.(*agent.Learned)
		if !ok {
			t.Fatalf("actor %d control is %T", i, a.Control)
		}
		if len(l.Samples) != cfg.Genetic.InitialSamples {
			t.Errorf("actor %d trained on %d samples, want %d", i, len(l.Samples), cfg.Genetic.InitialSamples)
		}
	}

	r.Play(120)
	if m.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", m.Generation())
	}
	hist := m.History()
	if len(hist) != 2 || hist[0].Generation != 0 || hist[1].Generation != 1 {
		t.Fatalf("History() = %+v", hist)
	}
	if hist[0].Population != cfg.Genetic.Population {
		t.Errorf("Population = %d, want %d", hist[0].Population, cfg.Genetic.Population)
	}
	if m.Status() != "Gen 2" {
		t.Errorf("Status() = %q", m.Status())
	}
}

func TestTrainingSpawnsLearnedActorAfterFreeze(t *testing.T) {
	cfg := testConfig()
	cfg.Training.FreezeAfter = 1
	m := NewTraining(NewDeps(cfg, 4, nil))
	rng := NewDeps(cfg, 5, nil).Rand

	s := game.NewSession(cfg, rng, epoch, time.Second/60)
	m.OnInit(s)
	human := s.Actors()[0]

	// Hover: jump whenever the actor sinks below the gap center.
	for i := 0; i < 2000 && !m.Trained(); i++ {
		var in core.InputFrame
		if obs, _ := s.Observe(human); obs.DY < cfg.Player.Size/2 {
			in = core.Frame(core.ActionJump)
		}
		m.OnTick(s, in)
		s.Tick()
		if !human.Alive {
			t.Fatalf("human died on tick %d", s.Ticks())
		}
	}
	if !m.Trained() {
		t.Fatal("predictor never trained")
	}
	if !m.Recorder().Frozen() || m.Recorder().Len() == 0 {
		t.Errorf("recorder frozen=%v len=%d", m.Recorder().Frozen(), m.Recorder().Len())
	}

	next := game.NewSession(cfg, rng, epoch, time.Second/60)
	m.OnInit(next)
	actors := next.Actors()
	if len(actors) != 2 {
		t.Fatalf("trained round has %d actors, want 2", len(actors))
	}
	if agent.Kind(actors[0].Control) != "human" || agent.Kind(actors[1].Control) != "learned" {
		t.Errorf("kinds = %s, %s", agent.Kind(actors[0].Control), agent.Kind(actors[1].Control))
	}
}

func TestTrainingRecordsHumanJumps(t *testing.T) {
	cfg := testConfig()
	cfg.Training.SampleInterval = 1000
	m := NewTraining(NewDeps(cfg, 6, nil))

	s := game.NewSession(cfg, NewDeps(cfg, 7, nil).Rand, epoch, time.Second/60)
	m.OnInit(s)

	m.OnTick(s, core.Frame(core.ActionJump))
	s.Tick()
	m.OnTick(s, core.InputFrame{})
	s.Tick()

	samples := m.Recorder().Samples()
	if len(samples) != 1 || samples[0].Label != 1 {
		t.Errorf("samples = %+v, want one jump sample", samples)
	}
	if m.Status() != "Recording 1 samples" {
		t.Errorf("Status() = %q", m.Status())
	}
}
