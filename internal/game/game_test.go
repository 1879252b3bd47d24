package game

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/flappy-neural/internal/agent"
	"github.com/vovakirdan/flappy-neural/internal/config"
	"github.com/vovakirdan/flappy-neural/internal/core"
)

const tick = time.Second / 60

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestSession(seed int64) *Session {
	return NewSession(config.DefaultFlappyConfig(), rand.New(rand.NewSource(seed)), epoch, tick)
}

// hover jumps whenever the actor's center sinks below the gap center.
var hover = agent.ControllerFunc(func(obs agent.Observation, _ core.InputFrame) bool {
	return obs.DY < config.DefaultFlappyConfig().Player.Size/2
})

// runUntilPassed ticks until the field has seen n passages or all actors die.
func runUntilPassed(s *Session, n int) {
	var none core.InputFrame
	for i := 0; i < 100000 && s.Field().Passed() < n && !s.Over(); i++ {
		s.Decide(none)
		s.Tick()
	}
}

func TestDeadActorTickIsNoop(t *testing.T) {
	a := NewActor(0, config.DefaultFlappyConfig(), nil, epoch)
	a.Velocity = 2
	a.Kill(epoch.Add(time.Second))

	y, v := a.Y, a.Velocity
	for i := 0; i < 10; i++ {
		a.Tick(epoch.Add(time.Duration(i) * time.Second))
	}
	if a.Y != y || a.Velocity != v {
		t.Errorf("dead actor moved: y %v -> %v, v %v -> %v", y, a.Y, v, a.Velocity)
	}
	if a.Lifetime != time.Second {
		t.Errorf("Lifetime = %v, want 1s", a.Lifetime)
	}
}

func TestJumpSetsFixedImpulse(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	a := NewActor(0, cfg, nil, epoch)

	a.Jump()
	a.Jump()
	if a.Velocity != cfg.Physics.JumpImpulse {
		t.Fatalf("after two jumps Velocity = %v, want %v", a.Velocity, cfg.Physics.JumpImpulse)
	}

	a.Tick(epoch)
	if a.Y != cfg.Player.StartY-cfg.Physics.JumpImpulse {
		t.Errorf("Y = %v, want %v", a.Y, cfg.Player.StartY-cfg.Physics.JumpImpulse)
	}

	a.Jump()
	if a.Velocity != cfg.Physics.JumpImpulse {
		t.Errorf("Velocity after falling and jumping = %v, want %v", a.Velocity, cfg.Physics.JumpImpulse)
	}

	a.Kill(epoch)
	a.Velocity = 0
	a.Jump()
	if a.Velocity != 0 {
		t.Error("dead actor jumped")
	}
}

func TestKillIsGuarded(t *testing.T) {
	a := NewActor(0, config.DefaultFlappyConfig(), nil, epoch)
	a.Kill(epoch.Add(2 * time.Second))
	a.Kill(epoch.Add(9 * time.Second))

	if a.Alive {
		t.Fatal("actor still alive")
	}
	if a.Lifetime != 2*time.Second {
		t.Errorf("Lifetime = %v, want 2s from the first kill", a.Lifetime)
	}
}

func TestFreeFallDiesOnTick31(t *testing.T) {
	s := newTestSession(1)
	a := s.AddActor(nil)

	for i := 1; i <= 30; i++ {
		s.Tick()
		if !a.Alive {
			t.Fatalf("actor died early, on tick %d (y=%v)", i, a.Y)
		}
	}
	s.Tick()
	if a.Alive {
		t.Fatalf("actor alive after tick 31 (y=%v)", a.Y)
	}
	if a.Lifetime != 31*tick {
		t.Errorf("Lifetime = %v, want %v", a.Lifetime, 31*tick)
	}
	if a.Score != 0 {
		t.Errorf("Score = %d, want 0", a.Score)
	}
	if !s.Over() {
		t.Error("session not over with every actor dead")
	}
}

func TestObstacleGapBounds(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	rng := rand.New(rand.NewSource(99))

	maxTop := cfg.Screen.Height - float64(cfg.Obstacles.MaxGap)
	for i := 0; i < 2000; i++ {
		o := NewObstacle(rng, cfg)
		if o.GapHeight < float64(cfg.Obstacles.MinGap) || o.GapHeight > float64(cfg.Obstacles.MaxGap) {
			t.Fatalf("GapHeight %v outside [%d, %d]", o.GapHeight, cfg.Obstacles.MinGap, cfg.Obstacles.MaxGap)
		}
		if o.GapY < float64(cfg.Obstacles.TopMargin) || o.GapY > maxTop {
			t.Fatalf("GapY %v outside [%d, %v]", o.GapY, cfg.Obstacles.TopMargin, maxTop)
		}
		if o.X != cfg.Screen.Width || o.Width != cfg.Obstacles.PipeWidth {
			t.Fatalf("spawned at x=%v width=%v", o.X, o.Width)
		}
		if o.BottomRect().Bottom() != cfg.Screen.Height {
			t.Fatalf("bottom section ends at %v, want the floor", o.BottomRect().Bottom())
		}
	}
}

func TestObstacleWidthGuard(t *testing.T) {
	o := NewObstacle(rand.New(rand.NewSource(1)), config.DefaultFlappyConfig())
	o.Width = 0
	o.Advance(3)

	if o.Width != 100 {
		t.Errorf("Width = %v, want restored to 100", o.Width)
	}
	if o.X != 637 {
		t.Errorf("X = %v, want 637", o.X)
	}
}

func TestCollides(t *testing.T) {
	// Pipe at x=[200,300), gap y=[100,200), world height 480.
	o := Obstacle{X: 200, GapY: 100, GapHeight: 100, Width: 100, worldH: 480}

	tests := []struct {
		name  string
		actor core.Rect
		want  bool
	}{
		{"left of pipe", core.NewRect(100, 50, 40, 40), false},
		{"touching leading edge", core.NewRect(160, 50, 40, 40), false},
		{"overlapping top section", core.NewRect(161, 50, 40, 40), true},
		{"inside gap", core.NewRect(220, 120, 40, 40), false},
		{"touching gap top", core.NewRect(220, 100, 40, 40), false},
		{"touching gap bottom", core.NewRect(220, 160, 40, 40), false},
		{"into bottom section", core.NewRect(220, 161, 40, 40), true},
		{"touching trailing edge", core.NewRect(300, 50, 40, 40), false},
		{"right of pipe", core.NewRect(400, 300, 40, 40), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Collides(tt.actor, o); got != tt.want {
				t.Errorf("Collides(%+v) = %v, want %v", tt.actor, got, tt.want)
			}
		})
	}
}

func TestFieldPassageUsesTrailingEdge(t *testing.T) {
	f := NewField(rand.New(rand.NewSource(1)), config.DefaultFlappyConfig())
	f.Replenish()

	f.obstacles[0].X = 0 // trailing edge exactly at player x
	if f.Passage(100) {
		t.Fatal("passage reported while trailing edge touches player x")
	}

	f.Advance(0.5)
	if !f.Passage(100) {
		t.Fatal("no passage once trailing edge is left of player x")
	}
	if f.Passage(100) {
		t.Error("obstacle passed twice")
	}
	if f.Passed() != 1 {
		t.Errorf("Passed() = %d, want 1", f.Passed())
	}
}

func TestFieldReplenishKeepsOneGapAhead(t *testing.T) {
	f := NewField(rand.New(rand.NewSource(2)), config.DefaultFlappyConfig())

	if !f.Replenish() || f.Len() != 1 {
		t.Fatalf("empty field did not spawn: len=%d", f.Len())
	}
	if f.Replenish() {
		t.Fatal("spawned while an unpassed obstacle exists")
	}

	f.obstacles[0].X = -10
	f.Passage(100)
	if !f.Replenish() || f.Len() != 2 {
		t.Fatalf("no successor after passage: len=%d", f.Len())
	}

	next, ok := f.Next()
	if !ok || next.X != 640 {
		t.Errorf("Next() = %+v, %v; want the new obstacle", next, ok)
	}
}

func TestFieldEvictBoundary(t *testing.T) {
	f := NewField(rand.New(rand.NewSource(3)), config.DefaultFlappyConfig())
	f.Replenish()
	f.Replenish()
	f.obstacles = append(f.obstacles, f.obstacles[0], f.obstacles[0])
	f.obstacles[0].X = -100
	f.obstacles[1].X = -100.5
	f.obstacles[2].X = 300

	if n := f.Evict(); n != 1 {
		t.Fatalf("Evict() = %d, want 1", n)
	}
	if f.Len() != 2 || f.obstacles[0].X != -100 || f.obstacles[1].X != 300 {
		t.Errorf("remaining = %+v", f.obstacles)
	}
}

func TestScoreEqualsPassages(t *testing.T) {
	const n = 8
	s := newTestSession(5)
	a := s.AddActor(hover)

	runUntilPassed(s, n)

	if !a.Alive {
		t.Fatalf("hovering actor died after %d passages", s.Field().Passed())
	}
	if a.Score != n {
		t.Errorf("Score = %d, want %d", a.Score, n)
	}
	if s.Best() != n {
		t.Errorf("Best() = %d, want %d", s.Best(), n)
	}
	if s.Speed() != 4 {
		t.Errorf("Speed() = %v, want 4 at best %d", s.Speed(), n)
	}
}

func TestTwoActorsDiverge(t *testing.T) {
	s := newTestSession(11)
	flyer := s.AddActor(hover)
	faller := s.AddActor(nil)

	runUntilPassed(s, 6)

	if !flyer.Alive || flyer.Score != 6 {
		t.Errorf("flyer alive=%v score=%d, want alive with 6", flyer.Alive, flyer.Score)
	}
	if faller.Alive || faller.Score != 0 {
		t.Errorf("faller alive=%v score=%d, want dead with 0", faller.Alive, faller.Score)
	}
	if faller.Lifetime != 31*tick {
		t.Errorf("faller Lifetime = %v, want %v", faller.Lifetime, 31*tick)
	}
	if s.Over() {
		t.Error("session over while one actor lives")
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() (int, int, float64, []Obstacle) {
		s := newTestSession(12345)
		a := s.AddActor(hover)
		runUntilPassed(s, 4)
		obs := append([]Obstacle(nil), s.Field().Obstacles()...)
		return s.Ticks(), a.Score, a.Y, obs
	}

	t1, sc1, y1, o1 := run()
	t2, sc2, y2, o2 := run()
	if t1 != t2 || sc1 != sc2 || y1 != y2 {
		t.Fatalf("runs differ: ticks %d/%d score %d/%d y %v/%v", t1, t2, sc1, sc2, y1, y2)
	}
	if len(o1) != len(o2) {
		t.Fatalf("obstacle count differs: %d/%d", len(o1), len(o2))
	}
	for i := range o1 {
		if o1[i] != o2[i] {
			t.Errorf("obstacle %d differs: %+v vs %+v", i, o1[i], o2[i])
		}
	}
}

func TestDecideSkipsDeadAndUncontrolled(t *testing.T) {
	s := newTestSession(7)
	always := agent.ControllerFunc(func(agent.Observation, core.InputFrame) bool { return true })
	live := s.AddActor(always)
	dead := s.AddActor(always)
	none := s.AddActor(nil)
	dead.Kill(s.Now())

	jumps := s.Decide(core.InputFrame{})
	want := []bool{true, false, false}
	for i := range want {
		if jumps[i] != want[i] {
			t.Errorf("jumps[%d] = %v, want %v", i, jumps[i], want[i])
		}
	}
	if live.Velocity != 5 || dead.Velocity != 0 || none.Velocity != 0 {
		t.Errorf("velocities = %v/%v/%v", live.Velocity, dead.Velocity, none.Velocity)
	}
}

func TestObserve(t *testing.T) {
	s := newTestSession(8)
	a := s.AddActor(nil)
	next, _ := s.Field().Next()

	obs, ok := s.Observe(a)
	if !ok {
		t.Fatal("no observation with an obstacle ahead")
	}
	if obs.DY != next.GapCenterY()-a.Y {
		t.Errorf("DY = %v, want %v", obs.DY, next.GapCenterY()-a.Y)
	}
	if obs.DX != next.CenterX()-a.X {
		t.Errorf("DX = %v, want %v", obs.DX, next.CenterX()-a.X)
	}
}

// stubHooks records calls and spawns actors with a fixed controller.
type stubHooks struct {
	control  agent.Controller
	actors   int
	inits    int
	ticks    int
	roundEnd int
}

func (h *stubHooks) ID() string    { return "stub" }
func (h *stubHooks) Title() string { return "Stub" }

func (h *stubHooks) OnInit(s *Session) {
	h.inits++
	for i := 0; i < h.actors; i++ {
		s.AddActor(h.control)
	}
}

func (h *stubHooks) OnTick(s *Session, in core.InputFrame) {
	h.ticks++
	s.Decide(in)
}

func (h *stubHooks) OnRoundEnd(*Session) { h.roundEnd++ }

func testRuntime() core.RuntimeConfig {
	rt := core.DefaultConfig()
	rt.Seed = 42
	return rt
}

func TestRunnerLifecycle(t *testing.T) {
	hooks := &stubHooks{actors: 2}
	var summaries []RoundSummary
	r := NewRunner(config.DefaultFlappyConfig(), hooks, testRuntime(),
		WithObserver(func(rs RoundSummary) { summaries = append(summaries, rs) }),
		WithClock(func() time.Time { return epoch }),
	)

	res := r.Step(core.InputFrame{})
	if res.State.Phase != core.PhaseAwaitingStart || r.Session() != nil {
		t.Fatal("runner left awaiting start without a start action")
	}

	r.Step(core.Frame(core.ActionStart))
	if r.Phase() != core.PhaseRunning || hooks.inits != 1 {
		t.Fatalf("phase=%v inits=%d after start", r.Phase(), hooks.inits)
	}
	first := r.Session()

	var over core.StepResult
	for i := 0; i < 100; i++ {
		over = r.Step(core.InputFrame{})
		if over.RoundOver {
			break
		}
	}
	if !over.RoundOver {
		t.Fatal("round never ended")
	}
	if hooks.ticks != 31 || hooks.roundEnd != 1 {
		t.Errorf("ticks=%d roundEnd=%d, want 31 and 1", hooks.ticks, hooks.roundEnd)
	}
	if !over.State.GameOver() || over.State.Alive != 0 || over.State.Total != 2 {
		t.Errorf("state after round = %+v", over.State)
	}
	if len(summaries) != 1 || summaries[0].Round != 1 || summaries[0].Longest != 31*tick {
		t.Fatalf("summaries = %+v", summaries)
	}

	// Steps while awaiting start do not tick the hooks.
	r.Step(core.InputFrame{})
	if hooks.ticks != 31 {
		t.Errorf("hooks ticked while awaiting start")
	}

	r.Step(core.Frame(core.ActionStart))
	if r.Session() == first {
		t.Error("restart reused the previous session")
	}
	if r.State().Round != 2 || r.Session().Ticks() != 0 {
		t.Errorf("restart state = %+v ticks=%d", r.State(), r.Session().Ticks())
	}
}

func TestRunnerQuit(t *testing.T) {
	hooks := &stubHooks{actors: 1}
	r := NewRunner(config.DefaultFlappyConfig(), hooks, testRuntime())
	r.Step(core.Frame(core.ActionStart))

	res := r.Step(core.Frame(core.ActionQuit, core.ActionJump))
	if !res.State.Quit {
		t.Error("quit not reported")
	}
	if hooks.ticks != 0 {
		t.Error("quit frame still ticked the round")
	}
}

func TestRunnerPlayStopsAtMaxTicks(t *testing.T) {
	hooks := &stubHooks{actors: 3, control: hover}
	r := NewRunner(config.DefaultFlappyConfig(), hooks, testRuntime())

	sum := r.Play(200)
	if sum.Ticks != 200 {
		t.Errorf("Ticks = %d, want 200", sum.Ticks)
	}
	if sum.Longest != 200*tick {
		t.Errorf("Longest = %v, want %v", sum.Longest, 200*tick)
	}
	if r.Phase() != core.PhaseAwaitingStart || hooks.roundEnd != 1 {
		t.Errorf("phase=%v roundEnd=%d", r.Phase(), hooks.roundEnd)
	}
	for _, a := range r.Session().Actors() {
		if a.Alive {
			t.Error("actor alive after Play")
		}
	}
}

func TestRunnerRender(t *testing.T) {
	hooks := &stubHooks{actors: 1}
	r := NewRunner(config.DefaultFlappyConfig(), hooks, testRuntime())
	screen := core.NewScreen(80, 24)

	r.Render(screen)
	out := screen.String()
	if !strings.Contains(out, StartPrompt) {
		t.Errorf("start prompt missing:\n%s", out)
	}

	r.Step(core.Frame(core.ActionStart))
	r.Render(screen)
	out = screen.String()
	if strings.Contains(out, StartPrompt) {
		t.Error("start prompt shown while running")
	}
	if !strings.ContainsRune(out, ActorChar) {
		t.Errorf("actor not drawn:\n%s", out)
	}
	if !strings.Contains(out, "Stub") {
		t.Error("HUD missing mode title")
	}
}

func TestRunnerHUDSplitsKinds(t *testing.T) {
	hooks := &stubHooks{actors: 1, control: agent.Human{}}
	r := NewRunner(config.DefaultFlappyConfig(), hooks, testRuntime())
	r.Step(core.Frame(core.ActionStart))
	r.Session().AddActor(&agent.Learned{})
	r.Session().AddActor(&agent.Learned{})
	r.Session().Actors()[2].Kill(r.Session().Now())

	screen := core.NewScreen(100, 24)
	r.Render(screen)
	out := screen.String()
	for _, want := range []string{"human 1/1", "learned 1/2"} {
		if !strings.Contains(out, want) {
			t.Errorf("HUD missing %q:\n%s", want, out)
		}
	}

	single := NewRunner(config.DefaultFlappyConfig(), &stubHooks{actors: 3}, testRuntime())
	single.Step(core.Frame(core.ActionStart))
	single.Render(screen)
	if !strings.Contains(screen.String(), "Alive 3/3") {
		t.Errorf("single-kind HUD should show the plain count:\n%s", screen.String())
	}
}
