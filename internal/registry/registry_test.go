package registry

import (
	"testing"

	"github.com/vovakirdan/flappy-neural/internal/core"
	"github.com/vovakirdan/flappy-neural/internal/game"
)

type testHooks struct{ id string }

func (h testHooks) ID() string                            { return h.id }
func (h testHooks) Title() string                         { return "Test" }
func (h testHooks) OnInit(*game.Session)                  {}
func (h testHooks) OnTick(*game.Session, core.InputFrame) {}
func (h testHooks) OnRoundEnd(*game.Session)              {}

func withCleanTable(t *testing.T) {
	t.Helper()
	mu.Lock()
	saved := modes
	modes = make(map[Mode]entry)
	mu.Unlock()

	t.Cleanup(func() {
		mu.Lock()
		modes = saved
		mu.Unlock()
	})
}

func register(m Mode, id string) {
	Register(Info{Mode: m, ID: id, Title: id}, func(Deps) game.Hooks {
		return testHooks{id: id}
	})
}

func TestRegisterAndList(t *testing.T) {
	withCleanTable(t)
	register(ModeTraining, "training")
	register(ModeStandard, "standard")
	register(ModeGenetic, "genetic")

	list := List()
	want := []string{"standard", "genetic", "training"}
	if len(list) != len(want) {
		t.Fatalf("List() has %d modes, want %d", len(list), len(want))
	}
	for i, info := range list {
		if info.ID != want[i] || info.Mode != Mode(i+1) {
			t.Errorf("List()[%d] = %+v, want %s as mode %d", i, info, want[i], i+1)
		}
	}
}

func TestCreate(t *testing.T) {
	withCleanTable(t)
	register(ModeGenetic, "genetic")

	hooks, err := Create(ModeGenetic, Deps{})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if hooks.ID() != "genetic" {
		t.Errorf("hooks.ID() = %q, want genetic", hooks.ID())
	}

	if _, err := Create(ModeStandard, Deps{}); err == nil {
		t.Error("Create() of unregistered mode did not fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	tests := []struct {
		name string
		mode Mode
		id   string
	}{
		{"same number", ModeStandard, "other"},
		{"same id", ModeGenetic, "standard"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withCleanTable(t)
			register(ModeStandard, "standard")

			defer func() {
				if recover() == nil {
					t.Error("duplicate registration did not panic")
				}
			}()
			register(tt.mode, tt.id)
		})
	}
}

func TestParse(t *testing.T) {
	withCleanTable(t)
	register(ModeStandard, "standard")
	register(ModeGenetic, "genetic")

	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"1", ModeStandard, false},
		{"2", ModeGenetic, false},
		{"genetic", ModeGenetic, false},
		{" Standard ", ModeStandard, false},
		{"3", 0, true},
		{"pong", 0, true},
	}
	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestModeString(t *testing.T) {
	withCleanTable(t)
	register(ModeStandard, "standard")

	if s := ModeStandard.String(); s != "standard" {
		t.Errorf("String() = %q, want standard", s)
	}
	if s := Mode(9).String(); s != "mode-9" {
		t.Errorf("String() = %q, want mode-9", s)
	}
}
