package registry

import (
	"testing"

	"github.com/vovakirdan/tui-stacker/internal/core"
)

type fakeGame struct{ id string }

func (g *fakeGame) ID() string                           { return g.id }
func (g *fakeGame) Title() string                        { return "Fake " + g.id }
func (g *fakeGame) Reset(core.RuntimeConfig)             {}
func (g *fakeGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *fakeGame) Render(*core.Screen)                  {}
func (g *fakeGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz_fake_b", func() Game { return &fakeGame{id: "zz_fake_b"} })
	Register("zz_fake_a", func() Game { return &fakeGame{id: "zz_fake_a"} })

	if !Exists("zz_fake_a") {
		t.Fatal("registered game should exist")
	}
	if Exists("zz_missing") {
		t.Error("unregistered game should not exist")
	}

	g, err := Create("zz_fake_a")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "zz_fake_a" {
		t.Errorf("Create() returned game %q", g.ID())
	}
	if _, err := Create("zz_missing"); err == nil {
		t.Error("Create() of unknown id should fail")
	}

	if Title("zz_fake_b") != "Fake zz_fake_b" {
		t.Errorf("Title() = %q", Title("zz_fake_b"))
	}
	if Title("zz_missing") != "zz_missing" {
		t.Error("Title() of unknown id should echo the id")
	}

	list := List()
	var a, b = -1, -1
	for i, info := range list {
		switch info.ID {
		case "zz_fake_a":
			a = i
		case "zz_fake_b":
			b = i
		}
	}
	if a < 0 || b < 0 || a > b {
		t.Errorf("List() should contain both fakes sorted by ID: %+v", list)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &fakeGame{id: "zz_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func() Game { return &fakeGame{id: "zz_dup"} })
}
