package registry

import (
	"testing"

	"github.com/vovakirdan/cardrive/internal/core"
)

type stubGame struct{}

func (stubGame) ID() string                           { return "stub" }
func (stubGame) Title() string                        { return "Stub" }
func (stubGame) Reset(core.RuntimeConfig)             {}
func (stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (stubGame) Render(*core.Screen)                  {}
func (stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreate(t *testing.T) {
	Register("stub", "Stub", func() Game { return stubGame{} })

	if Title("stub") != "Stub" {
		t.Errorf("Title() = %q", Title("stub"))
	}
	if Title("missing") != "missing" {
		t.Errorf("Title() of unknown game = %q, expected the ID", Title("missing"))
	}

	g, err := Create("stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub" {
		t.Errorf("created game ID = %q", g.ID())
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create() of unknown game should fail")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup", "Dup", func() Game { return stubGame{} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("dup", "Dup", func() Game { return stubGame{} })
}
