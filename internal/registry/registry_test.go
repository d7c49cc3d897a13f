package registry

import (
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

type stubGame struct {
	id    string
	rows  int
	state core.GameState
}

func (s *stubGame) ID() string                           { return s.id }
func (s *stubGame) Title() string                        { return "Stub" }
func (s *stubGame) Reset(core.RuntimeConfig)             {}
func (s *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{State: s.state} }
func (s *stubGame) Render(*core.Screen)                  {}
func (s *stubGame) State() core.GameState                { return s.state }

func TestRegisterAndCreate(t *testing.T) {
	Register("stub_create", "Stub", func(cfg config.BlocksConfig, _ *log.Logger) Game {
		rows, _ := cfg.Dimensions()
		return &stubGame{id: "stub_create", rows: rows}
	})

	if !Exists("stub_create") {
		t.Fatal("Exists() = false after Register")
	}
	if got := Title("stub_create"); got != "Stub" {
		t.Errorf("Title() = %q, want Stub", got)
	}
	if got := Title("missing"); got != "missing" {
		t.Errorf("Title(missing) = %q, want the id", got)
	}

	cfg := config.DefaultBlocksConfig()
	cfg.Board.Size = config.BoardSmall
	g, err := Create("stub_create", cfg, nil)
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.(*stubGame).rows != 16 {
		t.Errorf("factory did not receive the config: rows = %d", g.(*stubGame).rows)
	}
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("no_such_game", config.DefaultBlocksConfig(), nil)
	if err == nil || !strings.Contains(err.Error(), "no_such_game") {
		t.Errorf("Create(unknown) error = %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(config.BlocksConfig, *log.Logger) Game { return &stubGame{} }
	Register("stub_dup", "Stub", f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("stub_dup", "Stub", f)
}

func TestListSorted(t *testing.T) {
	f := func(config.BlocksConfig, *log.Logger) Game { return &stubGame{} }
	Register("stub_list_b", "B", f)
	Register("stub_list_a", "A", f)

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
}
