package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/leaderboard"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// stubGame ends after a fixed number of steps with a fixed score.
type stubGame struct {
	score    int
	ai       bool
	endAfter int
	steps    int
	resets   int
}

func (g *stubGame) ID() string    { return "stub" }
func (g *stubGame) Title() string { return "Stub" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.steps = 0
	g.resets++
}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	g.steps++
	return core.StepResult{State: g.State()}
}

func (g *stubGame) Render(dst *core.Screen) { dst.Clear() }

func (g *stubGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.steps >= g.endAfter}
}

func (g *stubGame) AI() bool { return g.ai }

func (g *stubGame) Snapshot() blocks.Snapshot {
	return blocks.Snapshot{Score: g.score, Pieces: 7, Lines: 2}
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
}

func newScoresFile(t *testing.T, content string) *leaderboard.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scores.txt")
	if content != "" {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	f, err := leaderboard.NewFile(path, leaderboard.DefaultLimit)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func newTestModel(g *stubGame, svc Services) GameModel {
	m := NewGameModel(g, svc, testRuntime())
	m.Init()
	return m
}

func send(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	return send(t, m, TickMsg(time.Now()))
}

func TestQualifyingScoreAsksForName(t *testing.T) {
	scores := newScoresFile(t, "")
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	g := &stubGame{score: 50, endAfter: 1}
	m := newTestModel(g, Services{Scores: scores, Store: store})

	m = tick(t, m)
	if m.phase != phaseNameEntry {
		t.Fatalf("phase = %v, want name entry", m.phase)
	}
	if !strings.Contains(m.View(), "New high score: 50") {
		t.Error("name prompt not shown")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ann")})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.phase != phaseFinished {
		t.Fatalf("phase = %v, want finished", m.phase)
	}
	if !strings.Contains(m.status, "Saved 50") {
		t.Errorf("status = %q", m.status)
	}

	entries, err := scores.Top()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0] != (leaderboard.Entry{Score: 50, Name: "ann"}) {
		t.Errorf("entries = %v", entries)
	}

	recs, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || recs[0].Pieces != 7 || recs[0].Lines != 2 || recs[0].Name != "ann" {
		t.Errorf("history = %+v", recs)
	}
}

func TestEscapeSubmitsAnonymous(t *testing.T) {
	scores := newScoresFile(t, "")
	m := newTestModel(&stubGame{score: 10, endAfter: 1}, Services{Scores: scores, Player: "bob"})

	m = tick(t, m)
	if got := m.name.Value(); got != "bob" {
		t.Errorf("prompt prefilled with %q, want bob", got)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	entries, _ := scores.Top()
	if len(entries) != 1 || entries[0].Name != leaderboard.AnonymousName {
		t.Errorf("entries = %v", entries)
	}
}

func TestAIGameSubmitsWithoutPrompt(t *testing.T) {
	scores := newScoresFile(t, "")
	m := newTestModel(&stubGame{score: 30, ai: true, endAfter: 1}, Services{Scores: scores})

	m = tick(t, m)
	if m.phase != phaseFinished {
		t.Fatalf("phase = %v, want finished", m.phase)
	}
	entries, _ := scores.Top()
	if len(entries) != 1 || entries[0].Name != "AI" {
		t.Errorf("entries = %v", entries)
	}
}

func TestNonQualifyingScore(t *testing.T) {
	var b strings.Builder
	for range leaderboard.DefaultLimit {
		b.WriteString("100 someone\n")
	}
	scores := newScoresFile(t, b.String())
	m := newTestModel(&stubGame{score: 100, endAfter: 1}, Services{Scores: scores})

	m = tick(t, m)
	if m.phase != phaseFinished {
		t.Fatalf("phase = %v, want finished", m.phase)
	}
	if !strings.Contains(m.status, "did not reach") {
		t.Errorf("status = %q", m.status)
	}
	entries, _ := scores.Top()
	if len(entries) != leaderboard.DefaultLimit {
		t.Errorf("list changed: %d entries", len(entries))
	}
}

func TestStatusUsesConfiguredLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.txt")
	if err := os.WriteFile(path, []byte("300 a\n200 b\n100 c\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	scores, err := leaderboard.NewFile(path, 3)
	if err != nil {
		t.Fatal(err)
	}

	m := newTestModel(&stubGame{score: 50, endAfter: 1}, Services{Scores: scores})
	m = tick(t, m)
	if !strings.Contains(m.status, "top 3") {
		t.Errorf("status = %q, want the configured limit", m.status)
	}

	m = newTestModel(&stubGame{score: 250, ai: true, endAfter: 1}, Services{Scores: scores})
	m = tick(t, m)
	if !strings.Contains(m.status, "Saved 250 to the top 3") {
		t.Errorf("status = %q, want the configured limit", m.status)
	}
}

func TestCorruptScoresFile(t *testing.T) {
	scores := newScoresFile(t, "100 ok\nnot-a-score\n")
	m := newTestModel(&stubGame{score: 10, endAfter: 1}, Services{Scores: scores})

	m = tick(t, m)
	if m.phase != phaseFinished {
		t.Fatalf("phase = %v, want finished", m.phase)
	}
	if !strings.Contains(m.status, "line 2") {
		t.Errorf("status = %q, want the bad line", m.status)
	}
}

func TestFinishedKeys(t *testing.T) {
	g := &stubGame{score: 10, endAfter: 1}
	m := newTestModel(g, Services{})

	m = tick(t, m)
	if m.phase != phaseFinished {
		t.Fatalf("phase = %v, want finished", m.phase)
	}

	m = send(t, m, runeKey('r'))
	if m.phase != phasePlaying || g.resets != 2 {
		t.Errorf("restart: phase = %v, resets = %d", m.phase, g.resets)
	}

	m = tick(t, m)
	m = send(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Error("b on finished screen should go back to menu")
	}
}

func TestBackIgnoredWhilePlaying(t *testing.T) {
	m := newTestModel(&stubGame{endAfter: 100}, Services{})
	m = send(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("b while playing should be ignored")
	}
	m = send(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
}

func TestSessionScreens(t *testing.T) {
	s := NewSessionModel(Services{}, testRuntime(), config.DefaultBlocksConfig())

	update := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	update(tea.KeyMsg{Type: tea.KeyTab})
	if s.screen != screenScoreboard {
		t.Fatalf("tab: screen = %v, want scoreboard", s.screen)
	}
	if !strings.Contains(s.View(), "HIGH SCORES") {
		t.Error("scoreboard not rendered")
	}

	update(tea.KeyMsg{Type: tea.KeyEsc})
	if s.screen != screenMenu {
		t.Fatalf("esc: screen = %v, want menu", s.screen)
	}

	update(tea.KeyMsg{Type: tea.KeyEnter})
	if s.screen != screenGame || s.gameModel == nil {
		t.Fatalf("enter: screen = %v, want game", s.screen)
	}
	if s.gameModel.game.ID() != "blocks" {
		t.Errorf("game = %q, want blocks", s.gameModel.game.ID())
	}

	update(runeKey('q'))
	if !s.quitting {
		t.Error("q in game should end the session")
	}
}
