package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/audio"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
	"github.com/vovakirdan/tui-blocks/internal/leaderboard"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// aiName is the leaderboard name used for autoplayer games.
const aiName = "AI"

// Services are the collaborators a game session reports to.
// Every field is optional.
type Services struct {
	Store  *storage.Store    // game history
	Scores leaderboard.Board // top-scores list
	Audio  *audio.Player     // sound cues
	Logger *log.Logger
	Player string // default name offered after a qualifying game
}

// sessionStats is implemented by games that report per-game statistics.
type sessionStats interface {
	AI() bool
	Snapshot() blocks.Snapshot
}

type gamePhase int

const (
	phasePlaying gamePhase = iota
	phaseNameEntry
	phaseFinished
)

// GameModel runs one game variant: play, name entry for a qualifying
// score, then a finished screen offering restart or back to menu.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	svc        Services
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	phase      gamePhase
	name       textinput.Model
	status     string // result line on the finished screen
	standalone bool   // no menu to go back to
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for the given game.
func NewGameModel(game registry.Game, svc Services, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if svc.Logger == nil {
		svc.Logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Placeholder = leaderboard.AnonymousName
	ti.CharLimit = 20
	ti.Width = 20

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		svc:        svc,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		name:       ti,
	}
}

// Init initializes the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.phase == phaseNameEntry {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input while playing or finished.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionMute:
		if m.svc.Audio.ToggleMuted() {
			m.svc.Logger.Debug("sound muted")
		}
		return m, nil
	case core.ActionBack:
		if m.phase == phaseFinished {
			if m.standalone {
				m.quitting = true
				return m, tea.Quit
			}
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	case core.ActionRestart:
		if m.phase == phaseFinished {
			m.config.Seed = time.Now().UnixNano()
			m.game.Reset(m.config)
			m.gameState = m.game.State()
			m.phase = phasePlaying
			m.status = ""
			m.inputFrame.Clear()
		}
		return m, nil
	}

	if action != core.ActionNone && m.phase == phasePlaying {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleNameKey feeds the name prompt.
func (m GameModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.finish(m.name.Value())
		return m, nil
	case tea.KeyEsc:
		m.finish("")
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.phase != phasePlaying {
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.svc.Audio.PlayAll(result.Cues)
	m.inputFrame.Clear()

	if m.gameState.GameOver {
		return m, m.gameEnded()
	}
	return m, tickCmd(m.config.TickRate)
}

// gameEnded decides whether the score enters the top list. AI games are
// submitted under a fixed name; players get a name prompt.
func (m *GameModel) gameEnded() tea.Cmd {
	score := m.gameState.Score
	if m.svc.Scores == nil {
		m.finish(m.defaultName())
		return tickCmd(m.config.TickRate)
	}

	ok, err := m.svc.Scores.Qualifies(score)
	if err != nil {
		m.svc.Logger.Error("cannot read scores", "err", err)
		m.record(m.defaultName())
		m.phase = phaseFinished
		m.status = scoresError(err)
		return tickCmd(m.config.TickRate)
	}
	if !ok {
		m.record(m.defaultName())
		m.phase = phaseFinished
		m.status = fmt.Sprintf("Score %d did not reach the top %d", score, m.svc.Scores.Limit())
		return tickCmd(m.config.TickRate)
	}
	if m.isAI() {
		m.finish(aiName)
		return tickCmd(m.config.TickRate)
	}

	m.phase = phaseNameEntry
	m.name.SetValue(m.svc.Player)
	m.name.CursorEnd()
	return tea.Batch(m.name.Focus(), tickCmd(m.config.TickRate))
}

// finish submits the score under name and moves to the finished screen.
func (m *GameModel) finish(name string) {
	m.phase = phaseFinished
	m.name.Blur()
	m.record(name)

	if m.svc.Scores == nil {
		m.status = fmt.Sprintf("Final score %d", m.gameState.Score)
		return
	}
	if err := m.svc.Scores.Submit(m.gameState.Score, name); err != nil {
		m.svc.Logger.Error("cannot save score", "err", err)
		m.status = scoresError(err)
		return
	}
	m.status = fmt.Sprintf("Saved %d to the top %d as %s",
		m.gameState.Score, m.svc.Scores.Limit(), leaderboard.CleanName(name))
}

// record appends the game to the history database. Failures are logged.
func (m *GameModel) record(name string) {
	if m.svc.Store == nil || m.gameState.Score <= 0 {
		return
	}
	rec := storage.GameRecord{
		GameID: m.game.ID(),
		Name:   leaderboard.CleanName(name),
		Score:  m.gameState.Score,
		Level:  m.gameState.Level,
	}
	if s, ok := m.game.(sessionStats); ok {
		snap := s.Snapshot()
		rec.Pieces = snap.Pieces
		rec.Lines = snap.Lines
		rec.AI = s.AI()
	}
	if _, err := m.svc.Store.SaveGame(rec); err != nil {
		m.svc.Logger.Warn("cannot record game", "err", err)
	}
}

func (m GameModel) isAI() bool {
	s, ok := m.game.(sessionStats)
	return ok && s.AI()
}

func (m GameModel) defaultName() string {
	if m.isAI() {
		return aiName
	}
	return m.svc.Player
}

func scoresError(err error) string {
	var perr *leaderboard.ParseError
	if errors.As(err, &perr) {
		return fmt.Sprintf("Scores file is corrupt (line %d); fix %s", perr.Line, perr.Path)
	}
	return "Scores not saved: " + err.Error()
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".blocks", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

var (
	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("229")).
			Padding(1, 3)
	promptTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	if m.phase == phaseNameEntry {
		prompt := promptStyle.Render(strings.Join([]string{
			promptTitleStyle.Render(fmt.Sprintf("New high score: %d", m.gameState.Score)),
			"",
			"Enter your name:",
			m.name.View(),
			"",
			statusStyle.Render("enter save  esc skip"),
		}, "\n"))
		return lipgloss.Place(m.config.ScreenW, m.config.ScreenH, lipgloss.Center, lipgloss.Center, prompt)
	}

	m.game.Render(m.screen)
	if m.phase == phaseFinished {
		help := "r restart  b menu  q quit"
		if m.standalone {
			help = "r restart  q quit"
		}
		h := m.screen.Height()
		m.screen.DrawTextCentered(h-2, m.status)
		m.screen.DrawTextCentered(h-1, help)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, svc Services, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, svc, cfg)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}

// RunFromMenu starts a game that can return to the menu.
// Returns true if the player asked to go back.
func RunFromMenu(game registry.Game, svc Services, cfg core.RuntimeConfig) (backToMenu bool, err error) {
	p := tea.NewProgram(
		NewGameModel(game, svc, cfg),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(GameModel)
	return ok && m.BackToMenu(), nil
}
