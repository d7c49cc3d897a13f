// Package blocks implements the falling-block puzzle game on top of the
// engine package: the tick loop, input handling, the autoplayer and the
// terminal renderer.
package blocks

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

const defaultTickRate = 60

// Game is one blocks session. It owns all session state; collaborators
// read it through State, Snapshot and Events after each tick.
type Game struct {
	variant Variant
	cfg     config.BlocksConfig
	log     *log.Logger

	// Settings derived from cfg
	rows, cols int
	mode       engine.Mode
	speeds     engine.SpeedTable
	weights    engine.Weights
	budget     time.Duration
	ai         bool

	rng     *rand.Rand
	seq     *engine.Sequence
	tick    uint64
	tickDur time.Duration

	locked  *engine.LockedMap
	grid    *engine.Grid // locked cells only, rebuilt every tick
	current engine.Piece
	next    engine.Piece

	score  int
	level  int
	pieces int
	lines  int

	fallTime  time.Duration
	levelTime time.Duration

	phase  Phase
	paused bool
	reason Reason

	// Autoplayer target for the current piece
	planned bool
	plan    engine.Result
	target  int // rotation index to reach

	search SearchStats
	events []Event
	cues   []core.Cue
}

// SearchStats summarizes autoplayer search timing for one session.
type SearchStats struct {
	Count int
	Slow  int
	Total time.Duration
	Max   time.Duration
}

// Mean returns the average search duration.
func (s SearchStats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger for search timing and game-over records.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}

// WithVariant sets the identity reported by ID and Title.
func WithVariant(v Variant) Option {
	return func(g *Game) {
		g.variant = v
	}
}

// New creates a game for the given configuration. Call Reset before Step.
func New(cfg config.BlocksConfig, opts ...Option) *Game {
	g := &Game{
		variant: Variants[0],
		cfg:     cfg,
		log:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}

	g.rows, g.cols = cfg.Dimensions()
	g.mode = cfg.Mode()
	g.speeds = cfg.Speeds()
	g.weights = cfg.AI.Weights
	g.budget = cfg.SearchBudget()
	g.ai = cfg.AI.Enabled
	return g
}

// ID returns the variant identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.BlocksConfig {
	return g.cfg
}

// AI reports whether the autoplayer controls the pieces.
func (g *Game) AI() bool {
	return g.ai
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	rate := cfg.TickRate
	if rate <= 0 {
		rate = defaultTickRate
	}
	g.tickDur = time.Second / time.Duration(rate)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.seq = engine.NewSequence(g.rng.Int63(), g.cfg.Kinds())
	g.tick = 0

	g.locked = engine.NewLockedMap()
	g.grid = engine.NewGrid(g.rows, g.cols)
	g.score = 0
	g.level = engine.StartLevel(g.mode)
	g.pieces = 0
	g.lines = 0
	g.fallTime = 0
	g.levelTime = 0
	g.paused = false
	g.reason = ReasonNone
	g.planned = false
	g.search = SearchStats{}
	g.events = nil
	g.cues = nil

	g.next = engine.Spawn(g.seq.Next(), g.cols)
	g.phase = PhaseSpawning
	g.spawn()
}

// Step advances the game by one tick of 1/TickRate seconds.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.Advance(in, g.tickDur)
}

// Advance runs one tick with an explicit elapsed time.
func (g *Game) Advance(in core.InputFrame, elapsed time.Duration) core.StepResult {
	g.tick++
	g.events = g.events[:0]
	g.cues = nil

	if g.phase == PhaseGameOver {
		if in.Has(core.ActionRestart) {
			g.Reset(core.RuntimeConfig{
				TickRate: int(time.Second / g.tickDur),
				Seed:     g.rng.Int63(),
			})
		}
		return g.result()
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		if in.Has(core.ActionConfirm) {
			g.paused = false
			g.gameOver(ReasonQuit)
		}
		return g.result()
	}

	g.grid = engine.Build(g.locked, g.rows, g.cols)
	g.fallTime += elapsed
	g.levelTime += elapsed

	if g.ai {
		g.drive()
	} else {
		g.applyInput(in)
	}
	if g.phase == PhaseFalling {
		g.gravity()
	}
	return g.result()
}

func (g *Game) result() core.StepResult {
	return core.StepResult{State: g.State(), Cues: g.cues}
}

// applyInput moves the piece for held player actions. A rejected move
// leaves the piece where it was; soft drop never locks by itself.
func (g *Game) applyInput(in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		engine.Shift(&g.current, g.grid, engine.Left)
	}
	if in.Has(core.ActionRight) {
		engine.Shift(&g.current, g.grid, engine.Right)
	}
	if in.Has(core.ActionRotate) {
		engine.Shift(&g.current, g.grid, engine.Rotate)
	}
	if in.Has(core.ActionSoftDrop) {
		engine.Shift(&g.current, g.grid, engine.Down)
	}
}

// drive moves the piece toward the autoplayer's target: rotation first,
// then one column per tick.
func (g *Game) drive() {
	if !g.planned {
		g.think()
		if g.phase == PhaseGameOver || !g.planned {
			return
		}
	}

	for attempts := 0; g.current.Rotation != g.target && attempts < 4; attempts++ {
		engine.Shift(&g.current, g.grid, engine.Rotate)
	}
	switch {
	case g.current.X < g.plan.Move.Column:
		engine.Shift(&g.current, g.grid, engine.Right)
	case g.current.X > g.plan.Move.Column:
		engine.Shift(&g.current, g.grid, engine.Left)
	}
}

// think runs the move search for the current piece.
func (g *Game) think() {
	res := engine.BestMove(g.current, g.grid, g.weights)

	g.search.Count++
	g.search.Total += res.Elapsed
	g.search.Max = max(g.search.Max, res.Elapsed)
	g.log.Debug("move search",
		"outcome", res.Outcome,
		"evaluated", res.Evaluated,
		"elapsed", res.Elapsed)
	if res.Elapsed > g.budget {
		g.search.Slow++
		g.log.Warn("move search exceeded budget", "elapsed", res.Elapsed, "budget", g.budget)
		g.emit(Event{Kind: EventSlowSearch, Elapsed: res.Elapsed})
	}

	switch res.Outcome {
	case engine.OutcomeFound:
		g.planned = true
		g.plan = res
		g.target = res.TargetRotation(g.current)
	case engine.OutcomeNoMove:
		if !engine.IsValid(g.current, g.grid) {
			g.gameOver(ReasonNoMove)
			return
		}
		g.hold(res)
	default:
		g.log.Error("move search failed", "err", res.Err)
		g.hold(res)
	}
}

// hold keeps the piece where it is and lets gravity finish it, so the
// search is not repeated every tick.
func (g *Game) hold(res engine.Result) {
	res.Move = engine.Move{Column: g.current.X}
	g.planned = true
	g.plan = res
	g.target = g.current.Rotation
}

// gravity drops the piece one row when the fall interval has passed.
func (g *Game) gravity() {
	if g.fallTime <= g.speeds.FallInterval(g.level) {
		return
	}
	g.fallTime = 0
	if engine.Shift(&g.current, g.grid, engine.Down) {
		return
	}
	if g.current.Y > 0 {
		g.lock()
		return
	}
	g.gameOver(ReasonBlockedSpawn)
}

// lock commits the piece, clears rows, rescores and spawns the next piece.
func (g *Game) lock() {
	g.phase = PhaseLocking
	g.locked.Lock(g.current)
	g.pieces++
	g.planned = false
	g.emit(Event{Kind: EventPieceLocked})
	g.cue(core.CueLanded)

	g.phase = PhaseClearing
	grid := engine.Build(g.locked, g.rows, g.cols)
	if full := grid.FullRows(); len(full) > 0 {
		n := g.locked.ClearRows(full)
		g.lines += n
		g.emit(Event{Kind: EventRowsCleared, Rows: n})
		g.cue(core.CueRowsCleared)
		g.addScore(engine.LineClearScore(n))
	}

	if g.locked.IsGameOver() {
		g.gameOver(ReasonToppedOut)
		return
	}
	g.grid = engine.Build(g.locked, g.rows, g.cols)
	g.phase = PhaseSpawning
	g.spawn()
}

// spawn promotes the look-ahead piece and draws a new one.
func (g *Game) spawn() {
	g.current = g.next
	g.next = engine.Spawn(g.seq.Next(), g.cols)
	if !engine.IsValid(g.current, g.grid) {
		g.gameOver(ReasonBlockedSpawn)
		return
	}
	g.phase = PhaseFalling
}

func (g *Game) addScore(points int) {
	if points == 0 {
		return
	}
	g.score += points
	g.emit(Event{Kind: EventScoreChanged, Score: g.score})

	if level := engine.LevelFor(g.score, g.mode); level != g.level {
		g.level = level
		g.emit(Event{Kind: EventLevelChanged, Level: level})
	}
}

func (g *Game) gameOver(r Reason) {
	g.phase = PhaseGameOver
	g.reason = r
	g.planned = false
	g.emit(Event{Kind: EventGameOver, Reason: r})
	g.cue(core.CueGameOver)
	g.log.Info("game over",
		"reason", r,
		"score", g.score,
		"level", g.level,
		"pieces", g.pieces)
}

func (g *Game) emit(e Event) {
	g.events = append(g.events, e)
}

func (g *Game) cue(c core.Cue) {
	g.cues = append(g.cues, c)
}

// Events returns the events raised during the last tick, in order.
// The slice is reused by the next tick.
func (g *Game) Events() []Event {
	return g.events
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Level:    g.level,
		GameOver: g.phase == PhaseGameOver,
		Paused:   g.paused,
	}
}

// Reason returns why the game ended, or ReasonNone while it runs.
func (g *Game) Reason() Reason {
	return g.reason
}

// SearchStats returns autoplayer timing for this session.
func (g *Game) SearchStats() SearchStats {
	return g.search
}
