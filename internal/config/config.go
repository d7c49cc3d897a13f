// Package config provides YAML-based configuration for the blocks game:
// board size, progression speed, piece set, AI weights and score storage.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// BlocksConfig contains all configuration for a blocks game.
// It is built once at startup and passed by value to the game.
type BlocksConfig struct {
	Board  BoardConfig  `yaml:"board"`
	Speed  SpeedConfig  `yaml:"speed"`
	Pieces PiecesConfig `yaml:"pieces"`
	AI     AIConfig     `yaml:"ai"`
	Scores ScoresConfig `yaml:"scores"`
}

// BoardConfig selects the playfield size.
type BoardConfig struct {
	Size BoardSize `yaml:"size"`
	Rows int       `yaml:"rows"` // overrides the preset when > 0
	Cols int       `yaml:"cols"` // overrides the preset when > 0
}

// SpeedConfig selects the progression curve and fall speeds.
type SpeedConfig struct {
	Mode  SpeedMode       `yaml:"mode"`
	Table []time.Duration `yaml:"table"`
}

// PiecesConfig selects the piece set.
type PiecesConfig struct {
	Extended bool `yaml:"extended"`
}

// AIConfig controls the autoplayer.
type AIConfig struct {
	Enabled bool           `yaml:"enabled"`
	Budget  time.Duration  `yaml:"budget"`
	Weights engine.Weights `yaml:"weights"`
}

// ScoresConfig locates the top-scores file.
type ScoresConfig struct {
	File  string `yaml:"file"`
	Limit int    `yaml:"limit"`
}

// SpeedMode names a progression curve.
type SpeedMode string

const (
	SpeedEasy SpeedMode = "easy"
	SpeedFast SpeedMode = "fast"
)

// Mode returns the engine progression mode.
func (c BlocksConfig) Mode() engine.Mode {
	if c.Speed.Mode == SpeedFast {
		return engine.ModeFast
	}
	return engine.ModeEasy
}

// Dimensions returns the board rows and columns, applying explicit
// overrides on top of the size preset.
func (c BlocksConfig) Dimensions() (rows, cols int) {
	rows, cols = c.Board.Size.Dimensions()
	if c.Board.Rows > 0 {
		rows = c.Board.Rows
	}
	if c.Board.Cols > 0 {
		cols = c.Board.Cols
	}
	return rows, cols
}

// Speeds returns the fall speed table, falling back to the default.
func (c BlocksConfig) Speeds() engine.SpeedTable {
	if len(c.Speed.Table) != len(engine.DefaultSpeeds) {
		return engine.DefaultSpeeds
	}
	var t engine.SpeedTable
	copy(t[:], c.Speed.Table)
	return t
}

// Kinds returns the piece kinds in play.
func (c BlocksConfig) Kinds() []engine.Kind {
	return engine.Kinds(c.Pieces.Extended)
}

// SearchBudget returns the soft time budget for one move search.
func (c BlocksConfig) SearchBudget() time.Duration {
	if c.AI.Budget <= 0 {
		return DefaultSearchBudget
	}
	return c.AI.Budget
}

// Minimum playable board; every piece mask must fit horizontally.
const (
	minRows = 5
	minCols = 5
)

// Validate checks the configuration for values the game cannot run with.
func (c BlocksConfig) Validate() error {
	if !c.Board.Size.Valid() {
		return fmt.Errorf("%w: unknown board size %q", ErrInvalid, c.Board.Size)
	}
	if c.Board.Rows < 0 || c.Board.Cols < 0 {
		return fmt.Errorf("%w: negative board dimensions %dx%d", ErrInvalid, c.Board.Rows, c.Board.Cols)
	}
	if rows, cols := c.Dimensions(); rows < minRows || cols < minCols {
		return fmt.Errorf("%w: board %dx%d is smaller than %dx%d", ErrInvalid, rows, cols, minRows, minCols)
	}
	switch c.Speed.Mode {
	case SpeedEasy, SpeedFast, "":
	default:
		return fmt.Errorf("%w: unknown speed mode %q", ErrInvalid, c.Speed.Mode)
	}
	if n := len(c.Speed.Table); n != 0 && n != len(engine.DefaultSpeeds) {
		return fmt.Errorf("%w: speed table has %d entries, want %d", ErrInvalid, n, len(engine.DefaultSpeeds))
	}
	for i, d := range c.Speed.Table {
		if d <= 0 {
			return fmt.Errorf("%w: speed for level %d must be positive", ErrInvalid, i)
		}
	}
	if c.AI.Budget < 0 {
		return fmt.Errorf("%w: negative search budget", ErrInvalid)
	}
	if c.Scores.Limit < 0 {
		return fmt.Errorf("%w: negative score limit", ErrInvalid)
	}
	return nil
}
