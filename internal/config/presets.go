package config

import (
	"fmt"
	"time"
)

// BoardSize names a board preset.
type BoardSize string

const (
	BoardStandard BoardSize = "standard"
	BoardSmall    BoardSize = "small"
	BoardLarge    BoardSize = "large"
)

// DefaultSearchBudget is the soft time limit for one AI search.
const DefaultSearchBudget = 500 * time.Millisecond

// Dimensions returns rows and columns for the preset.
// Unknown or empty presets use the standard board.
func (b BoardSize) Dimensions() (rows, cols int) {
	switch b {
	case BoardSmall:
		return 16, 8
	case BoardLarge:
		return 20, 15
	default:
		return 20, 10
	}
}

// Valid reports whether the preset is known. Empty means standard.
func (b BoardSize) Valid() bool {
	switch b {
	case BoardStandard, BoardSmall, BoardLarge, "":
		return true
	}
	return false
}

// ParseBoardSize converts a flag value to a preset.
func ParseBoardSize(s string) (BoardSize, error) {
	b := BoardSize(s)
	if s == "" || !b.Valid() {
		return "", fmt.Errorf("%w: board size %q (want standard, small or large)", ErrInvalid, s)
	}
	return b, nil
}

// Overrides carries command-line choices applied on top of a loaded config.
// Nil fields leave the config untouched.
type Overrides struct {
	Board    *BoardSize
	Fast     *bool
	Extended *bool
	AI       *bool
	Scores   string
}

// Apply modifies the config with the overrides that are set.
func (o Overrides) Apply(cfg *BlocksConfig) {
	if o.Board != nil {
		cfg.Board.Size = *o.Board
		cfg.Board.Rows, cfg.Board.Cols = 0, 0
	}
	if o.Fast != nil {
		cfg.Speed.Mode = SpeedEasy
		if *o.Fast {
			cfg.Speed.Mode = SpeedFast
		}
	}
	if o.Extended != nil {
		cfg.Pieces.Extended = *o.Extended
	}
	if o.AI != nil {
		cfg.AI.Enabled = *o.AI
	}
	if o.Scores != "" {
		cfg.Scores.File = o.Scores
	}
}
