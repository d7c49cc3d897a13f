package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/tui-blocks/internal/games/blocks/engine"
)

//go:embed defaults/blocks.yaml
var defaultBlocksYAML []byte

// DefaultBlocksConfig returns the built-in configuration.
func DefaultBlocksConfig() BlocksConfig {
	return BlocksConfig{
		Board: BoardConfig{
			Size: BoardStandard,
		},
		Speed: SpeedConfig{
			Mode:  SpeedEasy,
			Table: append([]time.Duration(nil), engine.DefaultSpeeds[:]...),
		},
		AI: AIConfig{
			Enabled: false,
			Budget:  DefaultSearchBudget,
			Weights: engine.DefaultWeights,
		},
		Scores: ScoresConfig{
			File:  "~/.blocks/scores.txt",
			Limit: 10,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBlocksYAML
}
