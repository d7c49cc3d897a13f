package blocks

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// Variant is a registered flavor of the game: a name plus the
// configuration changes it makes.
type Variant struct {
	ID    string
	Title string
	Apply func(cfg *config.BlocksConfig)
}

// Variants lists the registered flavors. The first one plays the
// configuration as given.
var Variants = []Variant{
	{
		ID:    "blocks",
		Title: "Blocks",
	},
	{
		ID:    "blocks_fast",
		Title: "Blocks (Fast)",
		Apply: func(cfg *config.BlocksConfig) {
			cfg.Speed.Mode = config.SpeedFast
		},
	},
	{
		ID:    "blocks_extended",
		Title: "Blocks (Extended)",
		Apply: func(cfg *config.BlocksConfig) {
			cfg.Pieces.Extended = true
		},
	},
}

// NewVariant creates a game for the variant, applying its changes to a
// copy of cfg.
func NewVariant(v Variant, cfg config.BlocksConfig, opts ...Option) *Game {
	cfg.Speed.Table = append([]time.Duration(nil), cfg.Speed.Table...)
	if v.Apply != nil {
		v.Apply(&cfg)
	}
	return New(cfg, append([]Option{WithVariant(v)}, opts...)...)
}

func init() {
	for _, v := range Variants {
		registry.Register(v.ID, v.Title, func(cfg config.BlocksConfig, logger *log.Logger) registry.Game {
			return NewVariant(v, cfg, WithLogger(logger))
		})
	}
}
