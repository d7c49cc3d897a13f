package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

var (
	flagGames     int
	flagMaxPieces int
	flagVerbose   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [variant]",
	Short: "Run headless autoplayer games",
	Long: `Run games driven by the autoplayer without a terminal and report
score, level, pieces and search timing for each game.

Each game uses --seed plus the game index as its RNG seed, so runs
with the same flags are reproducible.

Examples:
  blocks simulate
  blocks simulate --games 10 --max-pieces 500
  blocks simulate blocks_extended --seed 42 --board small`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagGames, "games", 1, "Number of games to run")
	simulateCmd.Flags().IntVar(&flagMaxPieces, "max-pieces", 200, "Stop a game after this many pieces (0 = until game over)")
	simulateCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log every search")
}

func runSimulate(cmd *cobra.Command, args []string) {
	variantID := "blocks"
	if len(args) > 0 {
		variantID = args[0]
	}

	variant, ok := findVariant(variantID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", variantID)
		fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available variants.")
		os.Exit(1)
	}

	cfg := mustLoadConfig(cmd)
	cfg.AI.Enabled = true

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocks-sim",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	best, total := 0, 0
	for i := range flagGames {
		game := blocks.NewVariant(variant, cfg, blocks.WithLogger(logger))
		res := simulate(game, seed+int64(i), flagFPS, flagMaxPieces)

		stats := game.SearchStats()
		logger.Info("game finished",
			"game", i+1,
			"score", res.Score,
			"level", res.Level,
			"pieces", res.Pieces,
			"lines", res.Lines,
			"reason", game.Reason(),
			"searches", stats.Count,
			"mean", stats.Mean(),
			"max", stats.Max,
			"slow", stats.Slow,
		)

		total += res.Score
		best = max(best, res.Score)
	}

	if flagGames > 0 {
		fmt.Printf("%s: %d games, best %d, average %d\n",
			variant.Title, flagGames, best, total/flagGames)
	}
}

// simulate plays one game with no player input until it ends or maxPieces
// pieces have locked.
func simulate(game *blocks.Game, seed int64, tickRate, maxPieces int) blocks.Snapshot {
	cfg := core.DefaultConfig()
	cfg.TickRate = tickRate
	cfg.Seed = seed
	game.Reset(cfg)

	in := core.NewInputFrame()
	locked := 0
	for !game.State().GameOver {
		game.Step(in)
		for _, e := range game.Events() {
			if e.Kind == blocks.EventPieceLocked {
				locked++
			}
		}
		if maxPieces > 0 && locked >= maxPieces {
			break
		}
	}
	return game.Snapshot()
}

func findVariant(id string) (blocks.Variant, bool) {
	for _, v := range blocks.Variants {
		if v.ID == id {
			return v, true
		}
	}
	return blocks.Variant{}, false
}
