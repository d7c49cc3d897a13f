// blocks is a falling-block puzzle game for the terminal, with an
// optional autoplayer.
//
// Usage:
//
//	blocks list                - List game variants
//	blocks play [variant]      - Play a variant (default: blocks)
//	blocks menu                - Pick variants interactively
//	blocks scores              - Show the top scores list
//	blocks serve               - Start SSH server for remote play
//	blocks simulate            - Run headless autoplayer games
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible piece sequences
//	--db <path>       - Set history database path (default: ~/.blocks/scores.db)
//	--scores <path>   - Set top scores file (default from config)
//	--config <path>   - Load game config from a YAML file
//	--log <path>      - Write game logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"

	// Register game variants
	_ "github.com/vovakirdan/tui-blocks/internal/games/blocks"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagScores  string
	flagConfig  string
	flagLogPath string

	// Game overrides
	flagAI       bool
	flagFast     bool
	flagExtended bool
	flagBoard    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Blocks - a falling-block puzzle in your terminal",
	Long: `Blocks is a falling-block puzzle game for the terminal. Rotate and
move the falling pieces to fill rows; full rows clear and score points.
An autoplayer can take over and search for the best placement.

Available commands:
  list      - Show game variants
  play      - Play a variant directly
  menu      - Interactive variant picker
  scores    - View the top scores list
  serve     - Start SSH server for remote play
  simulate  - Run headless autoplayer games

Examples:
  blocks play
  blocks play blocks_fast --ai
  blocks menu --board large
  blocks serve --ssh :2222
  blocks simulate --games 5 --seed 42`,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.blocks/scores.db", "Path to game history database")
	pf.StringVar(&flagScores, "scores", "", "Path to top scores file (overrides config)")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagLogPath, "log", "", "Write logs to this file")

	pf.BoolVar(&flagAI, "ai", false, "Let the autoplayer play")
	pf.BoolVar(&flagFast, "fast", false, "Use the fast progression curve")
	pf.BoolVar(&flagExtended, "extended", false, "Add the extended piece kinds")
	pf.StringVar(&flagBoard, "board", "", "Board size: standard, small, large")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig loads the game config and applies the flags the user set.
func loadConfig(cmd *cobra.Command) (config.BlocksConfig, error) {
	cfg, err := config.LoadBlocks(flagConfig)
	if err != nil {
		return cfg, err
	}

	var o config.Overrides
	flags := cmd.Flags()
	if flags.Changed("board") {
		size, sizeErr := config.ParseBoardSize(flagBoard)
		if sizeErr != nil {
			return cfg, sizeErr
		}
		o.Board = &size
	}
	if flags.Changed("fast") {
		o.Fast = &flagFast
	}
	if flags.Changed("extended") {
		o.Extended = &flagExtended
	}
	if flags.Changed("ai") {
		o.AI = &flagAI
	}
	o.Scores = flagScores
	o.Apply(&cfg)

	return cfg, cfg.Validate()
}

// mustLoadConfig loads the config or exits.
func mustLoadConfig(cmd *cobra.Command) config.BlocksConfig {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// runtimeConfig builds the platform config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openLogger returns the logger for interactive sessions. The alternate
// screen owns the terminal, so logs go to --log or nowhere.
func openLogger() (*log.Logger, func()) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}
	}

	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocks",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}
