package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/audio"
	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/leaderboard"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a game",
	Long: `Start playing the specified variant (default: blocks).

Controls:
  Left/A, Right/D  - Move piece
  Up/W             - Rotate
  Down/S           - Soft drop
  P/Esc            - Pause (Enter while paused ends the game)
  M                - Mute sounds
  R                - Restart (after game over)
  Q/Ctrl+C         - Quit

Examples:
  blocks play
  blocks play blocks_fast
  blocks play --ai --board large
  blocks play --config ./my-blocks.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Start with sounds muted")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := "blocks"
	if len(args) > 0 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blocks list' to see available variants.")
		os.Exit(1)
	}

	blocksCfg := mustLoadConfig(cmd)
	logger, closeLog := openLogger()
	defer closeLog()

	game, err := registry.Create(gameID, blocksCfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	svc, closeSvc := openServices(blocksCfg, logger)
	svc.Audio.SetMuted(flagMute)

	runErr := tui.Run(game, svc, runtimeConfig())
	closeSvc()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// openServices opens the history database, top scores file and speaker.
// Each is optional; failures are printed as warnings.
func openServices(cfg config.BlocksConfig, logger *log.Logger) (tui.Services, func()) {
	svc := tui.Services{
		Logger: logger,
		Player: defaultPlayer(),
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
	} else {
		svc.Store = store
	}

	scores, err := leaderboard.NewFile(cfg.Scores.File, cfg.Scores.Limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: top scores disabled: %v\n", err)
	} else {
		svc.Scores = scores
	}

	player := audio.NewPlayer()
	if err := player.Init(); err != nil {
		logger.Warn("audio disabled", "err", err)
		player = nil
	}
	svc.Audio = player

	return svc, func() {
		svc.Audio.Close()
		if svc.Store != nil {
			svc.Store.Close()
		}
	}
}

// defaultPlayer offers the login name for the top scores prompt.
func defaultPlayer() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return ""
}
