package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/leaderboard"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var flagHistory bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the top scores list",
	Long: `Display the top scores list kept in the scores file.

With --history, also show per-variant statistics from the game
history database.

Examples:
  blocks scores
  blocks scores --scores ./scores.txt
  blocks scores --history`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagHistory, "history", false, "Show per-variant history statistics")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg := mustLoadConfig(cmd)

	board, err := leaderboard.NewFile(cfg.Scores.File, cfg.Scores.Limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	entries, err := board.Top()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading scores: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Top Scores - %s\n", board.Path())
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blocks play' to set the first high score!")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Name")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, e := range entries {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, e.Score, e.Name)
		}
	}

	if flagHistory {
		printHistory()
	}
}

func printHistory() {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Println()
	fmt.Println("History")
	fmt.Println()
	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %-6s  %s\n", "Variant", "Games", "Best", "Average", "Lines", "Level")
	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %-6s  %s\n", "-------", "-----", "----", "-------", "-----", "-----")

	for _, g := range registry.List() {
		s, err := store.GetGameStats(g.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading history for %s: %v\n", g.ID, err)
			continue
		}
		fmt.Printf("  %-16s  %-6d  %-8d  %-8.0f  %-6d  %d\n",
			g.ID, s.GamesCount, s.HighScore, s.AvgScore, s.TotalLines, s.BestLevel)
	}

	for _, g := range registry.List() {
		best, err := store.Board(g.ID, 3, false).Top()
		if err != nil || len(best) == 0 {
			continue
		}
		fmt.Println()
		fmt.Printf("Best %s games\n", g.Title)
		for i, e := range best {
			fmt.Printf("  %-4d  %-10d  %s\n", i+1, e.Score, e.Name)
		}
	}
}
