package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubesnake/internal/platform/tui"
	"github.com/vovakirdan/cubesnake/internal/registry"
	"github.com/vovakirdan/cubesnake/internal/storage"
)

var (
	flagInteractive bool
	flagClear       bool
	flagLimit       int
	flagAll         bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the best rounds of a variant (default "cubesnake").

Examples:
  cubesnake scores
  cubesnake scores cubesnake_anywhere --limit 20
  cubesnake scores --all
  cubesnake scores --interactive
  cubesnake scores cubesnake --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in a full-screen table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores of the variant")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVar(&flagAll, "all", false, "Show every recorded round")
}

func runScores(_ *cobra.Command, args []string) {
	gameID := "cubesnake"
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'cubesnake list' to see available variants.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared scores of %s.\n", registry.Title(gameID))

	case flagInteractive:
		cfg := terminalConfig()
		if err := tui.RunScoreboard(store, gameID, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	default:
		if err := printScores(store, gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
			os.Exit(1)
		}
	}
}

func printScores(store *storage.Store, gameID string) error {
	var scores []storage.ScoreEntry
	var err error
	if flagAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n\n", registry.Title(gameID))
	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'cubesnake play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %s\n", "Rank", "Score", "Length", "Moves", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %s\n", "----", "-----", "------", "-----", "----")
	for i, e := range scores {
		fmt.Printf("  %-4d  %-6d  %-6d  %-6d  %s\n", i+1, e.Score, e.Length, e.Moves, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  Rounds: %d  Average: %.1f  Longest snake: %d\n",
		stats.HighScore, stats.GamesCount, stats.AvgScore, stats.LongestRun)
	return nil
}
