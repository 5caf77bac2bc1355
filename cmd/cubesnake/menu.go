package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubesnake/internal/config"
	"github.com/vovakirdan/cubesnake/internal/games/cubesnake"
	"github.com/vovakirdan/cubesnake/internal/logging"
	"github.com/vovakirdan/cubesnake/internal/platform/tui"
	"github.com/vovakirdan/cubesnake/internal/registry"
	"github.com/vovakirdan/cubesnake/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a variant and difficulty from a start menu",
	Long: `Start in interactive menu mode. After a round you return to the menu.
Running cubesnake without a command does the same.

Controls:
  Up/Down      - Choose a variant
  Left/Right   - Change difficulty
  Enter/Space  - Play
  Tab          - High scores
  Q            - Quit`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	logger, logCloser, err := logging.OpenFile(flagLogFile, flagLogLevel, "cubesnake")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()
	preset := config.ParsePreset(flagDifficulty)

	for {
		res, err := tui.RunMenu(cfg, preset)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = res.Config
		preset = res.Difficulty

		switch {
		case res.Quit:
			return
		case res.WantsScoreboard:
			if err := tui.RunScoreboard(store, "", cfg.ScreenW, cfg.ScreenH); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			continue
		}

		cubesnake.SetDifficultyPreset(string(preset))
		game, err := registry.Create(res.Variant)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// A fixed --seed replays the same first round every time.
		round := cfg
		if round.Seed == 0 {
			round.Seed = time.Now().UnixNano()
		}
		if err := tui.Run(game, round, tui.Options{Store: store, Logger: logger}); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
