package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubesnake/internal/games/cubesnake"
	"github.com/vovakirdan/cubesnake/internal/logging"
	"github.com/vovakirdan/cubesnake/internal/platform/tui"
	"github.com/vovakirdan/cubesnake/internal/registry"
	"github.com/vovakirdan/cubesnake/internal/replay"
	"github.com/vovakirdan/cubesnake/internal/storage"
)

var flagRecord string

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a round of cube snake",
	Long: `Start playing. The variant defaults to "cubesnake".

Controls:
  Up/W, Down/S    - Tip the cube up or down
  Left/A, Right/D - Spin the cube left or right
  P               - Pause
  Space/R         - Restart (after game over)
  Ctrl+S          - Save a text screenshot
  Q/Esc/Ctrl+C    - Quit

Difficulty options:
  easy   - Start slow, speed up as you score
  normal - Start at 30% difficulty, speed up as you score
  hard   - Start at 70% difficulty, speed up as you score
  fixed  - Constant pace

Examples:
  cubesnake play
  cubesnake play cubesnake_anywhere
  cubesnake play --difficulty hard
  cubesnake play --config ./my-cube.yaml
  cubesnake play --record ./runs/today.jsonl.zst`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagRecord, "record", "", "Write a replay trace to this file")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := cubesnake.IDClassic
	if len(args) > 0 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'cubesnake list' to see available variants.")
		os.Exit(1)
	}

	logger, logCloser, err := logging.OpenFile(flagLogFile, flagLogLevel, "cubesnake")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if logCloser != nil {
		defer logCloser.Close()
	}

	// The seed is fixed here so a recording can name it.
	cfg := terminalConfig()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	var rec *replay.Recorder
	if flagRecord != "" {
		rec, err = startRecording(game, cfg.Seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	runErr := tui.Run(game, cfg, tui.Options{Store: store, Logger: logger})

	if store != nil {
		store.Close()
	}
	if rec != nil {
		finishRecording(rec, logger)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// startRecording attaches a trace recorder to game.
func startRecording(game registry.Game, seed int64) (*replay.Recorder, error) {
	cg, ok := game.(*cubesnake.Game)
	if !ok {
		return nil, fmt.Errorf("variant %q cannot be recorded", game.ID())
	}
	scfg, err := cg.SessionConfig()
	if err != nil {
		return nil, err
	}
	rec, err := replay.Create(flagRecord, replay.Header{
		Seed:    seed,
		Variant: game.ID(),
		Config:  scfg,
	})
	if err != nil {
		return nil, err
	}
	cg.SetCommandHook(rec.Record)
	return rec, nil
}

func finishRecording(rec *replay.Recorder, logger *log.Logger) {
	if err := rec.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: replay trace incomplete: %v\n", err)
		logger.Error("replay recording failed", "path", flagRecord, "error", err)
		return
	}
	logger.Info("replay saved", "path", flagRecord, "commands", rec.Count())
	fmt.Printf("Replay saved to %s (%d commands)\n", flagRecord, rec.Count())
}
