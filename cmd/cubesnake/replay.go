package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubesnake/internal/core"
	"github.com/vovakirdan/cubesnake/internal/games/cubesnake"
	"github.com/vovakirdan/cubesnake/internal/registry"
	"github.com/vovakirdan/cubesnake/internal/replay"
)

var (
	flagVerbose bool
	flagRender  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace>",
	Short: "Re-run a recorded game",
	Long: `Re-run a trace written by 'cubesnake play --record' and print how the
game ended. The re-run uses the seed and settings stored in the trace, so the
result matches the recorded game exactly.

Examples:
  cubesnake replay run.jsonl.zst
  cubesnake replay run.jsonl.zst --verbose --render`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print every game event")
	replayCmd.Flags().BoolVar(&flagRender, "render", false, "Print the final frame")
}

func runReplay(_ *cobra.Command, args []string) {
	trace, err := replay.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var observer cubesnake.Observer
	if flagVerbose {
		observer = printEvent
	}
	snap, err := replay.Replay(trace, observer)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	h := trace.Header
	fmt.Printf("Variant:  %s\n", h.Variant)
	fmt.Printf("Seed:     %d\n", h.Seed)
	fmt.Printf("Commands: %d\n", len(trace.Commands))
	fmt.Printf("Round:    %d\n", snap.Round)
	fmt.Printf("Score:    %d\n", snap.Score)
	fmt.Printf("Moves:    %d\n", snap.Moves)
	fmt.Printf("Length:   %d\n", len(snap.Snake))
	fmt.Printf("State:    %s\n", snap.State)
	if snap.Cause != "" {
		fmt.Printf("Cause:    %s\n", snap.Cause)
	}

	if flagRender {
		size := core.DefaultConfig()
		screen := core.NewScreen(size.ScreenW, size.ScreenH)
		title := h.Variant
		if registry.Exists(h.Variant) {
			title = registry.Title(h.Variant)
		}
		cubesnake.RenderSnapshot(screen, snap, title, false)
		fmt.Println()
		fmt.Print(screen.String())
	}
}

func printEvent(e cubesnake.Event) {
	switch e.Kind {
	case cubesnake.EventRotated:
		fmt.Printf("%8dms  round %d  %-9s %s\n", e.At, e.Round, e.Kind, e.Rotation)
	case cubesnake.EventGameOver:
		fmt.Printf("%8dms  round %d  %-9s score %d: %v\n", e.At, e.Round, e.Kind, e.Score, e.Cause)
	default:
		fmt.Printf("%8dms  round %d  %-9s score %d\n", e.At, e.Round, e.Kind, e.Score)
	}
}
