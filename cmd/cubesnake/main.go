// cubesnake is Snake played inside a cube, in the terminal.
//
// Usage:
//
//	cubesnake                     - Start menu
//	cubesnake play [variant]      - Play (default variant: cubesnake)
//	cubesnake list                - List variants
//	cubesnake scores <variant>    - Show high scores
//	cubesnake serve               - Start SSH server for remote play
//	cubesnake replay <trace>      - Re-run a recorded trace
//	cubesnake config              - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Tick rate (default: 60)
//	--seed <value>       - RNG seed for reproducible rounds
//	--db <path>          - Score database (default: ~/.cubesnake/scores.db)
//	--config <path>      - Custom config YAML
//	--difficulty <name>  - easy, normal, hard or fixed
//	--log-file <path>    - Where play writes its log
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cubesnake/internal/config"
	"github.com/vovakirdan/cubesnake/internal/core"
	"github.com/vovakirdan/cubesnake/internal/games/cubesnake"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cubesnake",
	Short: "Snake inside a rotating cube, in your terminal",
	Long: `Cube Snake moves a snake through a 5x5x5 cube. The snake always heads
into the screen; you steer by turning the whole cube a quarter turn at a time.

Examples:
  cubesnake play
  cubesnake play cubesnake_anywhere --difficulty hard
  cubesnake play --record run.jsonl.zst --seed 42
  cubesnake replay run.jsonl.zst
  cubesnake serve --ssh :2222
  cubesnake scores cubesnake`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	Run:          runMenu,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if flagDifficulty != "" && config.ParsePreset(flagDifficulty) == "" {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		cubesnake.SetConfigPath(flagConfig)
		cubesnake.SetDifficultyPreset(flagDifficulty)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.cubesnake/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file (play only logs when set)")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(configCmd)
}

// terminalConfig starts from the default runtime config and applies the
// terminal size and the --fps and --seed flags.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}
