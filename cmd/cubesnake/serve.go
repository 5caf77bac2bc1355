package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cubesnake/internal/logging"
	"github.com/vovakirdan/cubesnake/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagVariant     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the cube snake SSH server",
	Long: `Start an SSH server where every connection plays its own game.
Scores go to the server's database, so all players share one leaderboard.

The client picks a variant by passing it as the SSH command; without one
the --variant default is played.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.cubesnake/host_key

Examples:
  cubesnake serve                           # Listen on :23234
  cubesnake serve --ssh :2222               # Listen on port 2222
  cubesnake serve --host-key ./my_host_key  # Use specific host key
  cubesnake serve --difficulty hard         # Hard pace for everyone

Players connect with:
  ssh -t localhost -p 23234
  ssh -t localhost -p 23234 cubesnake_anywhere`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagVariant, "variant", "cubesnake", "Variant played when the client names none")
}

func runServe(_ *cobra.Command, _ []string) {
	out := os.Stderr
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	logger, err := logging.New(out, flagLogLevel, "cubesnake-ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.DBPath = flagDBPath
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.DefaultVariant = flagVariant
	cfg.TickRate = flagFPS
	cfg.Logger = logger

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting cube snake SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
