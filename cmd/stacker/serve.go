package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-stacker/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the stacker SSH server",
		Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a game picker menu.
Runs are stored per server (all users share the same scoreboard) and
recorded under the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stacker/host_key

Examples:
  stacker serve                           # Listen on :23234 with auto-generated key
  stacker serve --ssh :2222               # Listen on port 2222
  stacker serve --host-key ./my_host_key  # Use specific host key
  stacker serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	cmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	cmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom stacker config (YAML or TOML)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	applyGameFlags()

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		Logger:      loggerFromContext(cmd.Context()),
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting stacker SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe(cmd.Context())
}
