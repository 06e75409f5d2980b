package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/guard-patrol/internal/platform/tui"
)

var (
	flagSSHAddr string
	flagHostKey string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the patrol SSH server",
	Long: `Start an SSH server that lets users connect and watch the guard.

Each SSH connection gets its own session with a map picker. Maps are read
from the configured maps directory when a session starts.

Host key handling:
  - If --host-key (or serve.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.patrol/host_key

Examples:
  patrol serve                           # Listen on the configured address
  patrol serve --ssh :2222               # Listen on port 2222
  patrol serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	serverCfg := tui.SSHServerConfig{
		Address:     cfg.Serve.Address,
		HostKeyPath: cfg.Serve.HostKey,
		IdleTimeout: cfg.Serve.IdleTimeout,
	}
	if flagSSHAddr != "" {
		serverCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		serverCfg.HostKeyPath = flagHostKey
	}

	server, err := tui.NewSSHServer(serverCfg, newLoader(), watchOptions(), logger.WithPrefix("patrol-ssh"))
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting patrol SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
