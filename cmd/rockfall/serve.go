package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rockfall/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout time.Duration
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the rockfall SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the level picker. Progress
is stored per SSH user name in the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.rockfall/ssh_host_ed25519

Flags override the server section of the config file.

Examples:
  rockfall serve                           # Listen on the configured address
  rockfall serve --ssh :2222               # Listen on port 2222
  rockfall serve --metrics :9100           # Also serve Prometheus metrics
  rockfall serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Address for the /metrics endpoint")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting, e.g. 30m")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", 0, "Maximum concurrent sessions (0 = no limit)")
}

func runServe(cmd *cobra.Command, _ []string) {
	e := mustSetup()

	cfg := tui.SSHServerConfigFrom(e.cfg.Server)
	if cmd.Flags().Changed("ssh") {
		cfg.Address = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		cfg.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("metrics") {
		cfg.MetricsAddress = flagMetricsAddr
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.IdleTimeout = flagIdleTimeout
	}
	if cmd.Flags().Changed("max-sessions") {
		cfg.MaxSessions = flagMaxSessions
	}

	set, _, err := e.levelSet()
	if err != nil {
		fatalf("Error: %v\n", err)
	}

	store := e.openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(cfg, tui.Options{
		Levels:             set,
		Rules:              e.cfg.WorldRules(),
		TickRate:           e.cfg.Timing.TicksPerSecond,
		DeathPauseTicks:    e.cfg.Timing.DeathPauseTicks,
		CompletePauseTicks: e.cfg.Timing.CompletePauseTicks,
		StartLevel:         e.cfg.Levels.Start - 1,
		Store:              store,
		Translator:         e.translator(),
		Logger:             e.logger,
	})
	if err != nil {
		if store != nil {
			store.Close()
		}
		fatalf("Error creating server: %v\n", err)
	}

	fmt.Printf("Starting rockfall SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		stop()
		if store != nil {
			store.Close()
		}
		fatalf("Server error: %v\n", err)
	}
}
