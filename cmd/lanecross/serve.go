package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanecross/internal/api"
	"github.com/vovakirdan/lanecross/internal/multiplayer"
	"github.com/vovakirdan/lanecross/internal/platform/tui"
	"github.com/vovakirdan/lanecross/internal/transport/websocket"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
	flagOrigins     []string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH arcade and the spectator API",
	Long: `Start an SSH server that allows users to connect and play, and an
HTTP server that lists live sessions and streams them over websockets.

Each SSH connection gets its own session with the menu.
Scores are stored per-server (all users share the same scoreboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lanecross/host_key

HTTP endpoints:
  GET /api/health             - Liveness and live session count
  GET /api/lanes              - Lane preview (?seed=&from=&count=)
  GET /api/scores             - Best solo runs (?seed=&limit=)
  GET /api/scores/versus      - Recent versus matches
  GET /api/scores/stats       - Totals
  GET /api/sessions           - Live sessions
  GET /api/sessions/{id}      - Current frame of a session
  GET /ws/sessions/{id}       - Websocket stream of frames

Examples:
  lanecross serve                           # SSH on :23234, HTTP on :8080
  lanecross serve --ssh :2222 --http ""     # SSH only
  lanecross serve --host-key ./my_host_key  # Use specific host key
  lanecross serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP API address (empty disables)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringSliceVar(&flagOrigins, "origins", nil, "Allowed CORS origins (default *)")
}

func runServe(_ *cobra.Command, _ []string) {
	opts, store := loadOptions("lanecross")
	if store != nil {
		defer store.Close()
	}
	logger := opts.Logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions := multiplayer.NewSessionRegistry()
	opts.Sessions = sessions

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Seed:        flagSeed,
	}, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, 2)

	if flagHTTPAddr != "" {
		hub := websocket.NewHub(logger.WithPrefix("ws"))
		publisher := api.NewPublisher(sessions, hub, api.PublishInterval)

		deps := api.Deps{
			Sessions:       sessions,
			Hub:            hub,
			AllowedOrigins: flagOrigins,
		}
		// Leave Scores as a nil interface when there is no database
		if store != nil {
			deps.Scores = store
		}

		wg.Add(3)
		go func() {
			defer wg.Done()
			hub.Run(ctx)
		}()
		go func() {
			defer wg.Done()
			publisher.Run(ctx)
		}()
		go func() {
			defer wg.Done()
			if err := api.Serve(ctx, flagHTTPAddr, api.NewRouter(deps), logger.WithPrefix("http")); err != nil {
				errCh <- fmt.Errorf("http: %w", err)
				stop()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServe(ctx); err != nil {
			errCh <- fmt.Errorf("ssh: %w", err)
			stop()
		}
	}()

	fmt.Printf("Starting lanecross SSH server on %s\n", flagSSHAddr)
	if flagHTTPAddr != "" {
		fmt.Printf("Spectator API on %s\n", flagHTTPAddr)
	}
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	<-ctx.Done()
	wg.Wait()
	close(errCh)

	failed := false
	for err := range errCh {
		logger.Error("server error", "err", err)
		failed = true
	}
	if failed {
		os.Exit(1)
	}
}
