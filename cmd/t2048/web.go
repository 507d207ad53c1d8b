package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcptools "github.com/vovakirdan/tui-2048/internal/platform/mcp"
	"github.com/vovakirdan/tui-2048/internal/platform/web"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve games over WebSocket and MCP-over-HTTP",
	Long: `Start an HTTP server for remote clients.

Endpoints:
  GET  /ws          - WebSocket play; one game per connection
  POST /mcp         - MCP JSON-RPC endpoint (same tools as 't2048 mcp')
  GET  /api/scores  - Top finished games as JSON (?limit=N)
  GET  /healthz     - Liveness and number of held games

WebSocket messages:
  {"type":"move","direction":"left"}
  {"type":"new"}
  {"type":"state"}

Examples:
  t2048 web
  t2048 web --http :9000`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8048", "HTTP server address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "t2048-web")
	if err != nil {
		return err
	}

	store := openStoreOptional(logger)
	if store != nil {
		defer store.Close()
	}

	games := newSessionManager(store, logger)
	cfg := web.Config{
		Games:  games,
		Tools:  mcptools.NewServer(games, scoreSource(store)).MCPServer(),
		Logger: logger,
	}
	if store != nil {
		cfg.Scores = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("config loaded", "source", appConfig.Source, "size", appConfig.Board.Size)
	return web.NewServer(cfg).ListenAndServe(ctx, flagHTTPAddr)
}
