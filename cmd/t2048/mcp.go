package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	mcptools "github.com/vovakirdan/tui-2048/internal/platform/mcp"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve games as MCP tools over stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout so an agent can play.

Tools: new_game, list_games, game_state, move, bulk_move, high_scores.
Logs go to stderr.

Example client configuration:
  {"command": "t2048", "args": ["mcp"]}`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "t2048-mcp")
	if err != nil {
		return err
	}

	store := openStoreOptional(logger)
	if store != nil {
		defer store.Close()
	}

	games := newSessionManager(store, logger)
	return mcptools.NewServer(games, scoreSource(store)).ServeStdio()
}

// openStoreOptional opens the score database, or returns nil and logs why not.
func openStoreOptional(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		return nil
	}
	return store
}

// scoreSource avoids handing a typed nil *storage.Store to an interface.
func scoreSource(store *storage.Store) mcptools.ScoreSource {
	if store == nil {
		return nil
	}
	return store
}

// newSessionManager builds the headless game manager from the loaded config.
func newSessionManager(store *storage.Store, logger *log.Logger) *session.Manager {
	cfg := session.Config{
		Board:  gameSettings(appConfig).Board,
		Seed:   flagSeed,
		Logger: logger,
	}
	if store != nil {
		cfg.Recorder = store
	}
	return session.NewManager(cfg)
}
