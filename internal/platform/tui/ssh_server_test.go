package tui

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestSSHServerShutdownClosesStore(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "scores.db")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.store == nil {
		t.Fatal("scores database should be open")
	}
	if err := srv.store.SaveResult(storage.GameResult{ID: "g", Score: 8, MaxTile: 4, Moves: 2, BoardSize: 4}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if srv.store != nil {
		t.Error("Shutdown should release the scores database")
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	if high, err := store.HighScore(); err != nil || high != 8 {
		t.Errorf("HighScore() = %d, %v, want 8", high, err)
	}
}
