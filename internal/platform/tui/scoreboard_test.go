package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

func TestScoreboardShowsScores(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveResult(storage.GameResult{ID: "a", Score: 1234, MaxTile: 128, Moves: 90, BoardSize: 4})
	store.SaveResult(storage.GameResult{ID: "b", Score: 56, MaxTile: 16, Moves: 12, BoardSize: 4})

	m := NewScoreboardModel(store, 100, 30)
	view := m.View()

	for _, want := range []string{"2048 HIGH SCORES", "1234", "#1", "Games: 2", "Best tile: 128"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q:\n%s", want, view)
		}
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	if !strings.Contains(m.View(), "No games recorded yet.") {
		t.Error("empty scoreboard should say so")
	}
}

func TestScoreboardQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.(ScoreboardModel).View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestScoreboardResize(t *testing.T) {
	m := NewScoreboardModel(nil, 80, 24)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	sb := next.(ScoreboardModel)
	if sb.width != 120 || sb.height != 40 {
		t.Errorf("size = %dx%d, want 120x40", sb.width, sb.height)
	}
}
