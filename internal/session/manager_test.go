package session

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

type fakeRecorder struct {
	mu      sync.Mutex
	results []storage.GameResult
}

func (r *fakeRecorder) SaveResult(res storage.GameResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
	return nil
}

func newTestManager(size int, rec Recorder) *Manager {
	return NewManager(Config{
		Board:    t2048.Options{Size: size, StartingTiles: 2},
		Seed:     42,
		Recorder: rec,
		Logger:   log.New(io.Discard),
	})
}

func countTiles(board [][]int) int {
	n := 0
	for _, row := range board {
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
	}
	return n
}

// playUntilOver cycles the four directions until the game ends.
func playUntilOver(t *testing.T, m *Manager, id string) MoveOutcome {
	t.Helper()
	dirs := t2048.Directions()
	var out MoveOutcome
	for i := 0; i < 10000; i++ {
		var err error
		out, err = m.Move(id, dirs[i%len(dirs)])
		if err != nil {
			t.Fatalf("Move() failed: %v", err)
		}
		if out.GameOver {
			return out
		}
	}
	t.Fatal("game did not end")
	return out
}

func TestCreateAndGet(t *testing.T) {
	m := newTestManager(4, nil)

	st, err := m.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if st.ID == "" || st.Size != 4 {
		t.Errorf("Create() = %+v", st)
	}
	if got := countTiles(st.Board); got != 2 {
		t.Errorf("new game has %d tiles, want 2", got)
	}

	got, err := m.Get(st.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.ID != st.ID || got.Score != 0 || got.Moves != 0 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestSeededGamesAreDeterministic(t *testing.T) {
	a, _ := newTestManager(4, nil).Create()
	b, _ := newTestManager(4, nil).Create()

	for r := range a.Board {
		for c := range a.Board[r] {
			if a.Board[r][c] != b.Board[r][c] {
				t.Fatalf("boards differ:\n%v\n%v", a.Board, b.Board)
			}
		}
	}
}

func TestUnknownGame(t *testing.T) {
	m := newTestManager(4, nil)

	if _, err := m.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
	if _, err := m.Move("nope", t2048.DirLeft); !errors.Is(err, ErrNotFound) {
		t.Errorf("Move() error = %v, want ErrNotFound", err)
	}
}

func TestMoveCountsOnlyEffectiveMoves(t *testing.T) {
	m := newTestManager(4, nil)
	st, _ := m.Create()

	moved := 0
	for _, d := range t2048.Directions() {
		out, err := m.Move(st.ID, d)
		if err != nil {
			t.Fatalf("Move() failed: %v", err)
		}
		if out.Moved {
			moved++
			if out.Spawned == nil {
				t.Error("effective move should spawn")
			}
		} else if out.Spawned != nil {
			t.Error("no-op move spawned a tile")
		}
		if out.Moves != moved {
			t.Errorf("Moves = %d, want %d", out.Moves, moved)
		}
	}
}

func TestScoreSumsGains(t *testing.T) {
	m := newTestManager(4, nil)
	st, _ := m.Create()

	total := 0
	for i := range 40 {
		out, err := m.Move(st.ID, t2048.Directions()[i%4])
		if errors.Is(err, ErrGameOver) {
			break
		}
		if err != nil {
			t.Fatalf("Move() failed: %v", err)
		}
		total += out.Gained
		if out.Score != total {
			t.Fatalf("Score = %d, want %d", out.Score, total)
		}
	}
}

func TestGameOverIsRecordedOnce(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestManager(2, rec)
	st, _ := m.Create()

	final := playUntilOver(t, m, st.ID)

	if _, err := m.Move(st.ID, t2048.DirLeft); !errors.Is(err, ErrGameOver) {
		t.Errorf("move after game over: error = %v, want ErrGameOver", err)
	}

	if len(rec.results) != 1 {
		t.Fatalf("recorded %d results, want 1", len(rec.results))
	}
	got := rec.results[0]
	if got.ID != st.ID || got.Score != final.Score || got.Moves != final.Moves || got.BoardSize != 2 {
		t.Errorf("recorded %+v, final state %+v", got, final.State)
	}
}

func TestMaxGames(t *testing.T) {
	m := NewManager(Config{MaxGames: 2, Logger: log.New(io.Discard)})

	first, _ := m.Create()
	m.Create()
	if _, err := m.Create(); !errors.Is(err, ErrLimit) {
		t.Errorf("third Create() error = %v, want ErrLimit", err)
	}

	m.Remove(first.ID)
	if _, err := m.Create(); err != nil {
		t.Errorf("Create() after Remove failed: %v", err)
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestListOrdersByLastUpdate(t *testing.T) {
	m := newTestManager(4, nil)
	a, _ := m.Create()
	b, _ := m.Create()

	// Make a the most recently updated game.
	for _, d := range t2048.Directions() {
		if out, _ := m.Move(a.ID, d); out.Moved {
			break
		}
	}

	list := m.List()
	if len(list) != 2 {
		t.Fatalf("List() returned %d games", len(list))
	}
	if list[0].ID != a.ID || list[1].ID != b.ID {
		t.Errorf("List() order = [%s %s], want [%s %s]", list[0].ID, list[1].ID, a.ID, b.ID)
	}
}

func TestConcurrentMoves(t *testing.T) {
	m := newTestManager(4, nil)
	st, _ := m.Create()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(d t2048.Direction) {
			defer wg.Done()
			for range 25 {
				m.Move(st.ID, d)
			}
		}(t2048.Directions()[i%4])
	}
	wg.Wait()

	got, err := m.Get(st.ID)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.MaxTile < 2 {
		t.Errorf("MaxTile = %d after concurrent play", got.MaxTile)
	}
}
