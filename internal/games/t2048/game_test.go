package t2048

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-2048/internal/core"
)

func testConfig(seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

// settleGame steps with no input until the current move has settled.
func settleGame(t *testing.T, g *Game) {
	t.Helper()
	for range 100 {
		if !g.State().Busy {
			return
		}
		g.Step(core.NewInputFrame())
	}
	t.Fatal("animation never settled")
}

func TestDeterministicSpawn(t *testing.T) {
	g1 := New(DefaultSettings())
	g1.Reset(testConfig(12345))

	g2 := New(DefaultSettings())
	g2.Reset(testConfig(12345))

	if !reflect.DeepEqual(g1.Snapshot().Board, g2.Snapshot().Board) {
		t.Errorf("same seed should produce same initial board:\n%v\nvs\n%v", g1.Snapshot().Board, g2.Snapshot().Board)
	}
	if g1.Board().TileCount() != DefaultStartingTiles {
		t.Errorf("TileCount() = %d, want %d", g1.Board().TileCount(), DefaultStartingTiles)
	}
	if g1.ID() == g2.ID() {
		t.Error("each game should get its own ID")
	}
}

func TestInputIgnoredWhileSettling(t *testing.T) {
	g := New(DefaultSettings())
	g.Reset(testConfig(1))

	grid := emptyGrid(4)
	grid[0][0] = 2
	g.board = mustBoard(t, grid)

	g.Step(press(core.ActionRight))
	if g.Moves() != 1 {
		t.Fatalf("Moves() = %d, want 1", g.Moves())
	}
	if !g.State().Busy {
		t.Fatal("game should be busy while the move animates")
	}

	g.Step(press(core.ActionLeft))
	if g.Moves() != 1 {
		t.Errorf("move accepted while settling: Moves() = %d", g.Moves())
	}

	settleGame(t, g)
	g.Step(press(core.ActionLeft))
	if g.Moves() != 2 {
		t.Errorf("move after settle not accepted: Moves() = %d", g.Moves())
	}
}

func TestScoreAccumulatesMergeDeltas(t *testing.T) {
	settings := DefaultSettings()
	settings.SlideTicks = 0
	g := New(settings)
	g.Reset(testConfig(1))

	grid := emptyGrid(4)
	grid[0] = []int{2, 2, 4, 0}
	g.board = mustBoard(t, grid)

	g.Step(press(core.ActionLeft))

	if g.Score() != 4 {
		t.Errorf("Score() = %d, want 4", g.Score())
	}
	last, ok := g.LastMove()
	if !ok || last.Direction != DirLeft || len(last.Merges) != 1 {
		t.Errorf("LastMove() = %+v, %v", last, ok)
	}
	if row := g.Board().Grid()[0]; row[0] != 4 || row[1] != 4 {
		t.Errorf("row 0 = %v, want [4 4 ...]", row)
	}
}

func TestNoOpMoveNotCounted(t *testing.T) {
	g := New(DefaultSettings())
	g.Reset(testConfig(1))

	grid := emptyGrid(4)
	grid[0][0] = 2
	g.board = mustBoard(t, grid)

	g.Step(press(core.ActionLeft))

	if g.Moves() != 0 || g.State().Busy {
		t.Errorf("blocked move should not count or animate: moves=%d busy=%v", g.Moves(), g.State().Busy)
	}
	if g.Board().TileCount() != 1 {
		t.Errorf("blocked move spawned a tile: TileCount() = %d", g.Board().TileCount())
	}
}

func TestGameOverAfterSettle(t *testing.T) {
	g := New(Settings{Board: Options{Size: 2, StartingTiles: 2}, SlideTicks: 2, PopTicks: 1})
	g.Reset(testConfig(1))

	// Left merges the top row; the spawn fills (0,1) with a 2 and locks the board.
	b, err := FromGrid([][]int{{2, 2}, {8, 4}}, &scriptedRand{vals: []int{0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	g.board = b

	g.Step(press(core.ActionLeft))
	if g.State().GameOver {
		t.Fatal("game over must wait for the move to settle")
	}

	settleGame(t, g)

	if !g.State().GameOver {
		t.Fatalf("expected game over, board = %v", g.Board().Grid())
	}
	if g.Snapshot().State != StateGameOver {
		t.Errorf("Snapshot State = %s, want %s", g.Snapshot().State, StateGameOver)
	}

	g.Step(press(core.ActionRight))
	if g.Moves() != 1 {
		t.Error("moves should be ignored after game over")
	}
}

func TestResetOnFullBoard(t *testing.T) {
	terminal := 0
	for seed := int64(1); seed < 200; seed++ {
		g := New(Settings{Board: Options{Size: 2, StartingTiles: 4}, SlideTicks: 2, PopTicks: 1})
		g.Reset(testConfig(seed))

		if got, want := g.State().GameOver, g.Board().IsTerminal(); got != want {
			t.Fatalf("seed %d grid %v: GameOver = %v, IsTerminal = %v", seed, g.Board().Grid(), got, want)
		}
		if g.Board().IsTerminal() {
			terminal++
		}
	}
	if terminal == 0 {
		t.Fatal("no seed produced a locked starting board")
	}
}

func TestResult(t *testing.T) {
	g := New(Settings{Board: Options{Size: 4, StartingTiles: 2}})
	g.Reset(testConfig(1))

	b, err := FromGrid([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 16},
	}, &scriptedRand{vals: []int{0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	g.board = b

	g.Step(press(core.ActionLeft))
	settleGame(t, g)

	r := g.Result()
	if r.ID != g.ID() {
		t.Errorf("ID = %q, want %q", r.ID, g.ID())
	}
	if r.Score != 4 || r.Moves != 1 {
		t.Errorf("Score, Moves = %d, %d, want 4, 1", r.Score, r.Moves)
	}
	if r.MaxTile != 16 || r.BoardSize != 4 {
		t.Errorf("MaxTile, BoardSize = %d, %d, want 16, 4", r.MaxTile, r.BoardSize)
	}
}

func TestPauseToggle(t *testing.T) {
	g := New(DefaultSettings())
	g.Reset(testConfig(1))

	g.Step(press(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("P should pause the game")
	}

	before := g.Board().Grid()
	g.Step(press(core.ActionUp))
	g.Step(press(core.ActionDown))
	if !reflect.DeepEqual(before, g.Board().Grid()) {
		t.Error("board changed while paused")
	}

	g.Step(press(core.ActionPause))
	if g.State().Paused {
		t.Error("second P should resume the game")
	}
}

func TestUnrecognizedInputIgnored(t *testing.T) {
	g := New(DefaultSettings())
	g.Reset(testConfig(5))
	before := g.Snapshot()

	g.Step(press(core.ActionRestart))
	g.Step(core.NewInputFrame())

	after := g.Snapshot()
	if !reflect.DeepEqual(before.Board, after.Board) || after.Moves != 0 {
		t.Error("unrecognized input should not change the game")
	}
	if after.Tick != 2 {
		t.Errorf("Tick = %d, want 2", after.Tick)
	}
}

func TestTooSmallScreen(t *testing.T) {
	g := New(DefaultSettings())
	cfg := testConfig(1)
	cfg.ScreenW, cfg.ScreenH = 20, 8
	g.Reset(cfg)

	if g.Snapshot().State != StatePausedSmall {
		t.Errorf("State = %s, want %s", g.Snapshot().State, StatePausedSmall)
	}

	screen := core.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected resize hint")
	}

	g.Resize(80, 24)
	if g.Snapshot().State != StatePlaying {
		t.Errorf("State after resize = %s, want %s", g.Snapshot().State, StatePlaying)
	}
}

func TestRenderShowsTilesAndScore(t *testing.T) {
	settings := DefaultSettings()
	settings.SlideTicks = 0
	g := New(settings)
	g.Reset(testConfig(1))

	grid := emptyGrid(4)
	grid[2][3] = 1024
	g.board = mustBoard(t, grid)

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"2048", "Score: 0", "Max: 1024", "1024"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestTileColor(t *testing.T) {
	tests := []struct {
		value int
		want  core.Color
	}{
		{2, core.ColorGray},
		{4, core.ColorWhite},
		{2048, core.ColorBrightBlue},
		{1 << 20, core.ColorBrightGreen},
	}
	for _, tt := range tests {
		if got := TileColor(tt.value); got != tt.want {
			t.Errorf("TileColor(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}
}
