package t2048

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateSettling    GameStateType = "settling"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the observable game state for determinism tests and the
// score store.
type Snapshot struct {
	ID      string
	Tick    uint64
	Size    int
	Score   int
	Moves   int
	Board   [][]int // Row-major values, 0 = empty
	MaxTile int
	State   GameStateType
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.gameOver:
		state = StateGameOver
	case g.paused:
		state = StatePaused
	case g.animating:
		state = StateSettling
	}

	return Snapshot{
		ID:      g.id,
		Tick:    g.tick,
		Size:    g.board.Size(),
		Score:   g.score,
		Moves:   g.moves,
		Board:   g.board.Grid(),
		MaxTile: g.board.MaxTile(),
		State:   state,
	}
}
