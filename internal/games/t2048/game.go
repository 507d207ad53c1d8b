package t2048

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Settings configures a game session.
type Settings struct {
	Board      Options
	SlideTicks int // Ticks a slide animation lasts; 0 disables animation
	PopTicks   int // Ticks the spawn pop lasts
}

// DefaultSettings returns a 4x4 board with ~133ms slides at 60fps.
func DefaultSettings() Settings {
	return Settings{
		Board:      DefaultOptions(),
		SlideTicks: 8,
		PopTicks:   6,
	}
}

// Game is one play session: the board plus score, move count and the
// animation that gates input between moves.
type Game struct {
	settings Settings
	id       string
	rng      *rand.Rand
	tick     uint64

	board *Board
	score int
	moves int
	last  *MoveResult

	screenW int
	screenH int

	gameOver bool
	paused   bool
	tooSmall bool

	animating      bool
	animationPhase AnimationPhase
	animationTicks int
	animations     []TileAnimation
	pendingNewTile *Spawn
}

// New creates a game. Call Reset before the first Step.
func New(settings Settings) *Game {
	return &Game{settings: settings}
}

// Reset starts a fresh game seeded from cfg.Seed.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.id = uuid.New().String()
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.score = 0
	g.moves = 0
	g.last = nil
	g.gameOver = false
	g.paused = false
	g.clearAnimation()

	g.board = NewBoard(g.settings.Board, g.rng)
	// Starting tiles can fill the board with nothing to merge.
	g.settle()

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions without touching the board.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the board and HUD fit on screen.
func (g *Game) checkScreenSize() {
	size := g.settings.Board.Size
	minW := size*cellWidth + 1
	minH := size*cellHeight + 1 + hudHeight + 2
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	// One move in flight at a time: input is dropped until it settles.
	if g.updateAnimation() {
		return core.StepResult{State: g.State()}
	}

	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	if dir, ok := directionFor(in); ok {
		g.processMove(dir)
	}

	return core.StepResult{State: g.State()}
}

// directionFor maps the first direction action in the frame to a Direction.
func directionFor(in core.InputFrame) (Direction, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft):
		return DirLeft, true
	case in.Has(core.ActionRight):
		return DirRight, true
	}
	return 0, false
}

// processMove applies a move and starts its animation.
func (g *Game) processMove(dir Direction) {
	res := g.board.Move(dir)
	if !res.Moved {
		return
	}

	g.score += res.Score
	g.moves++
	g.last = &res

	if g.settings.SlideTicks <= 0 {
		g.settle()
		return
	}
	g.pendingNewTile = res.Spawned
	g.startSlideAnimation(res.Moves)
}

// settle runs once a move has fully finished, spawn included.
func (g *Game) settle() {
	if g.board.IsTerminal() {
		g.gameOver = true
	}
}

// Result returns the score record for the current game.
func (g *Game) Result() storage.GameResult {
	return storage.GameResult{
		ID:        g.id,
		Score:     g.score,
		MaxTile:   g.board.MaxTile(),
		Moves:     g.moves,
		BoardSize: g.board.Size(),
	}
}

// Board returns the live board.
func (g *Game) Board() *Board { return g.board }

// ID returns the unique identifier of the current game.
func (g *Game) ID() string { return g.id }

// Score returns the running score.
func (g *Game) Score() int { return g.score }

// Moves returns the number of moves that changed the board.
func (g *Game) Moves() int { return g.moves }

// LastMove returns the result of the most recent effective move, if any.
func (g *Game) LastMove() (MoveResult, bool) {
	if g.last == nil {
		return MoveResult{}, false
	}
	return *g.last, true
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused || g.tooSmall,
		Busy:     g.animating,
	}
}
