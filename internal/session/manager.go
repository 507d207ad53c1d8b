// Package session manages headless 2048 games for remote clients.
//
// Each game is a bare board engine with a score and move count; there is no
// animation or screen. A Manager is safe for concurrent use and records
// finished games through an optional Recorder.
package session

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

var (
	ErrNotFound = errors.New("session: game not found")
	ErrGameOver = errors.New("session: game is over")
	ErrLimit    = errors.New("session: too many games")
)

// DefaultMaxGames caps concurrently held games.
const DefaultMaxGames = 1000

// Recorder persists finished games. *storage.Store implements it.
type Recorder interface {
	SaveResult(storage.GameResult) error
}

// Config configures a Manager.
type Config struct {
	Board    t2048.Options
	MaxGames int   // 0 means DefaultMaxGames
	Seed     int64 // Non-zero makes games deterministic: game n uses Seed+n
	Recorder Recorder
	Logger   *log.Logger
}

// State is the observable state of one game.
type State struct {
	ID       string  `json:"id"`
	Size     int     `json:"size"`
	Board    [][]int `json:"board"`
	Score    int     `json:"score"`
	Moves    int     `json:"moves"`
	MaxTile  int     `json:"max_tile"`
	GameOver bool    `json:"game_over"`
}

// MoveOutcome is the state after a move plus what the move did.
type MoveOutcome struct {
	State
	Direction string       `json:"direction"`
	Moved     bool         `json:"moved"`
	Gained    int          `json:"gained"`
	Spawned   *t2048.Spawn `json:"spawned,omitempty"`
}

type game struct {
	id      string
	board   *t2048.Board
	score   int
	moves   int
	over    bool
	updated time.Time
}

func (g *game) state() State {
	return State{
		ID:       g.id,
		Size:     g.board.Size(),
		Board:    g.board.Grid(),
		Score:    g.score,
		Moves:    g.moves,
		MaxTile:  g.board.MaxTile(),
		GameOver: g.over,
	}
}

// Manager holds games by ID.
type Manager struct {
	mu       sync.Mutex
	games    map[string]*game
	cfg      Config
	created  int64
	logger   *log.Logger
	recorder Recorder
}

// NewManager creates a manager. A zero Board uses t2048.DefaultOptions.
func NewManager(cfg Config) *Manager {
	if cfg.Board.Size == 0 {
		cfg.Board = t2048.DefaultOptions()
	}
	if cfg.MaxGames <= 0 {
		cfg.MaxGames = DefaultMaxGames
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		games:    make(map[string]*game),
		cfg:      cfg,
		logger:   logger,
		recorder: cfg.Recorder,
	}
}

// Create starts a new game.
func (m *Manager) Create() (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.games) >= m.cfg.MaxGames {
		return State{}, fmt.Errorf("%w (max %d)", ErrLimit, m.cfg.MaxGames)
	}

	seed := time.Now().UnixNano()
	if m.cfg.Seed != 0 {
		seed = m.cfg.Seed + m.created
	}
	m.created++

	g := &game{
		id:      uuid.New().String(),
		board:   t2048.NewBoard(m.cfg.Board, rand.New(rand.NewSource(seed))),
		updated: time.Now(),
	}
	// A board can start terminal only when StartingTiles fills it.
	g.over = g.board.IsTerminal()
	m.games[g.id] = g

	m.logger.Debug("game created", "game", g.id, "size", m.cfg.Board.Size)
	return g.state(), nil
}

// Get returns the state of a game.
func (m *Manager) Get(id string) (State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[id]
	if !ok {
		return State{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return g.state(), nil
}

// Move applies one move. A move that changes nothing is not counted.
func (m *Manager) Move(id string, dir t2048.Direction) (MoveOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.games[id]
	if !ok {
		return MoveOutcome{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if g.over {
		return MoveOutcome{State: g.state(), Direction: dir.String()}, ErrGameOver
	}

	res := g.board.Move(dir)
	if res.Moved {
		g.score += res.Score
		g.moves++
		g.updated = time.Now()
		if g.board.IsTerminal() {
			g.over = true
			m.record(g)
		}
	}

	return MoveOutcome{
		State:     g.state(),
		Direction: dir.String(),
		Moved:     res.Moved,
		Gained:    res.Score,
		Spawned:   res.Spawned,
	}, nil
}

// Remove drops a game. Unknown IDs are ignored.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
}

// List returns all games, most recently updated first.
func (m *Manager) List() []State {
	m.mu.Lock()
	defer m.mu.Unlock()

	games := make([]*game, 0, len(m.games))
	for _, g := range m.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool {
		if games[i].updated.Equal(games[j].updated) {
			return games[i].id < games[j].id
		}
		return games[i].updated.After(games[j].updated)
	})

	states := make([]State, len(games))
	for i, g := range games {
		states[i] = g.state()
	}
	return states
}

// Len returns the number of held games.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games)
}

// record saves a finished game. Called with mu held.
func (m *Manager) record(g *game) {
	m.logger.Info("game over", "game", g.id, "score", g.score, "max", g.board.MaxTile(), "moves", g.moves)
	if m.recorder == nil {
		return
	}
	err := m.recorder.SaveResult(storage.GameResult{
		ID:        g.id,
		Score:     g.score,
		MaxTile:   g.board.MaxTile(),
		Moves:     g.moves,
		BoardSize: g.board.Size(),
	})
	if err != nil {
		m.logger.Warn("could not save score", "game", g.id, "error", err)
	}
}
