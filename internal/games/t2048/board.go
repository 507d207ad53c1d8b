// Package t2048 implements the 2048 sliding-tile puzzle: the board engine,
// the game session that drives it, and its terminal rendering.
package t2048

// Default board parameters.
const (
	DefaultSize          = 4
	DefaultStartingTiles = 2
)

// Options configures a new board.
type Options struct {
	Size          int // Board dimension (Size x Size)
	StartingTiles int // Tiles spawned when the board is created
}

// DefaultOptions returns the classic 4x4 board with two starting tiles.
func DefaultOptions() Options {
	return Options{
		Size:          DefaultSize,
		StartingTiles: DefaultStartingTiles,
	}
}

// Spawn describes a newly spawned tile.
type Spawn struct {
	Pos   Pos `json:"pos"`
	Value int `json:"value"`
}

// Board owns an NxN grid of tiles. A nil slot is empty.
type Board struct {
	size      int
	cells     [][]*Tile
	tileCount int
	rng       Rand
}

// NewBoard creates a board and spawns opts.StartingTiles tiles on it.
func NewBoard(opts Options, rng Rand) *Board {
	b := newEmptyBoard(opts.Size, rng)
	for range opts.StartingTiles {
		b.SpawnTile()
	}
	return b
}

func newEmptyBoard(size int, rng Rand) *Board {
	if size < 1 {
		panic("t2048: board size must be positive")
	}
	cells := make([][]*Tile, size)
	for r := range cells {
		cells[r] = make([]*Tile, size)
	}
	return &Board{size: size, cells: cells, rng: rng}
}

// SpawnTile places a 2 or 4 on a uniformly chosen empty slot.
// On a full board it does nothing and returns false.
func (b *Board) SpawnTile() (Spawn, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return Spawn{}, false
	}

	p := empty[b.rng.Intn(len(empty))]
	t := SpawnTile(p.Row, p.Col, b.rng)
	b.cells[p.Row][p.Col] = t
	b.tileCount++

	return Spawn{Pos: p, Value: t.value}, true
}

// Size returns the board dimension.
func (b *Board) Size() int { return b.size }

// TileCount returns the number of occupied slots.
func (b *Board) TileCount() int { return b.tileCount }

// Full reports whether every slot is occupied.
func (b *Board) Full() bool { return b.tileCount == b.size*b.size }

// At returns the tile at (row, col), if any.
func (b *Board) At(row, col int) (*Tile, bool) {
	t := b.cells[row][col]
	return t, t != nil
}

// EmptyCells returns all empty positions in row-major order.
func (b *Board) EmptyCells() []Pos {
	cells := make([]Pos, 0, b.size*b.size-b.tileCount)
	for r := range b.size {
		for c := range b.size {
			if b.cells[r][c] == nil {
				cells = append(cells, Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// Tiles returns every tile in row-major order.
// The returned tiles belong to the board and change on the next move.
func (b *Board) Tiles() []*Tile {
	tiles := make([]*Tile, 0, b.tileCount)
	for r := range b.size {
		for c := range b.size {
			if t := b.cells[r][c]; t != nil {
				tiles = append(tiles, t)
			}
		}
	}
	return tiles
}

// MaxTile returns the highest tile value, or 0 on an empty board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for _, t := range b.Tiles() {
		if t.value > maxVal {
			maxVal = t.value
		}
	}
	return maxVal
}

// IsTerminal reports whether no direction allows a slide or merge.
// A board with an empty slot is never terminal; a full board is terminal only
// if no adjacent pair can merge.
func (b *Board) IsTerminal() bool {
	if !b.Full() {
		return false
	}
	for _, d := range Directions() {
		if b.CanMove(d) {
			return false
		}
	}
	return true
}

func (b *Board) inBounds(i int) bool {
	return i >= 0 && i < b.size
}

func (b *Board) at(p Pos) *Tile {
	return b.cells[p.Row][p.Col]
}

func (b *Board) set(p Pos, t *Tile) {
	b.cells[p.Row][p.Col] = t
}
