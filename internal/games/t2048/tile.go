package t2048

// Rand is the random source used for spawning.
// *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Pos is a board position.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Tile is a single numbered piece on the board.
// Two tiles are the same tile only if they are the same pointer.
type Tile struct {
	value int
	row   int
	col   int
}

// NewTile creates a tile with an explicit value.
func NewTile(row, col, value int) *Tile {
	return &Tile{value: value, row: row, col: col}
}

// SpawnTile creates a tile whose value is a coin flip between 2 and 4.
func SpawnTile(row, col int, rng Rand) *Tile {
	value := 2
	if rng.Intn(2) == 1 {
		value = 4
	}
	return NewTile(row, col, value)
}

// MergeTiles returns a new tile at target's position holding the sum of both values.
// Neither input is modified; the caller drops both.
func MergeTiles(moving, target *Tile) *Tile {
	return NewTile(target.row, target.col, moving.value+target.value)
}

// MoveTo updates the tile position.
func (t *Tile) MoveTo(row, col int) {
	t.row = row
	t.col = col
}

// Value returns the tile value.
func (t *Tile) Value() int { return t.value }

// Row returns the tile row.
func (t *Tile) Row() int { return t.row }

// Col returns the tile column.
func (t *Tile) Col() int { return t.col }

// Pos returns the tile position.
func (t *Tile) Pos() Pos { return Pos{Row: t.row, Col: t.col} }
