package t2048

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned when a value grid cannot describe a board.
var ErrInvalidGrid = errors.New("t2048: invalid grid")

// Grid returns the board as rows of values, with 0 for an empty slot.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.size)
	for r := range b.size {
		grid[r] = make([]int, b.size)
		for c := range b.size {
			if t := b.cells[r][c]; t != nil {
				grid[r][c] = t.value
			}
		}
	}
	return grid
}

// FromGrid builds a board holding exactly the values in grid (0 = empty).
// No tiles are spawned.
func FromGrid(grid [][]int, rng Rand) (*Board, error) {
	size := len(grid)
	if size == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidGrid)
	}

	b := newEmptyBoard(size, rng)
	for r, row := range grid {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidGrid, r, len(row), size)
		}
		for c, v := range row {
			if v == 0 {
				continue
			}
			if !isTileValue(v) {
				return nil, fmt.Errorf("%w: value %d at (%d,%d) is not a power of two >= 2", ErrInvalidGrid, v, r, c)
			}
			b.cells[r][c] = NewTile(r, c, v)
			b.tileCount++
		}
	}
	return b, nil
}

func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
