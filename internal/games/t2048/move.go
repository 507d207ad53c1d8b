package t2048

// TileMove records one tile travelling during a move.
type TileMove struct {
	From   Pos
	To     Pos
	Value  int  // Value before any merge
	Merged bool // The tile was consumed by a merge at To
}

// Merge records a merge; Value is the new tile value and the score delta.
type Merge struct {
	At    Pos
	Value int
}

// MoveResult is everything a move produced, in processing order.
type MoveResult struct {
	Direction Direction
	Moved     bool // At least one tile changed position or merged
	Score     int  // Sum of merge values
	Moves     []TileMove
	Merges    []Merge
	Spawned   *Spawn // Nil if nothing moved or the board was full
}

// Move slides every tile toward dir, resolves merges, and spawns one tile if
// anything changed.
func (b *Board) Move(dir Direction) MoveResult {
	res := b.slide(dir)
	if !res.Moved {
		return res
	}
	if sp, ok := b.SpawnTile(); ok {
		res.Spawned = &sp
	}
	return res
}

// slide performs the slide-and-merge pass without spawning.
//
// Each line is scanned from the destination wall inward, so a tile is placed
// only after everything in front of it has settled. A tile produced by a merge
// is flagged and never merges again within the same move.
func (b *Board) slide(dir Direction) MoveResult {
	res := MoveResult{Direction: dir}
	s := dir.scan(b.size)
	merged := make([]bool, b.size)

	for line := range b.size {
		clear(merged)

		for i := s.start; b.inBounds(i); i += s.step {
			from := s.pos(line, i)
			t := b.at(from)
			if t == nil {
				continue
			}

			// Farthest empty slot toward the wall.
			dest := i
			for j := i - s.step; b.inBounds(j) && b.at(s.pos(line, j)) == nil; j -= s.step {
				dest = j
			}

			// The slot past dest is either off the board or occupied.
			if next := dest - s.step; b.inBounds(next) {
				at := s.pos(line, next)
				target := b.at(at)
				if target.value == t.value && !merged[next] {
					nt := MergeTiles(t, target)
					b.set(from, nil)
					b.set(at, nt)
					b.tileCount--
					merged[next] = true

					res.Score += nt.value
					res.Merges = append(res.Merges, Merge{At: at, Value: nt.value})
					res.Moves = append(res.Moves, TileMove{From: from, To: at, Value: t.value, Merged: true})
					continue
				}
			}

			if dest == i {
				continue
			}
			to := s.pos(line, dest)
			b.set(from, nil)
			t.MoveTo(to.Row, to.Col)
			b.set(to, t)
			res.Moves = append(res.Moves, TileMove{From: from, To: to, Value: t.value})
		}
	}

	res.Moved = len(res.Moves) > 0
	return res
}

// CanMove reports whether a move toward dir would change the board.
// It never mutates the board.
func (b *Board) CanMove(dir Direction) bool {
	s := dir.scan(b.size)
	for line := range b.size {
		for i := s.start; b.inBounds(i); i += s.step {
			t := b.at(s.pos(line, i))
			if t == nil {
				continue
			}
			j := i - s.step
			if !b.inBounds(j) {
				continue
			}
			if n := b.at(s.pos(line, j)); n == nil || n.value == t.value {
				return true
			}
		}
	}
	return false
}
