package t2048

import "fmt"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions returns all four directions in a fixed order.
func Directions() []Direction {
	return []Direction{DirUp, DirDown, DirLeft, DirRight}
}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection converts a name ("up", "down", "left", "right") to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions() {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}

// scan describes how a direction walks the grid.
// Lines run perpendicular to the movement axis. Along a line, cells are visited
// from start by step, so the cell next to the destination wall comes first and
// tiles travel by -step.
type scan struct {
	vertical bool
	start    int
	step     int
}

func (d Direction) scan(size int) scan {
	switch d {
	case DirUp:
		return scan{vertical: true, start: 0, step: 1}
	case DirDown:
		return scan{vertical: true, start: size - 1, step: -1}
	case DirLeft:
		return scan{vertical: false, start: 0, step: 1}
	default:
		return scan{vertical: false, start: size - 1, step: -1}
	}
}

// pos maps (line, index along the axis) to a grid position.
func (s scan) pos(line, i int) Pos {
	if s.vertical {
		return Pos{Row: i, Col: line}
	}
	return Pos{Row: line, Col: i}
}
