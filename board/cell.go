package board

import "fmt"

// Color identifies the occupant of a cell. The two players are encoded as
// opposite signs so that the opponent of a color is its negation.
type Color int8

const (
	Empty  Color = 0
	First  Color = 1
	Second Color = -1
)

// Opponent returns the opposing color. The opponent of Empty is Empty.
func (c Color) Opponent() Color {
	return -c
}

func (c Color) String() string {
	switch c {
	case First:
		return "first"
	case Second:
		return "second"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("Color(%d)", int8(c))
	}
}

// Cell is a single square of the grid. An obstacle cell is never occupied.
type Cell struct {
	Occupant Color
	Obstacle bool
}

// Coord addresses a cell by column (X) and row (Y).
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is a unit step on the grid.
type Direction struct {
	DX, DY int
}

// Directions lists the 8 compass directions rays are cast along.
var Directions = [8]Direction{
	{1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}, {0, 1},
}

func (c Coord) step(d Direction) Coord {
	return Coord{X: c.X + d.DX, Y: c.Y + d.DY}
}
