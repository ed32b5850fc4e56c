package game

import (
	"fmt"
	"othello/board"
)

func (m Move) String() string {
	if m.Pass {
		return "pass"
	}
	return fmt.Sprintf("%d %d", m.X, m.Y)
}

// Coord returns the board coordinate of a placement.
func (m Move) Coord() board.Coord {
	return board.Coord{X: m.X, Y: m.Y}
}

// Placement returns the move placing a disc at c.
func Placement(c board.Coord) Move {
	return Move{X: c.X, Y: c.Y}
}
