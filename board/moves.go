package board

import (
	"fmt"
	"iter"
	"slices"
)

// IllegalMoveError is the panic value of ExecuteMove when the move does not
// bracket any opponent disc. It is never expected given a caller that only
// submits moves returned by LegalMoves.
type IllegalMoveError struct {
	Move  Coord
	Color Color
	Board string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s for %s player on board:\n%s", e.Move, e.Color, e.Board)
}

// CountDiff returns the number of discs of color minus the number of discs
// of its opponent.
func (b *Board) CountDiff(color Color) int {
	count := 0
	for _, cell := range b.cells {
		switch cell.Occupant {
		case color:
			count++
		case color.Opponent():
			count--
		}
	}
	return count
}

// LegalMoves returns every destination where color may place a disc, in
// row-major order. Only membership is meaningful.
func (b *Board) LegalMoves(color Color) []Coord {
	set := make(map[Coord]struct{})
	for y := 0; y < b.n; y++ {
		for x := 0; x < b.n; x++ {
			cell := b.get(Coord{x, y})
			if cell.Occupant != color || cell.Obstacle {
				continue
			}
			moves, _ := b.MovesForSquare(Coord{x, y})
			for _, m := range moves {
				set[m] = struct{}{}
			}
		}
	}

	moves := make([]Coord, 0, len(set))
	for m := range set {
		moves = append(moves, m)
	}
	slices.SortFunc(moves, func(a, b Coord) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return moves
}

// HasLegalMoves reports whether color has at least one legal move.
func (b *Board) HasLegalMoves(color Color) bool {
	for y := 0; y < b.n; y++ {
		for x := 0; x < b.n; x++ {
			cell := b.get(Coord{x, y})
			if cell.Occupant != color || cell.Obstacle {
				continue
			}
			if moves, _ := b.MovesForSquare(Coord{x, y}); len(moves) > 0 {
				return true
			}
		}
	}
	return false
}

// MovesForSquare returns the destinations reachable by bracketing from the
// disc at square. It reports false for an empty or obstacle square.
func (b *Board) MovesForSquare(square Coord) ([]Coord, bool) {
	if !b.inBounds(square) {
		return nil, false
	}
	cell := b.get(square)
	if cell.Occupant == Empty || cell.Obstacle {
		return nil, false
	}

	var moves []Coord
	for _, d := range Directions {
		if move, ok := b.discoverMove(square, d); ok {
			moves = append(moves, move)
		}
	}
	return moves, true
}

// ExecuteMove places a disc of color at move and flips every bracketed
// opponent disc. It panics with an *IllegalMoveError if the move is not
// legal; the board is left untouched in that case.
func (b *Board) ExecuteMove(move Coord, color Color) {
	if !b.inBounds(move) || color == Empty {
		panic(&IllegalMoveError{Move: move, Color: color, Board: b.String()})
	}
	if dest := b.get(move); dest.Occupant != Empty || dest.Obstacle {
		panic(&IllegalMoveError{Move: move, Color: color, Board: b.String()})
	}

	var flips []Coord
	for _, d := range Directions {
		flips = append(flips, b.getFlips(move, d, color)...)
	}
	if len(flips) == 0 {
		panic(&IllegalMoveError{Move: move, Color: color, Board: b.String()})
	}

	for _, c := range flips {
		if b.get(c).Obstacle {
			panic(fmt.Sprintf("flip run of move %s for %s reached obstacle %s", move, color, c))
		}
	}
	for _, c := range flips {
		b.set(c, Cell{Occupant: color})
	}
}

// discoverMove walks from origin along d and returns the empty landing cell
// that closes a bracket of opponent discs, if any. Obstacles are dead ends.
func (b *Board) discoverMove(origin Coord, d Direction) (Coord, bool) {
	color := b.get(origin).Occupant
	passed := false
	for c := range b.ray(origin, d) {
		cell := b.get(c)
		switch {
		case cell.Obstacle:
			return Coord{}, false
		case cell.Occupant == Empty:
			return c, passed
		case cell.Occupant == color:
			return Coord{}, false
		default:
			passed = true
		}
	}
	return Coord{}, false
}

// getFlips returns origin followed by the opponent discs between origin and
// the nearest disc of color along d, or nil when no such bracket exists.
func (b *Board) getFlips(origin Coord, d Direction, color Color) []Coord {
	flips := []Coord{origin}
	for c := range b.ray(origin, d) {
		cell := b.get(c)
		switch {
		case cell.Obstacle, cell.Occupant == Empty:
			return nil
		case cell.Occupant == color.Opponent():
			flips = append(flips, c)
		case len(flips) > 1:
			return flips
		default:
			return nil
		}
	}
	return nil
}

// ray yields the in-bounds cells after origin along d.
func (b *Board) ray(origin Coord, d Direction) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for c := origin.step(d); b.inBounds(c); c = c.step(d) {
			if !yield(c) {
				return
			}
		}
	}
}
