// Package board implements the Othello-with-obstacles rules engine: an n×n
// grid of discs and immovable obstacle cells, legal move generation and move
// execution with capture.
//
// A Board is not safe for concurrent use. Parallel self-play should give each
// game its own Board (see Copy).
package board

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
)

var (
	ErrInvalidSize    = errors.New("board size must be even and at least 2")
	ErrInvalidCell    = errors.New("invalid cell")
	ErrStartingSquare = errors.New("obstacle on a starting square")
	ErrOutOfBounds    = errors.New("coordinate out of bounds")
)

// Rand is the random source used to place obstacles. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// Board is a square grid of cells stored row-major (index y*n+x).
type Board struct {
	n     int
	cells []Cell
}

type options struct {
	draws  int
	rand   Rand
	forced []Coord
}

// Option configures New.
type Option func(o *options)

// WithObstacles sets the number of random obstacle draws. Draws are
// independent and may land on the same cell, so fewer obstacles than
// requested can be placed. Zero disables random obstacles.
func WithObstacles(draws int) Option {
	return func(o *options) {
		if draws >= 0 {
			o.draws = draws
		}
	}
}

// WithRand injects the random source for obstacle placement.
func WithRand(r Rand) Option {
	return func(o *options) {
		if r != nil {
			o.rand = r
		}
	}
}

// WithObstacleAt places obstacles at fixed coordinates in addition to the
// random draws.
func WithObstacleAt(coords ...Coord) Option {
	return func(o *options) {
		o.forced = append(o.forced, coords...)
	}
}

// New returns a board of size n with the four starting discs and, by
// default, n/2 random obstacle draws.
func New(n int, opts ...Option) (*Board, error) {
	if n < 2 || n%2 != 0 {
		return nil, fmt.Errorf("new board of size %d: %w", n, ErrInvalidSize)
	}
	o := options{draws: n / 2, rand: globalRand{}}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Board{n: n, cells: make([]Cell, n*n)}

	c1, c2 := n/2-1, n/2
	b.set(Coord{c1, c2}, Cell{Occupant: First})
	b.set(Coord{c2, c1}, Cell{Occupant: First})
	b.set(Coord{c1, c1}, Cell{Occupant: Second})
	b.set(Coord{c2, c2}, Cell{Occupant: Second})

	for _, c := range o.forced {
		if !b.inBounds(c) {
			return nil, fmt.Errorf("obstacle at %s: %w", c, ErrOutOfBounds)
		}
		if b.isStartingSquare(c) {
			return nil, fmt.Errorf("obstacle at %s: %w", c, ErrStartingSquare)
		}
		b.set(c, Cell{Obstacle: true})
	}

	for i := 0; i < o.draws; i++ {
		c := Coord{X: o.rand.IntN(n), Y: o.rand.IntN(n)}
		if !b.isStartingSquare(c) {
			b.set(c, Cell{Obstacle: true})
		}
	}

	return b, nil
}

// FromRows builds a board from text rows, top row first. '.' is an empty
// cell, 'X' a First disc, 'O' a Second disc and '#' an obstacle.
func FromRows(rows []string) (*Board, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("board from rows: %w", ErrInvalidSize)
	}
	b := &Board{n: n, cells: make([]Cell, n*n)}
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != n {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", y, len(runes), n, ErrInvalidSize)
		}
		for x, r := range runes {
			var cell Cell
			switch r {
			case '.':
			case 'X':
				cell.Occupant = First
			case 'O':
				cell.Occupant = Second
			case '#':
				cell.Obstacle = true
			default:
				return nil, fmt.Errorf("rune %q at (%d,%d): %w", r, x, y, ErrInvalidCell)
			}
			b.set(Coord{x, y}, cell)
		}
	}
	return b, nil
}

// Size returns n.
func (b *Board) Size() int {
	return b.n
}

// At returns the cell at column x, row y. It panics when out of bounds.
func (b *Board) At(x, y int) Cell {
	c := Coord{x, y}
	if !b.inBounds(c) {
		panic(fmt.Sprintf("cell %s outside %dx%d board", c, b.n, b.n))
	}
	return b.get(c)
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{n: b.n, cells: cells}
}

// Count returns the number of cells occupied by color.
func (b *Board) Count(color Color) int {
	count := 0
	for _, cell := range b.cells {
		if cell.Occupant == color && !cell.Obstacle {
			count++
		}
	}
	return count
}

// Obstacles returns the number of obstacle cells.
func (b *Board) Obstacles() int {
	count := 0
	for _, cell := range b.cells {
		if cell.Obstacle {
			count++
		}
	}
	return count
}

// Empties returns the number of cells that are neither occupied nor obstacles.
func (b *Board) Empties() int {
	count := 0
	for _, cell := range b.cells {
		if !cell.Obstacle && cell.Occupant == Empty {
			count++
		}
	}
	return count
}

// Hash returns an FNV-64a digest of the grid.
func (b *Board) Hash() uint64 {
	hasher := fnv.New64a()
	hasher.Write(binary.LittleEndian.AppendUint64(nil, uint64(b.n)))
	for _, cell := range b.cells {
		v := int8(cell.Occupant)
		if cell.Obstacle {
			v = 2
		}
		hasher.Write([]byte{byte(v)})
	}
	return hasher.Sum64()
}

// Rows renders the board in the format accepted by FromRows.
func (b *Board) Rows() []string {
	rows := make([]string, b.n)
	var sb strings.Builder
	for y := 0; y < b.n; y++ {
		sb.Reset()
		for x := 0; x < b.n; x++ {
			cell := b.get(Coord{x, y})
			switch {
			case cell.Obstacle:
				sb.WriteByte('#')
			case cell.Occupant == First:
				sb.WriteByte('X')
			case cell.Occupant == Second:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}

func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("  ")
	for x := 0; x < b.n; x++ {
		fmt.Fprintf(&sb, "%d", x%10)
	}
	sb.WriteByte('\n')
	for y, row := range b.Rows() {
		fmt.Fprintf(&sb, "%d %s\n", y%10, row)
	}
	return sb.String()
}

func (b *Board) inBounds(c Coord) bool {
	return c.X >= 0 && c.X < b.n && c.Y >= 0 && c.Y < b.n
}

func (b *Board) get(c Coord) Cell {
	return b.cells[c.Y*b.n+c.X]
}

func (b *Board) set(c Coord, cell Cell) {
	b.cells[c.Y*b.n+c.X] = cell
}

func (b *Board) isStartingSquare(c Coord) bool {
	c1, c2 := b.n/2-1, b.n/2
	return (c.X == c1 || c.X == c2) && (c.Y == c1 || c.Y == c2)
}
