package game

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"othello/board"
)

const (
	Player1 = "Player1" // moves first, plays board.First discs
	Player2 = "Player2"
	Draw    = "Draw"
)

var ErrUnknownPlayer = errors.New("unknown player")

// GameState is one Othello session: the board plus the color to move. The
// board is never mutated once the state is shared; Play works on a copy.
type GameState struct {
	Board    *board.Board
	Current  board.Color
	LastMove *Move
	Won      string // The winner once neither side can move, "" before that
}

// NewGameState starts a game on a fresh board of the given size with the
// first player to move.
func NewGameState(size int, opts ...board.Option) (*GameState, error) {
	b, err := board.New(size, opts...)
	if err != nil {
		return nil, fmt.Errorf("new game: %w", err)
	}
	return FromBoard(b, board.First), nil
}

// FromBoard wraps an existing position with current to move.
func FromBoard(b *board.Board, current board.Color) *GameState {
	gs := &GameState{Board: b, Current: current}
	gs.Won = gs.checkWinner()
	return gs
}

// PlayerName maps a disc color to the player that owns it.
func PlayerName(c board.Color) string {
	if c == board.Second {
		return Player2
	}
	return Player1
}

// ColorOf maps a player name to its disc color.
func ColorOf(player string) (board.Color, error) {
	switch player {
	case Player1:
		return board.First, nil
	case Player2:
		return board.Second, nil
	default:
		return board.Empty, fmt.Errorf("%q: %w", player, ErrUnknownPlayer)
	}
}

func (gs *GameState) Copy() *GameState {
	return &GameState{
		Board:    gs.Board.Copy(),
		Current:  gs.Current,
		LastMove: gs.LastMove, // Moves are values, never mutated
		Won:      gs.Won,
	}
}

// Player returns the identifier of the current player.
func (gs *GameState) Player() string {
	return PlayerName(gs.Current)
}

// LegalMoves returns the placements of the current player, a single pass if
// it has none while the opponent can still move, and nothing once the game is
// over.
func (gs *GameState) LegalMoves() []Move {
	coords := gs.Board.LegalMoves(gs.Current)
	if len(coords) == 0 {
		if gs.Board.HasLegalMoves(gs.Current.Opponent()) {
			return []Move{PassMove}
		}
		return nil
	}
	moves := make([]Move, len(coords))
	for i, c := range coords {
		moves[i] = Placement(c)
	}
	return moves
}

// Play returns the state after move. It panics if the game is over or the
// move is not legal.
func (gs *GameState) Play(move Move) State {
	if gs.Won != "" {
		panic(fmt.Sprintf("move %s played after game over", move))
	}

	newGs := gs.Copy()
	if move.Pass {
		if gs.Board.HasLegalMoves(gs.Current) {
			panic(fmt.Sprintf("%s cannot pass with legal moves available", gs.Player()))
		}
	} else {
		newGs.Board.ExecuteMove(move.Coord(), gs.Current)
	}

	newGs.Current = gs.Current.Opponent()
	newGs.LastMove = &move
	newGs.Won = newGs.checkWinner()
	return newGs
}

// Over reports whether neither player can move.
func (gs *GameState) Over() bool {
	return !gs.Board.HasLegalMoves(board.First) && !gs.Board.HasLegalMoves(board.Second)
}

// gets the winner of the game
func (gs *GameState) Winner() string {
	return gs.Won
}

func (gs *GameState) checkWinner() string {
	if !gs.Over() {
		return ""
	}
	switch diff := gs.Board.CountDiff(board.First); {
	case diff > 0:
		return Player1
	case diff < 0:
		return Player2
	default:
		return Draw
	}
}

// Score returns the disc difference from color's point of view.
func (gs *GameState) Score(color board.Color) int {
	return gs.Board.CountDiff(color)
}

func (gs *GameState) Hash() StateHash {
	hasher := fnv.New64a()
	hasher.Write(binary.LittleEndian.AppendUint64(nil, gs.Board.Hash()))
	hasher.Write([]byte{byte(gs.Current)})
	return StateHash(hasher.Sum64())
}

type wireState struct {
	Rows   []string `json:"rows"`
	Player string   `json:"player"`
}

func (gs *GameState) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireState{Rows: gs.Board.Rows(), Player: gs.Player()})
}

func (gs *GameState) UnmarshalJSON(data []byte) error {
	var w wireState
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b, err := board.FromRows(w.Rows)
	if err != nil {
		return fmt.Errorf("decode board: %w", err)
	}
	current, err := ColorOf(w.Player)
	if err != nil {
		return fmt.Errorf("decode player: %w", err)
	}
	*gs = *FromBoard(b, current)
	return nil
}
