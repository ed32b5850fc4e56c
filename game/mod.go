package game

// Move is a disc placement at (X, Y), or a pass when the player to move has
// no placement but the opponent does.
type Move struct {
	X    int  `json:"x"`
	Y    int  `json:"y"`
	Pass bool `json:"pass,omitempty"`
}

// PassMove is the only legal move of a player without placements.
var PassMove = Move{Pass: true}

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() string
	LegalMoves() []Move
	Play(Move) State
	Hash() StateHash
	Winner() string
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64
