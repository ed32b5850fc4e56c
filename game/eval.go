package game

import (
	"golang.org/x/exp/constraints"
)

// Evaluations indexes the evaluation functions by the name used in
// configuration.
var Evaluations = map[string]Evaluate{
	"discs":          EvaluateDiscs,
	"mobility":       EvaluateMobility,
	"discs-mobility": EvaluateDiscsMobility,
}

// EvaluateDiscs compares disc counts to produce a relative score between -1
// and 1 from the current player's perspective
func EvaluateDiscs(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	current := gs.Current
	return normalize(gs.Board.Count(current), gs.Board.Count(current.Opponent()))
}

// EvaluateMobility compares the number of legal placements of each player
func EvaluateMobility(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	current := gs.Current
	return normalize(len(gs.Board.LegalMoves(current)), len(gs.Board.LegalMoves(current.Opponent())))
}

func EvaluateDiscsMobility(s State) float64 {
	return (EvaluateDiscs(s) + EvaluateMobility(s)) / 2
}

// normalize normalizes value relative to otherValue to a score between -1 and 1
func normalize[T constraints.Integer | constraints.Float](value, otherValue T) float64 {
	total := float64(value) + float64(otherValue)
	if total == 0 {
		return 0
	}
	return (float64(value) - float64(otherValue)) / total
}
