package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, updates)
	return findMax(policy), metric
}

// findMax returns the most visited move. Ties go to the move that comes first
// in row-major order, placements before the pass.
func findMax(policy map[game.Move]float64) game.Move {
	if len(policy) == 0 {
		panic("cannot pick a move from an empty policy")
	}
	var maxMove game.Move
	maxVisit := -1.0
	for move, visit := range policy {
		if visit > maxVisit || visit == maxVisit && before(move, maxMove) {
			maxVisit = visit
			maxMove = move
		}
	}
	return maxMove
}

func before(a, b game.Move) bool {
	if a.Pass != b.Pass {
		return !a.Pass
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}
