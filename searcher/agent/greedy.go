package agent

import (
	"math"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"time"
)

type greedyAgent struct {
	evaluate game.Evaluate
}

// NewGreedyAgent returns an agent playing the move that leaves the mover with
// the best evaluation. A game-winning move always comes first.
func NewGreedyAgent(evaluate game.Evaluate) Agent {
	if evaluate == nil {
		evaluate = game.EvaluateDiscs
	}
	return greedyAgent{evaluate: evaluate}
}

func (a greedyAgent) FindMove(state game.State, _ []searcher.Segment) (game.Move, metrics.SearchMetric) {
	start := time.Now()
	moves := state.LegalMoves()
	if len(moves) == 0 {
		panic("no legal moves to choose from")
	}

	mover := state.Player()
	best := moves[0]
	bestScore := math.Inf(-1)
	for _, move := range moves {
		score := a.score(state.Play(move), mover)
		if score > bestScore {
			bestScore = score
			best = move
		}
	}
	return best, metrics.SearchMetric{Goroutines: 1, Episodes: len(moves), Duration: time.Since(start)}
}

func (a greedyAgent) score(next game.State, mover string) float64 {
	switch winner := next.Winner(); winner {
	case "":
	case mover:
		return math.Inf(1)
	case game.Draw:
		return 0
	default:
		return math.Inf(-1)
	}
	score := a.evaluate(next)
	if next.Player() != mover {
		return -score
	}
	return score
}
