package agent

import (
	"math"
	"math/rand/v2"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
}

// NewTrainingAgent returns a new agent for self-play during training. Moves
// are sampled from the visit counts raised to 1/temperature.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return trainingAgent{mcts: mcts, temperature: temperature}
}

func (a trainingAgent) FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, updates)
	policy = adjustTemperature(policy, a.temperature)
	return sample(policy, rand.Float64()), metric
}

func adjustTemperature(policy map[game.Move]float64, temperature float64) map[game.Move]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[game.Move]float64, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// sample walks the cumulative distribution of policy up to sampled, a number
// in [0, 1).
func sample(policy map[game.Move]float64, sampled float64) game.Move {
	if len(policy) == 0 {
		panic("cannot sample a move from an empty policy")
	}
	cumulative := 0.0
	var lastMove game.Move
	for move, prob := range policy {
		lastMove = move
		cumulative += prob
		if sampled < cumulative {
			return move
		}
	}
	return lastMove // Fallback in case of rounding errors
}
