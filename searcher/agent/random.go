package agent

import (
	"math/rand/v2"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"time"
)

// Rand is the source of randomness of the random agent. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

type randomAgent struct {
	rand Rand
}

// NewRandomAgent returns an agent playing uniformly random legal moves. A nil
// r uses the global source.
func NewRandomAgent(r Rand) Agent {
	if r == nil {
		r = globalRand{}
	}
	return randomAgent{rand: r}
}

func (a randomAgent) FindMove(state game.State, _ []searcher.Segment) (game.Move, metrics.SearchMetric) {
	start := time.Now()
	moves := state.LegalMoves()
	if len(moves) == 0 {
		panic("no legal moves to choose from")
	}
	move := moves[a.rand.IntN(len(moves))]
	return move, metrics.SearchMetric{Goroutines: 1, Duration: time.Since(start)}
}
