package agent

import (
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
)

type Agent interface {
	// FindMove returns the move to play and performance metrics (if collected)
	// from the search. updates lists the moves played since the agent last moved.
	FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric)
}
