package searcher

import (
	"othello/experiments/metrics"
	"othello/game"
)

type mockState struct {
	player string
	moves  []game.Move
	played []game.Move
	winner string
}

func (m mockState) Player() string {
	return m.player
}

func (m mockState) LegalMoves() []game.Move {
	return m.moves
}

func (m mockState) Play(move game.Move) game.State {
	played := make([]game.Move, len(m.played), len(m.played)+1)
	copy(played, m.played)
	return mockState{player: m.player, played: append(played, move)}
}

func (m mockState) Hash() game.StateHash {
	return game.StateHash(len(m.played))
}

func (m mockState) Winner() string {
	return m.winner
}

func keys(policy map[game.Move]float64) []game.Move {
	moves := make([]game.Move, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	return moves
}

type countingCollector struct {
	fullPlayouts int
}

func (c *countingCollector) Start(goroutines, cutoff int) {}
func (c *countingCollector) SetTreeReset(value bool)      {}
func (c *countingCollector) AddFullPlayout()              { c.fullPlayouts++ }
func (c *countingCollector) AddEpisode()                  {}
func (c *countingCollector) Complete() metrics.SearchMetric {
	return metrics.SearchMetric{}
}

func mostVisited(policy map[game.Move]float64) game.Move {
	var best game.Move
	maxVisits := -1.0
	for move, visits := range policy {
		if visits > maxVisits {
			best, maxVisits = move, visits
		}
	}
	return best
}
