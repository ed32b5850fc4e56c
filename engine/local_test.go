package engine

import (
	"math/rand/v2"
	"othello/board"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"othello/searcher/agent"
	"testing"

	"github.com/stretchr/testify/require"
)

// recordingAgent remembers the lineage it received on each call.
type recordingAgent struct {
	agent.Agent
	updates    [][]searcher.Segment
	mismatches int
}

func (a *recordingAgent) FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	a.updates = append(a.updates, updates)
	if len(updates) > 0 && updates[len(updates)-1].StateHash != state.Hash() {
		a.mismatches++
	}
	return a.Agent.FindMove(state, updates)
}

func newGame(t *testing.T, seed uint64) *game.GameState {
	t.Helper()
	gs, err := game.NewGameState(6, board.WithRand(rand.New(rand.NewPCG(seed, seed))))
	require.NoError(t, err)
	return gs
}

func TestLocalEngineRun(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		r := rand.New(rand.NewPCG(seed, 7))
		one := &recordingAgent{Agent: agent.NewRandomAgent(r)}
		two := &recordingAgent{Agent: agent.NewRandomAgent(r)}
		e := NewLocalEngine([]agent.Agent{one, two}, newGame(t, seed))

		winner, gameMetric, moveMetrics := e.Run()

		require.NotEmpty(t, winner, "Othello games always finish")
		require.Equal(t, winner, gameMetric.Winner)
		require.Equal(t, game.Player1, gameMetric.StartingPlayer)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, len(one.updates)+len(two.updates), gameMetric.TotalMoves)
		require.False(t, gameMetric.EndTime.Before(gameMetric.StartTime))

		switch winner {
		case game.Player1:
			require.Positive(t, gameMetric.ScoreDiff)
		case game.Player2:
			require.Negative(t, gameMetric.ScoreDiff)
		default:
			require.Zero(t, gameMetric.ScoreDiff)
		}

		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			expected := game.Player1
			if i%2 == 1 {
				expected = game.Player2
			}
			require.Equal(t, expected, mm.Player, "Turns alternate, passes included")
		}

		// Each agent hears about every move since its previous one
		require.Empty(t, one.updates[0])
		require.Len(t, two.updates[0], 1)
		for _, updates := range append(one.updates[1:], two.updates[1:]...) {
			require.Len(t, updates, 2)
		}
		require.Zero(t, one.mismatches+two.mismatches, "Lineage should end at the state being searched")
		require.NotNil(t, e.State().LastMove)
	}
}

func TestLocalEngineMCTS(t *testing.T) {
	agents := []agent.Agent{
		agent.NewEvaluationAgent(searcher.NewMCTS(2, searcher.WithEpisodes(30), searcher.WithMetrics())),
		agent.NewGreedyAgent(nil),
	}
	e := NewLocalEngine(agents, newGame(t, 3))

	winner, _, moveMetrics := e.Run()

	require.NotEmpty(t, winner)
	require.Equal(t, 30, moveMetrics[0].Episodes)
	require.True(t, moveMetrics[0].IsTreeReset)
}

func TestNewLocalEngine(t *testing.T) {
	require.Panics(t, func() { NewLocalEngine([]agent.Agent{agent.NewRandomAgent(nil)}, newGame(t, 1)) })
	require.Panics(t, func() { NewLocalEngine([]agent.Agent{agent.NewRandomAgent(nil), agent.NewRandomAgent(nil)}, nil) })
}
