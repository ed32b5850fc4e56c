package engine

import (
	"othello/board"
	"othello/experiments/metrics"
	"othello/game"
	"othello/meta"
	"othello/searcher"
	"othello/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

type LocalEngine struct {
	state  *game.GameState
	agents []agent.Agent
}

// NewLocalEngine plays agents[0] as Player1 and agents[1] as Player2 from
// state.
func NewLocalEngine(agents []agent.Agent, state *game.GameState) *LocalEngine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	if state == nil {
		panic("need a starting state")
	}
	return &LocalEngine{state: state, agents: agents}
}

// State returns the current position.
func (e *LocalEngine) State() *game.GameState {
	return e.state
}

// Run executes the entire game loop until a winner is found.
func (e *LocalEngine) Run() (string, metrics.GameMetric, []metrics.MoveMetric) {
	// Moves played since each agent last moved
	updates := make([][]searcher.Segment, len(e.agents))

	gameMetric := metrics.GameMetric{
		StartingPlayer: e.state.Player(),
		StartTime:      time.Now(),
	}
	log.Debug().Msgf("%s is starting", e.state.Player())

	var moveMetrics []metrics.MoveMetric
	step := 1
	for e.state.Winner() == "" && step <= meta.MaxMoves {
		player := e.state.Player()
		i := agentIndex(player)

		move, searchMetric := e.agents[i].FindMove(e.state, updates[i])
		updates[i] = nil
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         move.String(),
			SearchMetric: searchMetric,
		})

		next := e.state.Play(move).(*game.GameState)
		segment := searcher.Segment{Move: move, StateHash: next.Hash()}
		for j := range updates {
			updates[j] = append(updates[j], segment)
		}
		log.Trace().Int("step", step).Str("player", player).Stringer("move", move).Msg("played")

		e.state = next
		step++
	}

	if e.state.Winner() == "" {
		log.Warn().Msgf("stopped after %d moves without a winner", meta.MaxMoves)
	}

	gameMetric.Winner = e.state.Winner()
	gameMetric.ScoreDiff = e.state.Score(board.First)
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(moveMetrics)
	return e.state.Winner(), gameMetric, moveMetrics
}

func agentIndex(player string) int {
	if player == game.Player2 {
		return 1
	}
	return 0
}
