package experiments

import (
	"fmt"
	"math/rand/v2"
	"othello/board"
	"othello/engine"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher/agent"

	"github.com/rs/zerolog/log"
)

// AgentFactory builds a fresh agent, with its own search tree, for a game.
type AgentFactory func() agent.Agent

// Arena pits two agents against each other.
type Arena struct {
	Agents    [2]AgentFactory
	IDs       [2]int // Recorded as GameRecord.Agent1/Agent2; defaults to 1 and 2
	Size      int
	Obstacles int    // Obstacle draws per board; negative uses the board default
	Seed      uint64 // Seeds obstacle placement; 0 draws from the global source
}

// Result tallies the games of an arena from the point of view of Agents[0].
type Result struct {
	OneWon int
	TwoWon int
	Draws  int
	Games  []metrics.GameRecord
	Moves  []metrics.MoveRecord
}

// PlayGames plays num games, alternating which agent starts. Game ids are
// numbered from firstID.
func (a Arena) PlayGames(num, firstID int) (Result, error) {
	ids := a.IDs
	if ids == [2]int{} {
		ids = [2]int{1, 2}
	}

	var r board.Rand
	if a.Seed != 0 {
		r = rand.New(rand.NewPCG(a.Seed, a.Seed))
	}

	var result Result
	for i := 0; i < num; i++ {
		opts := []board.Option{}
		if r != nil {
			opts = append(opts, board.WithRand(r))
		}
		if a.Obstacles >= 0 {
			opts = append(opts, board.WithObstacles(a.Obstacles))
		}
		state, err := game.NewGameState(a.Size, opts...)
		if err != nil {
			return result, fmt.Errorf("game %d: %w", i+1, err)
		}

		// Agents[0] moves first in even games
		first, second := 0, 1
		if i%2 == 1 {
			first, second = 1, 0
		}
		e := engine.NewLocalEngine([]agent.Agent{a.Agents[first](), a.Agents[second]()}, state)
		winner, gameMetric, moveMetrics := e.Run()

		switch {
		case winner == game.Draw || winner == "":
			result.Draws++
		case (winner == game.Player1) == (first == 0):
			result.OneWon++
		default:
			result.TwoWon++
		}

		id := firstID + i
		result.Games = append(result.Games, metrics.GameRecord{
			ID:         id,
			Agent1:     ids[first],
			Agent2:     ids[second],
			GameMetric: gameMetric,
		})
		for _, mm := range moveMetrics {
			result.Moves = append(result.Moves, metrics.MoveRecord{Game: id, MoveMetric: mm})
		}
		log.Info().Msgf("game %d of %d: agent %d (Player1) vs agent %d (Player2), winner: %s", i+1, num, ids[first], ids[second], winner)
	}
	return result, nil
}
