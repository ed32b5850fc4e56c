package experiments

import (
	"bufio"
	"context"
	"os"
	"othello/board"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher/agent"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewAgent(t *testing.T) {
	t.Run("building every kind", func(t *testing.T) {
		configs := []metrics.AgentConfig{
			{Kind: KindMCTS, Goroutines: 2, Episodes: 10},
			{Kind: "", Duration: time.Millisecond},
			{Kind: KindTraining, Episodes: 10, Evaluation: "mobility"},
			{Kind: KindGreedy, Evaluation: "discs-mobility"},
			{Kind: KindRandom},
			{Kind: KindHuman},
			{Kind: "http://localhost:8080"},
		}
		for _, config := range configs {
			a, err := NewAgent(config)
			require.NoError(t, err, config.Kind)
			require.NotNil(t, a, config.Kind)
		}
	})

	t.Run("rejecting invalid configs", func(t *testing.T) {
		_, err := NewAgent(metrics.AgentConfig{Kind: "minimax"})
		require.ErrorIs(t, err, ErrUnknownKind)

		_, err = NewAgent(metrics.AgentConfig{Kind: KindGreedy, Evaluation: "corners"})
		require.ErrorIs(t, err, ErrUnknownEvaluation)

		_, err = NewAgent(metrics.AgentConfig{Kind: KindMCTS, Goroutines: 4})
		require.ErrorIs(t, err, ErrNoBudget)
	})

	t.Run("reading human moves from the console", func(t *testing.T) {
		saved := Console
		defer func() { Console = saved }()
		Console.In = bufio.NewScanner(strings.NewReader("pass\npass\n"))
		Console.Out = &strings.Builder{}

		a1, err := NewAgent(metrics.AgentConfig{Kind: KindHuman})
		require.NoError(t, err)
		a2, err := NewAgent(metrics.AgentConfig{Kind: KindHuman})
		require.NoError(t, err)

		b, err := board.FromRows([]string{"XO..", "....", "....", "...."})
		require.NoError(t, err)
		state := game.FromBoard(b, board.Second)
		move, _ := a1.FindMove(state, nil)
		require.Equal(t, game.PassMove, move)
		move, _ = a2.FindMove(state, nil)
		require.Equal(t, game.PassMove, move, "Human agents should share the console input")
	})
}

func TestArena(t *testing.T) {
	t.Run("alternating the starting agent", func(t *testing.T) {
		arena := Arena{
			Agents:    [2]AgentFactory{random, greedy},
			IDs:       [2]int{7, 9},
			Size:      6,
			Obstacles: -1,
			Seed:      5,
		}

		result, err := arena.PlayGames(4, 11)
		require.NoError(t, err)

		require.Equal(t, 4, result.OneWon+result.TwoWon+result.Draws)
		require.Len(t, result.Games, 4)
		oneWon, twoWon := 0, 0
		for i, g := range result.Games {
			require.Equal(t, 11+i, g.ID)
			if i%2 == 0 {
				require.Equal(t, [2]int{7, 9}, [2]int{g.Agent1, g.Agent2})
			} else {
				require.Equal(t, [2]int{9, 7}, [2]int{g.Agent1, g.Agent2})
			}
			switch {
			case g.Winner == game.Player1 && g.Agent1 == 7, g.Winner == game.Player2 && g.Agent2 == 7:
				oneWon++
			case g.Winner == game.Player1 || g.Winner == game.Player2:
				twoWon++
			}
		}
		require.Equal(t, oneWon, result.OneWon)
		require.Equal(t, twoWon, result.TwoWon)

		total := 0
		for _, g := range result.Games {
			total += g.TotalMoves
		}
		require.Len(t, result.Moves, total)
		require.Equal(t, 11, result.Moves[0].Game)
		require.Equal(t, 14, result.Moves[len(result.Moves)-1].Game)
	})

	t.Run("defaulting agent ids", func(t *testing.T) {
		arena := Arena{Agents: [2]AgentFactory{random, random}, Size: 4}
		result, err := arena.PlayGames(2, 1)
		require.NoError(t, err)
		require.Equal(t, 1, result.Games[0].Agent1)
		require.Equal(t, 2, result.Games[1].Agent1)
	})

	t.Run("rejecting invalid boards", func(t *testing.T) {
		arena := Arena{Agents: [2]AgentFactory{random, random}, Size: 5}
		_, err := arena.PlayGames(1, 1)
		require.ErrorIs(t, err, board.ErrInvalidSize)
	})
}

func random() agent.Agent { return agent.NewRandomAgent(nil) }
func greedy() agent.Agent { return agent.NewGreedyAgent(nil) }

func TestRun(t *testing.T) {
	t.Run("recording a run", func(t *testing.T) {
		dir := t.TempDir()
		store, err := metrics.Open(filepath.Join(dir, "records.sqlite"))
		require.NoError(t, err)
		defer store.Close()

		one := metrics.AgentConfig{ID: 1, Kind: KindMCTS, Goroutines: 2, Episodes: 20, Cutoff: 4}
		two := metrics.AgentConfig{ID: 2, Kind: KindRandom}
		exp := Experiment{
			Name:      "smoke",
			Configs:   []metrics.AgentConfig{one, two},
			MatchUps:  [][2]metrics.AgentConfig{{one, two}},
			Games:     2,
			Size:      6,
			Obstacles: 0,
			Seed:      1,
		}

		run, err := Run(context.Background(), exp, dir, store)
		require.NoError(t, err)

		require.NotEmpty(t, run.ID)
		require.Len(t, run.Games, 2)
		require.NotEmpty(t, run.Moves)

		wins, err := store.AgentWins(context.Background(), run.ID)
		require.NoError(t, err)
		total := 0
		for _, n := range wins {
			total += n
		}
		require.Equal(t, 2, total)

		runs, err := os.ReadDir(filepath.Join(dir, "smoke"))
		require.NoError(t, err)
		require.Len(t, runs, 1)
		for _, name := range []string{"agent_configs.csv", "game_records.csv", "move_records.csv"} {
			require.FileExists(t, filepath.Join(dir, "smoke", runs[0].Name(), name))
		}
	})

	t.Run("failing on invalid agents", func(t *testing.T) {
		bad := metrics.AgentConfig{ID: 1, Kind: "minimax"}
		exp := Experiment{Name: "bad", MatchUps: [][2]metrics.AgentConfig{{bad, bad}}, Games: 1, Size: 6}
		_, err := Run(context.Background(), exp, "", nil)
		require.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("stopping on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Run(ctx, BaselineExperiment(6), "", nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestPresets(t *testing.T) {
	for name, preset := range Presets {
		exp := preset(6)
		require.Equal(t, name, exp.Name)
		require.NotEmpty(t, exp.MatchUps)
		ids := map[int]bool{}
		for _, config := range exp.Configs {
			require.Positive(t, config.ID, "Id 0 is reserved for draws")
			require.False(t, ids[config.ID], "Agent ids should be unique")
			ids[config.ID] = true
			_, err := NewAgent(config)
			require.NoError(t, err)
		}
		for _, matchUp := range exp.MatchUps {
			require.True(t, ids[matchUp[0].ID])
			require.True(t, ids[matchUp[1].ID])
		}
	}
}
