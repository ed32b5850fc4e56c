package metrics

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Run("counting concurrent episodes", func(t *testing.T) {
		c := NewCollector()
		c.Start(4, 20)
		c.SetTreeReset(true)

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 25; j++ {
					c.AddEpisode()
					if j%5 == 0 {
						c.AddFullPlayout()
					}
				}
			}()
		}
		wg.Wait()

		got := c.Complete()
		require.Equal(t, 100, got.Episodes)
		require.Equal(t, 20, got.FullPlayouts)
		require.Equal(t, 4, got.Goroutines)
		require.Equal(t, 20, got.Cutoff)
		require.True(t, got.IsTreeReset)
	})

	t.Run("resetting counters on start", func(t *testing.T) {
		c := NewCollector()
		c.Start(1, 1)
		c.AddEpisode()
		c.Start(1, 1)
		require.Equal(t, 0, c.Complete().Episodes)
	})

	t.Run("dummy collector records nothing", func(t *testing.T) {
		c := NewDummyCollector()
		c.Start(8, 10)
		c.AddEpisode()
		require.Equal(t, SearchMetric{}, c.Complete())
	})
}

func sampleRecords() ([]AgentConfig, []GameRecord, []MoveRecord) {
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	configs := []AgentConfig{
		{ID: 1, Kind: "mcts", Goroutines: 4, Episodes: 50, Evaluation: "discs"},
		{ID: 2, Kind: "greedy", Evaluation: "discs"},
	}
	games := []GameRecord{
		{ID: 1, Agent1: 1, Agent2: 2, GameMetric: GameMetric{StartingPlayer: "Player1", Winner: "Player1", ScoreDiff: 10, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 30}},
		{ID: 2, Agent1: 2, Agent2: 1, GameMetric: GameMetric{StartingPlayer: "Player1", Winner: "Player2", ScoreDiff: -4, StartTime: start, EndTime: start.Add(time.Second), Duration: time.Second, TotalMoves: 31}},
		{ID: 3, Agent1: 1, Agent2: 2, GameMetric: GameMetric{StartingPlayer: "Player1", Winner: "Draw", StartTime: start, EndTime: start, TotalMoves: 32}},
	}
	moves := []MoveRecord{
		{Game: 1, MoveMetric: MoveMetric{Step: 1, Player: "Player1", Move: "4 3", SearchMetric: SearchMetric{Episodes: 50, Duration: time.Millisecond}}},
		{Game: 1, MoveMetric: MoveMetric{Step: 2, Player: "Player2", Move: "pass"}},
	}
	return configs, games, moves
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriter(t *testing.T) {
	configs, games, moves := sampleRecords()
	w, err := NewWriter(t.TempDir(), "arena")
	require.NoError(t, err)

	require.NoError(t, w.WriteAgentConfigs(configs))
	require.NoError(t, w.WriteGameRecords(games))
	require.NoError(t, w.WriteMoveRecords(moves))

	agentRows := readCSV(t, filepath.Join(w.Dir(), "agent_configs.csv"))
	require.Len(t, agentRows, 3, "header plus one row per agent")
	require.Equal(t, []string{"1", "mcts", "4", "0s", "50", "0", "discs"}, agentRows[1])

	gameRows := readCSV(t, filepath.Join(w.Dir(), "game_records.csv"))
	require.Len(t, gameRows, 4)
	require.Equal(t, "Player2", gameRows[2][4])
	require.Equal(t, "-4", gameRows[2][5])

	moveRows := readCSV(t, filepath.Join(w.Dir(), "move_records.csv"))
	require.Equal(t, []string{"1", "2", "Player2", "pass", "0s", "0", "0", "false"}, moveRows[2])
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	configs, games, moves := sampleRecords()

	store, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer store.Close()

	run := Run{ID: "run-1", Name: "arena", StartedAt: time.Now(), Agents: configs, Games: games, Moves: moves}
	require.NoError(t, store.SaveRun(ctx, run))

	wins, err := store.AgentWins(ctx, "run-1")
	require.NoError(t, err)
	// game 1: agent 1 as Player1 wins; game 2: agent 1 as Player2 wins; game 3 drawn
	require.Equal(t, map[int]int{1: 2, 0: 1}, wins)

	require.Error(t, store.SaveRun(ctx, run), "Run ids are unique")

	wins, err = store.AgentWins(ctx, "missing")
	require.NoError(t, err)
	require.Empty(t, wins)

	_, err = Open("  ")
	require.Error(t, err)
}
