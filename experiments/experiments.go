package experiments

import (
	"context"
	"fmt"
	"othello/experiments/metrics"
	"othello/searcher/agent"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
)

// Experiment is a series of match ups between configured agents.
type Experiment struct {
	Name      string
	Configs   []metrics.AgentConfig
	MatchUps  [][2]metrics.AgentConfig
	Games     int // Per match up
	Size      int
	Obstacles int
	Seed      uint64
}

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Kind: KindMCTS, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Kind: KindMCTS, Goroutines: 4, Duration: TimeBudget},
	{ID: 3, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget},
	{ID: 4, Kind: KindMCTS, Goroutines: 16, Duration: TimeBudget},
	{ID: 5, Kind: KindMCTS, Goroutines: 32, Duration: TimeBudget},
}

// ParallelizationExperiment pairs each parallel agent against the sequential
// baseline under the same time budget.
func ParallelizationExperiment(size int) Experiment {
	baseline := metrics.AgentConfig{ID: 6, Kind: KindMCTS, Goroutines: 1, Duration: TimeBudget}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{
		Name:      "parallelization",
		Configs:   append(append([]metrics.AgentConfig{}, parallelConfigs...), baseline),
		MatchUps:  matchUps,
		Games:     NumGames,
		Size:      size,
		Obstacles: -1,
	}
}

// CutoffExperiment pairs full playouts against rollouts cut off early and
// evaluated.
func CutoffExperiment(size int) Experiment {
	baseline := metrics.AgentConfig{ID: 1, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget} // Full playout
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 2, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 2, Evaluation: "discs"},
		{ID: 3, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 5, Evaluation: "discs"},
		{ID: 4, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 10, Evaluation: "discs"},
		{ID: 5, Kind: KindMCTS, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 10, Evaluation: "discs-mobility"},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range cutoffConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}
	return Experiment{
		Name:      "cutoff",
		Configs:   append([]metrics.AgentConfig{baseline}, cutoffConfigs...),
		MatchUps:  matchUps,
		Games:     NumGames,
		Size:      size,
		Obstacles: -1,
	}
}

// BaselineExperiment pairs MCTS against the greedy and random players.
func BaselineExperiment(size int) Experiment {
	mcts := metrics.AgentConfig{ID: 1, Kind: KindMCTS, Goroutines: 8, Duration: TimeBudget}
	greedy := metrics.AgentConfig{ID: 2, Kind: KindGreedy, Evaluation: "discs"}
	random := metrics.AgentConfig{ID: 3, Kind: KindRandom}
	return Experiment{
		Name:      "baseline",
		Configs:   []metrics.AgentConfig{mcts, greedy, random},
		MatchUps:  [][2]metrics.AgentConfig{{mcts, greedy}, {mcts, random}, {greedy, random}},
		Games:     NumGames,
		Size:      size,
		Obstacles: -1,
	}
}

// Presets indexes the predefined experiments by name.
var Presets = map[string]func(size int) Experiment{
	"parallelization": ParallelizationExperiment,
	"cutoff":          CutoffExperiment,
	"baseline":        BaselineExperiment,
}

// Run plays every match up of exp. Records are written as csv under outDir
// when it is set, and saved to store when it is not nil.
func Run(ctx context.Context, exp Experiment, outDir string, store *metrics.Store) (metrics.Run, error) {
	run := metrics.Run{
		ID:        uuid.NewString(),
		Name:      exp.Name,
		StartedAt: time.Now(),
		Agents:    exp.Configs,
	}

	log.Info().Str("run", run.ID).Msgf("starting %s experiment...", exp.Name)

	count := 0
	for mi, matchUp := range exp.MatchUps {
		config1, config2 := matchUp[0], matchUp[1]
		if err := ctx.Err(); err != nil {
			return run, err
		}
		// Validate both configs before playing
		for _, config := range matchUp {
			if _, err := NewAgent(config); err != nil {
				return run, fmt.Errorf("agent %d: %w", config.ID, err)
			}
		}

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(exp.MatchUps), config1, config2)

		arena := Arena{
			Agents:    [2]AgentFactory{factory(config1), factory(config2)},
			IDs:       [2]int{config1.ID, config2.ID},
			Size:      exp.Size,
			Obstacles: exp.Obstacles,
			Seed:      exp.Seed,
		}
		result, err := arena.PlayGames(exp.Games, count+1)
		if err != nil {
			return run, fmt.Errorf("matchup %d: %w", mi+1, err)
		}
		count += len(result.Games)
		run.Games = append(run.Games, result.Games...)
		run.Moves = append(run.Moves, result.Moves...)

		log.Info().Msgf("completed matchup %d of %d: agent %d won %d, agent %d won %d, %d draws",
			mi+1, len(exp.MatchUps), config1.ID, result.OneWon, config2.ID, result.TwoWon, result.Draws)
	}

	log.Info().Msgf("completed %s experiment", exp.Name)

	if outDir != "" {
		if err := writeRecords(outDir, run); err != nil {
			return run, err
		}
	}
	if store != nil {
		if err := store.SaveRun(ctx, run); err != nil {
			return run, fmt.Errorf("save run: %w", err)
		}
		log.Info().Str("run", run.ID).Msg("saved run")
	}
	return run, nil
}

func factory(config metrics.AgentConfig) AgentFactory {
	return func() agent.Agent {
		a, err := NewAgent(config)
		if err != nil {
			panic(err) // Validated before the arena starts
		}
		return a
	}
}

func writeRecords(outDir string, run metrics.Run) error {
	// Store experiment metadata
	writer, err := metrics.NewWriter(outDir, run.Name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err := writer.WriteAgentConfigs(run.Agents); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err := writer.WriteGameRecords(run.Games); err != nil {
		return fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err := writer.WriteMoveRecords(run.Moves); err != nil {
		return fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored move records")
	return nil
}
