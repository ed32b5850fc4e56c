// Command play pits two agents against each other on Othello boards with
// obstacles, or runs one of the predefined experiments.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"othello/config"
	"othello/experiments"
	"othello/experiments/metrics"
	"othello/game"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load("play", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.SetupLogging(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("play failed")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	exp, err := experiment(cfg)
	if err != nil {
		return err
	}

	var store *metrics.Store
	if cfg.DBPath != "" {
		store, err = metrics.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	result, err := experiments.Run(ctx, exp, cfg.OutDir, store)
	if err != nil {
		return err
	}

	wins := make(map[int]int)
	draws := 0
	for _, g := range result.Games {
		switch g.Winner {
		case game.Player1:
			wins[g.Agent1]++
		case game.Player2:
			wins[g.Agent2]++
		default:
			draws++
		}
	}
	for _, ac := range exp.Configs {
		log.Info().Int("agent", ac.ID).Str("kind", ac.Kind).Int("wins", wins[ac.ID]).Msg("result")
	}
	log.Info().Int("draws", draws).Int("games", len(result.Games)).Str("run", result.ID).Msg("done")
	return nil
}

// experiment builds the predefined experiment named in cfg, or a single match
// up of agent1 against agent2.
func experiment(cfg config.Config) (experiments.Experiment, error) {
	if cfg.Experiment != "" {
		preset, ok := experiments.Presets[cfg.Experiment]
		if !ok {
			return experiments.Experiment{}, fmt.Errorf("unknown experiment %q", cfg.Experiment)
		}
		exp := preset(cfg.Size)
		exp.Games = cfg.Games
		exp.Obstacles = cfg.Obstacles
		exp.Seed = cfg.Seed
		return exp, nil
	}

	agentConfig := func(id int, kind string) metrics.AgentConfig {
		return metrics.AgentConfig{
			ID:         id,
			Kind:       kind,
			Goroutines: cfg.Goroutines,
			Duration:   cfg.Duration,
			Episodes:   cfg.Episodes,
			Cutoff:     cfg.Cutoff,
			Evaluation: cfg.Evaluation,
		}
	}
	one, two := agentConfig(1, cfg.Agent1), agentConfig(2, cfg.Agent2)
	return experiments.Experiment{
		Name:      "match",
		Configs:   []metrics.AgentConfig{one, two},
		MatchUps:  [][2]metrics.AgentConfig{{one, two}},
		Games:     cfg.Games,
		Size:      cfg.Size,
		Obstacles: cfg.Obstacles,
		Seed:      cfg.Seed,
	}, nil
}
