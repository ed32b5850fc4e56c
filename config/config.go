// Package config loads command configuration from OTHELLO_* environment
// variables, overridden by command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"othello/board"
	"othello/game"
	"othello/meta"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	LogLevel  string `env:"OTHELLO_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"OTHELLO_LOG_FORMAT" envDefault:"console"` // console or json

	// Board
	Size      int    `env:"OTHELLO_BOARD_SIZE"`
	Obstacles int    `env:"OTHELLO_OBSTACLES" envDefault:"-1"` // Negative draws n/2 obstacles
	Seed      uint64 `env:"OTHELLO_SEED"`

	// Search
	Goroutines int           `env:"OTHELLO_GOROUTINES"`
	Episodes   int           `env:"OTHELLO_EPISODES"`
	Duration   time.Duration `env:"OTHELLO_DURATION"`
	Cutoff     int           `env:"OTHELLO_CUTOFF"`
	Evaluation string        `env:"OTHELLO_EVALUATION" envDefault:"discs"`

	// Arena
	Agent1     string `env:"OTHELLO_AGENT1" envDefault:"mcts"`
	Agent2     string `env:"OTHELLO_AGENT2" envDefault:"greedy"`
	Games      int    `env:"OTHELLO_GAMES" envDefault:"2"`
	Experiment string `env:"OTHELLO_EXPERIMENT"`
	OutDir     string `env:"OTHELLO_OUT_DIR"`
	DBPath     string `env:"OTHELLO_DB_PATH"`

	// Agent server
	Addr string `env:"OTHELLO_ADDR" envDefault:":8080"`
}

// Load reads the environment, then the flags in args.
func Load(name string, args []string) (Config, error) {
	cfg := Config{
		Size:       meta.BoardSize,
		Goroutines: meta.Goroutines,
		Episodes:   meta.Episodes,
		Cutoff:     meta.Cutoff,
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (trace, debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (console or json)")
	fs.IntVar(&cfg.Size, "n", cfg.Size, "Board size (even)")
	fs.IntVar(&cfg.Obstacles, "obstacles", cfg.Obstacles, "Obstacle draws per board, negative for n/2")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Seed of obstacle placement, 0 for random")
	fs.IntVar(&cfg.Goroutines, "goroutines", cfg.Goroutines, "Number of goroutines for parallel playouts")
	fs.IntVar(&cfg.Episodes, "episodes", cfg.Episodes, "Number of playouts per move")
	fs.DurationVar(&cfg.Duration, "duration", cfg.Duration, "Duration of playouts per move, overrides episodes")
	fs.IntVar(&cfg.Cutoff, "cutoff", cfg.Cutoff, "Rollout depth before evaluating")
	fs.StringVar(&cfg.Evaluation, "eval", cfg.Evaluation, "Evaluation function (discs, mobility, discs-mobility)")
	fs.StringVar(&cfg.Agent1, "agent1", cfg.Agent1, "First agent: mcts, training, greedy, random, human or an agent server URL")
	fs.StringVar(&cfg.Agent2, "agent2", cfg.Agent2, "Second agent")
	fs.IntVar(&cfg.Games, "games", cfg.Games, "Number of games to play")
	fs.StringVar(&cfg.Experiment, "experiment", cfg.Experiment, "Predefined experiment to run instead of agent1 vs agent2")
	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "Directory for csv records")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database for records")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address of the agent server")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return cfg, fmt.Errorf("parse flags: %w", err)
	}

	if cfg.Duration > 0 {
		cfg.Episodes = 0
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if _, err := board.New(c.Size, board.WithObstacles(0)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Games < 1 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Games)
	}
	if c.Goroutines < 1 {
		return fmt.Errorf("%w: goroutines must be positive, got %d", ErrInvalidConfig, c.Goroutines)
	}
	if c.Episodes <= 0 && c.Duration <= 0 {
		return fmt.Errorf("%w: need episodes or a duration", ErrInvalidConfig)
	}
	if _, ok := game.Evaluations[c.Evaluation]; !ok {
		return fmt.Errorf("%w: unknown evaluation %q", ErrInvalidConfig, c.Evaluation)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
