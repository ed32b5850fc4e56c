package config

import (
	"bytes"
	"encoding/json"
	"othello/meta"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("test", nil)
	require.NoError(t, err)

	require.Equal(t, meta.BoardSize, cfg.Size)
	require.Equal(t, meta.Goroutines, cfg.Goroutines)
	require.Equal(t, meta.Episodes, cfg.Episodes)
	require.Equal(t, meta.Cutoff, cfg.Cutoff)
	require.Equal(t, -1, cfg.Obstacles)
	require.Equal(t, "discs", cfg.Evaluation)
	require.Equal(t, "mcts", cfg.Agent1)
	require.Equal(t, "greedy", cfg.Agent2)
	require.Equal(t, ":8080", cfg.Addr)
}

func TestLoadReadsEnvAndFlags(t *testing.T) {
	t.Setenv("OTHELLO_BOARD_SIZE", "8")
	t.Setenv("OTHELLO_GOROUTINES", "3")
	t.Setenv("OTHELLO_AGENT2", "random")
	t.Setenv("OTHELLO_SEED", "42")

	cfg, err := Load("test", []string{"-goroutines", "5", "-eval", "mobility", "-db", "runs.sqlite"})
	require.NoError(t, err)

	require.Equal(t, 8, cfg.Size, "Env should override defaults")
	require.Equal(t, 5, cfg.Goroutines, "Flags should override env")
	require.Equal(t, "random", cfg.Agent2)
	require.Equal(t, uint64(42), cfg.Seed)
	require.Equal(t, "mobility", cfg.Evaluation)
	require.Equal(t, "runs.sqlite", cfg.DBPath)
}

func TestLoadDurationReplacesEpisodes(t *testing.T) {
	cfg, err := Load("test", []string{"-duration", "250ms"})
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, cfg.Duration)
	require.Zero(t, cfg.Episodes)
}

func TestLoadErrors(t *testing.T) {
	t.Run("malformed env", func(t *testing.T) {
		t.Setenv("OTHELLO_GAMES", "many")
		_, err := Load("test", nil)
		require.ErrorContains(t, err, "parse env:")
	})

	t.Run("unknown flag", func(t *testing.T) {
		_, err := Load("test", []string{"-colour", "red"})
		require.ErrorContains(t, err, "parse flags:")
	})

	for name, args := range map[string][]string{
		"odd board":          {"-n", "5"},
		"no games":           {"-games", "0"},
		"no goroutines":      {"-goroutines", "0"},
		"no search budget":   {"-episodes", "0"},
		"unknown evaluation": {"-eval", "corners"},
		"unknown level":      {"-log-level", "loud"},
		"unknown format":     {"-log-format", "xml"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Load("test", args)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestSetupLogging(t *testing.T) {
	saved, savedLevel := log.Logger, zerolog.GlobalLevel()
	defer func() {
		log.Logger = saved
		zerolog.SetGlobalLevel(savedLevel)
	}()

	var buf bytes.Buffer
	Config{LogLevel: "warn", LogFormat: "json"}.SetupLogging(&buf)
	log.Info().Msg("hidden")
	log.Warn().Str("move", "2 3").Msg("shown")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "Only the warning should be logged")
	require.Equal(t, "shown", entry["message"])
	require.Equal(t, "2 3", entry["move"])

	buf.Reset()
	Config{LogLevel: "debug", LogFormat: "console"}.SetupLogging(&buf)
	log.Debug().Msg("console")
	require.Contains(t, buf.String(), "console")
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}
