// Command agent serves an MCTS agent over HTTP for remote play.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"othello/config"
	"othello/experiments"
	"othello/experiments/metrics"
	"othello/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load("agent", os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.SetupLogging(os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := serve(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("agent server failed")
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	a, err := experiments.NewAgent(metrics.AgentConfig{
		Kind:       cfg.Agent1,
		Goroutines: cfg.Goroutines,
		Duration:   cfg.Duration,
		Episodes:   cfg.Episodes,
		Cutoff:     cfg.Cutoff,
		Evaluation: cfg.Evaluation,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           agent.NewServer(a),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.Addr).Str("agent", cfg.Agent1).Msg("starting agent server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
