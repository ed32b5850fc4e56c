package agent

import (
	"encoding/json"
	"net/http"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// FindMoveRequest is the body of POST /findmove.
type FindMoveRequest struct {
	State   *game.GameState    `json:"state"`
	Updates []searcher.Segment `json:"updates"`
}

type server struct {
	mu    sync.Mutex // Guards the agent's search tree
	agent Agent
}

// NewServer exposes agent over HTTP.
func NewServer(agent Agent) http.Handler {
	s := &server{agent: agent}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", s.health)
	r.Post("/findmove", s.findMove)
	return r
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *server) search(state *game.GameState, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agent.FindMove(state, updates)
}

func (s *server) findMove(w http.ResponseWriter, r *http.Request) {
	var payload FindMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.State == nil {
		http.Error(w, "bad request: missing state", http.StatusBadRequest)
		return
	}
	if payload.State.Winner() != "" {
		http.Error(w, "game is over", http.StatusConflict)
		return
	}

	move, metric := s.search(payload.State, payload.Updates)
	log.Debug().
		Str("player", payload.State.Player()).
		Stringer("move", move).
		Int("episodes", metric.Episodes).
		Dur("duration", metric.Duration).
		Msg("found move")

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(move); err != nil {
		log.Error().Err(err).Msg("failed to encode move")
	}
}
