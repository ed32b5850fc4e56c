package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type remoteAgent struct {
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent that asks the server at baseURL for moves.
// A nil client uses http.DefaultClient.
func NewRemoteAgent(baseURL string, client *http.Client) Agent {
	if client == nil {
		client = http.DefaultClient
	}
	return remoteAgent{url: strings.TrimRight(baseURL, "/") + "/findmove", client: client}
}

// FindMove panics when the server cannot be reached or answers with an
// error. A returned move that is not legal is replaced by the first legal move.
func (a remoteAgent) FindMove(state game.State, updates []searcher.Segment) (game.Move, metrics.SearchMetric) {
	start := time.Now()
	gs, ok := state.(*game.GameState)
	if !ok {
		panic("unexpected state type")
	}

	bodyBytes, err := json.Marshal(FindMoveRequest{State: gs, Updates: updates})
	if err != nil {
		panic(err)
	}

	resp, err := a.client.Post(a.url, "application/json", bytes.NewReader(bodyBytes))
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		panic(fmt.Sprintf("agent returned status %d: %s", resp.StatusCode, out))
	}

	var move game.Move
	if err := json.NewDecoder(resp.Body).Decode(&move); err != nil {
		panic(err)
	}

	metric := metrics.SearchMetric{Duration: time.Since(start)}
	legal := state.LegalMoves()
	if len(legal) == 0 {
		panic("no legal moves to choose from")
	}
	if !slices.Contains(legal, move) {
		log.Warn().Str("url", a.url).Stringer("move", move).Msg("agent returned illegal move, playing first legal move")
		return legal[0], metric
	}
	return move, metric
}
