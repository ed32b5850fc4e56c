package agent

import (
	"bufio"
	"fmt"
	"io"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"slices"
	"strconv"
	"strings"
	"time"
)

type humanAgent struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewHumanAgent returns an agent that shows the position on out and reads
// moves typed as "x y" (or "pass") from in until a legal one is entered.
// Agents reading the same terminal must share one scanner: a scanner buffers
// ahead and would swallow lines meant for the other player.
func NewHumanAgent(in *bufio.Scanner, out io.Writer) Agent {
	return &humanAgent{in: in, out: out}
}

func (a *humanAgent) FindMove(state game.State, _ []searcher.Segment) (game.Move, metrics.SearchMetric) {
	start := time.Now()
	moves := state.LegalMoves()
	if len(moves) == 0 {
		panic("no legal moves to choose from")
	}

	if gs, ok := state.(*game.GameState); ok {
		fmt.Fprintln(a.out, gs.Board)
	}
	labels := make([]string, len(moves))
	for i, move := range moves {
		labels[i] = "[" + move.String() + "]"
	}
	fmt.Fprintf(a.out, "%s to move: %s\n", state.Player(), strings.Join(labels, " "))

	for {
		if !a.in.Scan() {
			panic(fmt.Sprintf("reading move of %s: input closed", state.Player()))
		}
		move, err := parseMove(a.in.Text())
		if err != nil {
			fmt.Fprintf(a.out, "Invalid input: %v\n", err)
			continue
		}
		if !slices.Contains(moves, move) {
			fmt.Fprintf(a.out, "Invalid move: %s\n", move)
			continue
		}
		return move, metrics.SearchMetric{Goroutines: 1, Duration: time.Since(start)}
	}
}

func parseMove(text string) (game.Move, error) {
	fields := strings.Fields(text)
	if len(fields) == 1 && strings.EqualFold(fields[0], "pass") {
		return game.PassMove, nil
	}
	if len(fields) != 2 {
		return game.Move{}, fmt.Errorf("want \"x y\" or \"pass\", got %q", text)
	}
	x, err := strconv.Atoi(fields[0])
	if err != nil {
		return game.Move{}, fmt.Errorf("column: %w", err)
	}
	y, err := strconv.Atoi(fields[1])
	if err != nil {
		return game.Move{}, fmt.Errorf("row: %w", err)
	}
	return game.Move{X: x, Y: y}, nil
}
