package experiments

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"othello/experiments/metrics"
	"othello/game"
	"othello/searcher"
	"othello/searcher/agent"
	"strings"
)

// Agent kinds understood by NewAgent. Any http:// or https:// URL names a
// remote agent.
const (
	KindMCTS     = "mcts"
	KindTraining = "training"
	KindGreedy   = "greedy"
	KindRandom   = "random"
	KindHuman    = "human"
)

var (
	ErrUnknownKind       = errors.New("unknown agent kind")
	ErrUnknownEvaluation = errors.New("unknown evaluation")
	ErrNoBudget          = errors.New("search needs episodes or a duration")
)

// Console is where human agents read and print moves. All human agents share
// the one scanner.
var Console = struct {
	In  *bufio.Scanner
	Out io.Writer
}{bufio.NewScanner(os.Stdin), os.Stdout}

// NewAgent builds the agent described by config.
func NewAgent(config metrics.AgentConfig) (agent.Agent, error) {
	evaluate, err := evaluation(config.Evaluation)
	if err != nil {
		return nil, err
	}

	searches := config.Kind == KindMCTS || config.Kind == KindTraining || config.Kind == ""
	if searches && config.Episodes <= 0 && config.Duration <= 0 {
		return nil, fmt.Errorf("agent %d: %w", config.ID, ErrNoBudget)
	}

	switch kind := config.Kind; {
	case kind == KindMCTS || kind == "":
		return agent.NewEvaluationAgent(createMCTS(config, evaluate)), nil
	case kind == KindTraining:
		return agent.NewTrainingAgent(createMCTS(config, evaluate), 1.0), nil
	case kind == KindGreedy:
		return agent.NewGreedyAgent(evaluate), nil
	case kind == KindRandom:
		return agent.NewRandomAgent(nil), nil
	case kind == KindHuman:
		return agent.NewHumanAgent(Console.In, Console.Out), nil
	case strings.HasPrefix(kind, "http://") || strings.HasPrefix(kind, "https://"):
		return agent.NewRemoteAgent(kind, nil), nil
	default:
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownKind)
	}
}

func evaluation(name string) (game.Evaluate, error) {
	if name == "" {
		return game.EvaluateDiscs, nil
	}
	evaluate, ok := game.Evaluations[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownEvaluation)
	}
	return evaluate, nil
}

func createMCTS(config metrics.AgentConfig, evaluate game.Evaluate) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	options = append(options, searcher.WithEvaluationFn(evaluate))

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}
