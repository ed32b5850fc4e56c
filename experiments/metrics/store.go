package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	started_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS agents (
	run_id TEXT NOT NULL REFERENCES runs(id),
	id INTEGER NOT NULL,
	kind TEXT NOT NULL,
	goroutines INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	episodes INTEGER NOT NULL,
	cutoff INTEGER NOT NULL,
	evaluation TEXT NOT NULL,
	PRIMARY KEY (run_id, id)
);
CREATE TABLE IF NOT EXISTS games (
	run_id TEXT NOT NULL REFERENCES runs(id),
	id INTEGER NOT NULL,
	agent1 INTEGER NOT NULL,
	agent2 INTEGER NOT NULL,
	starting_player TEXT NOT NULL,
	winner TEXT NOT NULL,
	score_diff INTEGER NOT NULL,
	start_ms INTEGER NOT NULL,
	end_ms INTEGER NOT NULL,
	total_moves INTEGER NOT NULL,
	PRIMARY KEY (run_id, id)
);
CREATE TABLE IF NOT EXISTS moves (
	run_id TEXT NOT NULL REFERENCES runs(id),
	game INTEGER NOT NULL,
	step INTEGER NOT NULL,
	player TEXT NOT NULL,
	move TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	episodes INTEGER NOT NULL,
	full_playouts INTEGER NOT NULL,
	is_tree_reset INTEGER NOT NULL,
	PRIMARY KEY (run_id, game, step)
);
`

// Run is everything recorded for one experiment run.
type Run struct {
	ID        string
	Name      string
	StartedAt time.Time
	Agents    []AgentConfig
	Games     []GameRecord
	Moves     []MoveRecord
}

// Store persists experiment runs in SQLite.
type Store struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the SQLite database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SaveRun inserts a run with its agents, games and moves in one transaction.
func (s *Store) SaveRun(ctx context.Context, run Run) (err error) {
	if run.ID == "" {
		return fmt.Errorf("run id is required")
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, name, started_at) VALUES (?, ?, ?)`,
		run.ID, run.Name, run.StartedAt.UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	for _, a := range run.Agents {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO agents (run_id, id, kind, goroutines, duration_ms, episodes, cutoff, evaluation)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, a.ID, a.Kind, a.Goroutines, a.Duration.Milliseconds(), a.Episodes, a.Cutoff, a.Evaluation,
		); err != nil {
			return fmt.Errorf("insert agent %d: %w", a.ID, err)
		}
	}

	for _, g := range run.Games {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO games (run_id, id, agent1, agent2, starting_player, winner, score_diff, start_ms, end_ms, total_moves)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, g.ID, g.Agent1, g.Agent2, g.StartingPlayer, g.Winner, g.ScoreDiff,
			g.StartTime.UTC().UnixMilli(), g.EndTime.UTC().UnixMilli(), g.TotalMoves,
		); err != nil {
			return fmt.Errorf("insert game %d: %w", g.ID, err)
		}
	}

	for _, m := range run.Moves {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO moves (run_id, game, step, player, move, duration_ms, episodes, full_playouts, is_tree_reset)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, m.Game, m.Step, m.Player, m.Move, m.Duration.Milliseconds(), m.Episodes, m.FullPlayouts, m.IsTreeReset,
		); err != nil {
			return fmt.Errorf("insert move %d of game %d: %w", m.Step, m.Game, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", run.ID, err)
	}
	return nil
}

// AgentWins counts the games won by each agent of a run, keyed by
// AgentConfig.ID. Draws are counted under key 0.
func (s *Store) AgentWins(ctx context.Context, runID string) (map[int]int, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `
		SELECT CASE winner
			WHEN 'Player1' THEN agent1
			WHEN 'Player2' THEN agent2
			ELSE 0 END AS agent, COUNT(*)
		FROM games WHERE run_id = ? GROUP BY agent`, runID)
	if err != nil {
		return nil, fmt.Errorf("query wins of run %s: %w", runID, err)
	}
	defer rows.Close()

	wins := make(map[int]int)
	for rows.Next() {
		var agent, count int
		if err := rows.Scan(&agent, &count); err != nil {
			return nil, fmt.Errorf("scan wins: %w", err)
		}
		wins[agent] = count
	}
	return wins, rows.Err()
}
