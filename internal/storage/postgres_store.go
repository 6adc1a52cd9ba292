package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rstrong30/moltbook-agent/internal/core/ports"
	"github.com/rstrong30/moltbook-agent/internal/state"
)

// PostgresStore keeps the run record in a single row keyed by agent name,
// for deployments where the working directory is not durable.
type PostgresStore struct {
	Pool  *pgxpool.Pool
	Agent string
}

func NewPostgresStore(ctx context.Context, connStr, agent string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	s := &PostgresStore{Pool: pool, Agent: agent}
	if err := s.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

var _ ports.StateStore = (*PostgresStore)(nil)

func (s *PostgresStore) initSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS agent_state (
		agent TEXT PRIMARY KEY,
		last_post_date TEXT,
		last_post_id TEXT,
		replied_comment_ids TEXT[],
		commented_post_ids TEXT[],
		submolt_rotation_index INT,
		last_run_at TEXT
	)`)
	if err != nil {
		return fmt.Errorf("failed to init schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context) (*state.RunState, error) {
	st := state.New()
	err := s.Pool.QueryRow(ctx,
		`SELECT last_post_date, last_post_id, replied_comment_ids, commented_post_ids, submolt_rotation_index, last_run_at
		 FROM agent_state WHERE agent = $1`, s.Agent).
		Scan(&st.LastPostDate, &st.LastPostID, &st.RepliedCommentIDs, &st.CommentedPostIDs, &st.SubmoltRotationIndex, &st.LastRunAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return state.New(), nil
	}
	if err != nil {
		return nil, err
	}
	st.Normalize()
	return st, nil
}

func (s *PostgresStore) Save(ctx context.Context, st *state.RunState) error {
	st.Normalize()
	_, err := s.Pool.Exec(ctx,
		`INSERT INTO agent_state (agent, last_post_date, last_post_id, replied_comment_ids, commented_post_ids, submolt_rotation_index, last_run_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (agent) DO UPDATE SET
		 last_post_date = $2, last_post_id = $3, replied_comment_ids = $4,
		 commented_post_ids = $5, submolt_rotation_index = $6, last_run_at = $7`,
		s.Agent, st.LastPostDate, st.LastPostID, st.RepliedCommentIDs, st.CommentedPostIDs, st.SubmoltRotationIndex, st.LastRunAt)
	return err
}

func (s *PostgresStore) Close() {
	s.Pool.Close()
}
