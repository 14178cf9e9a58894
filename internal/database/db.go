package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists finished-match results and journal actions in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

// Connect opens a pool for connStr (a postgres:// URL) and pings it.
func Connect(ctx context.Context, connStr string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id          UUID PRIMARY KEY,
	rounds      INT NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS match_players (
	match_id  UUID NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
	player_id UUID NOT NULL,
	seat      INT NOT NULL,
	name      TEXT NOT NULL,
	score     INT NOT NULL,
	did_win   BOOLEAN NOT NULL,
	PRIMARY KEY (match_id, player_id)
);

CREATE TABLE IF NOT EXISTS match_rounds (
	match_id  UUID NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
	round     INT NOT NULL,
	winner_id UUID NOT NULL,
	ace_by    TEXT,
	ace_bonus INT NOT NULL,
	PRIMARY KEY (match_id, round)
);

CREATE TABLE IF NOT EXISTS match_actions (
	match_id       UUID NOT NULL,
	action_index   INT NOT NULL,
	actor_id       UUID,
	action_type    TEXT NOT NULL,
	action_payload JSONB NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (match_id, action_index)
);
`

// EnsureSchema creates the tables if they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensuring schema: %w", err)
	}
	return nil
}
