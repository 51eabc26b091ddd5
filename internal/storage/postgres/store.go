// Package postgres stores turns in PostgreSQL through a pgx pool.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/pkg/log"
)

// ErrInvalidURL marks a database URL that can never connect.
var ErrInvalidURL = errors.New("invalid postgres url")

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS turns (
			id BIGSERIAL PRIMARY KEY,
			subject TEXT NOT NULL,
			seq BIGINT NOT NULL,
			user_text TEXT NOT NULL,
			bot_text TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (subject, seq)
		);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

// Append takes a transaction-scoped advisory lock keyed by the subject, so
// appends to one subject commit in sequence order while other subjects
// proceed in parallel.
func (s *Store) Append(ctx context.Context, subject, userText, botText string) error {
	if subject == "" {
		return core.InvalidRequest("turn subject is empty")
	}
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return core.StoreError("begin append", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, subject); err != nil {
		return core.StoreError("lock subject", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO turns (subject, seq, user_text, bot_text, created_at)
		 SELECT $1, COALESCE(MAX(seq), 0) + 1, $2, $3, $4
		 FROM turns WHERE subject = $1`,
		subject, userText, botText, time.Now().UTC(),
	)
	if err != nil {
		return core.StoreError("insert turn", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return core.StoreError("commit turn", err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, subject string) ([]core.Turn, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT seq, user_text, bot_text, created_at
		 FROM turns WHERE subject = $1 ORDER BY seq ASC`,
		subject,
	)
	if err != nil {
		return nil, core.StoreError("query turns", err)
	}
	defer rows.Close()

	turns := make([]core.Turn, 0)
	for rows.Next() {
		t := core.Turn{Subject: subject}
		if err := rows.Scan(&t.Seq, &t.UserText, &t.BotText, &t.CreatedAt); err != nil {
			return nil, core.StoreError("scan turn", err)
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, core.StoreError("iterate turns", err)
	}

	log.FromCtx(ctx).Debug().Str("subject", subject).Int("count", len(turns)).Msg("loaded turns")
	return turns, nil
}

func (s *Store) Subjects(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT subject FROM turns ORDER BY subject`)
	if err != nil {
		return nil, core.StoreError("query subjects", err)
	}
	subjects, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, core.StoreError("collect subjects", err)
	}
	return subjects, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}
