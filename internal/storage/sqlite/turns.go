package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/sandevgo/raider/internal/core"
	"github.com/sandevgo/raider/pkg/log"
)

type TurnsRepo struct {
	db *sql.DB
}

func NewTurnsRepo(db *sql.DB) *TurnsRepo {
	return &TurnsRepo{db: db}
}

// Append inserts the turn with the next per-subject sequence number. The
// insert-select is a single statement, so it runs under SQLite's write lock
// and a reader sees either the whole row or nothing.
func (r *TurnsRepo) Append(ctx context.Context, subject, userText, botText string) error {
	if subject == "" {
		return core.InvalidRequest("turn subject is empty")
	}
	query := `
		INSERT INTO turns (subject, seq, user_text, bot_text, created_at)
		SELECT ?, COALESCE(MAX(seq), 0) + 1, ?, ?, ?
		FROM turns WHERE subject = ?`

	_, err := r.db.ExecContext(ctx, query, subject, userText, botText, time.Now().UTC(), subject)
	if err != nil {
		return core.StoreError("insert turn", err)
	}
	return nil
}

func (r *TurnsRepo) Load(ctx context.Context, subject string) ([]core.Turn, error) {
	query := `SELECT seq, user_text, bot_text, created_at FROM turns WHERE subject = ? ORDER BY seq ASC`

	rows, err := r.db.QueryContext(ctx, query, subject)
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

func (r *TurnsRepo) Subjects(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT subject FROM turns ORDER BY subject`)
	if err != nil {
		return nil, core.StoreError("query subjects", err)
	}
	defer rows.Close()

	var subjects []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, core.StoreError("scan subject", err)
		}
		subjects = append(subjects, s)
	}
	if err := rows.Err(); err != nil {
		return nil, core.StoreError("iterate subjects", err)
	}
	return subjects, nil
}
