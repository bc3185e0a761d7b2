package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLite persists the ledger in the same database file as the record store.
type SQLite struct {
	db *sql.DB
}

// NewSQLite prepares the ledger table on an open connection, normally the one
// backing the records store.
func NewSQLite(ctx context.Context, db *sql.DB) (*SQLite, error) {
	if db == nil {
		return nil, errors.New("db is nil")
	}
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS action_ledger (
        record_id TEXT PRIMARY KEY,
        action TEXT NOT NULL,
        detail TEXT,
        completed_at TEXT NOT NULL
    )`)
	if err != nil {
		return nil, fmt.Errorf("ensure action_ledger: %w", err)
	}
	return &SQLite{db: db}, nil
}

// HasCompleted reports whether an outcome exists for the record.
func (l *SQLite) HasCompleted(ctx context.Context, recordID string) (bool, error) {
	var count int
	err := l.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM action_ledger WHERE record_id = ?`, recordID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}
	return count > 0, nil
}

// MarkCompleted records the outcome. INSERT OR IGNORE makes concurrent writes
// for the same record idempotent; the first writer wins.
func (l *SQLite) MarkCompleted(ctx context.Context, recordID string, outcome Outcome) error {
	completedAt := outcome.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now().UTC()
	}
	_, err := l.db.ExecContext(
		ctx,
		`INSERT OR IGNORE INTO action_ledger (record_id, action, detail, completed_at) VALUES (?, ?, ?, ?)`,
		recordID,
		outcome.Action,
		outcome.Detail,
		completedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// Get returns the recorded outcome, or nil when none exists.
func (l *SQLite) Get(ctx context.Context, recordID string) (*Outcome, error) {
	var (
		action      string
		detail      sql.NullString
		completedAt string
	)
	err := l.db.QueryRowContext(
		ctx,
		`SELECT action, detail, completed_at FROM action_ledger WHERE record_id = ?`,
		recordID,
	).Scan(&action, &detail, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get outcome: %w", err)
	}

	outcome := &Outcome{Action: action, Detail: detail.String}
	if parsed, parseErr := time.Parse(time.RFC3339Nano, completedAt); parseErr == nil {
		outcome.CompletedAt = parsed
	}
	return outcome, nil
}
