// Package ledger records whether the downstream action for a stored record
// has already completed, guaranteeing at-most-once execution across repeated
// matching attempts.
//
// Callers check HasCompleted before locating a record and call MarkCompleted
// only after the platform confirms the action succeeded, never after a mere
// attempt: Locate may run many times across scheduled retries before the
// action finally lands, and matching success must not be conflated with
// action success. Concurrent MarkCompleted calls for the same record are
// idempotent; the second writer observes a no-op, not an error.
package ledger

import (
	"context"
	"time"
)

// Outcome describes the confirmed downstream action for a record.
type Outcome struct {
	// Action names what was performed, e.g. "reply_posted".
	Action string `json:"action"`
	// Detail carries optional action context, e.g. the posted reply text.
	Detail string `json:"detail,omitempty"`
	// CompletedAt is when the platform confirmed the action.
	CompletedAt time.Time `json:"completed_at"`
}

// Ledger is the idempotency record for downstream actions.
type Ledger interface {
	// HasCompleted reports whether the record's action already completed.
	HasCompleted(ctx context.Context, recordID string) (bool, error)
	// MarkCompleted records a confirmed outcome. Marking an already-completed
	// record is a no-op; the first outcome wins.
	MarkCompleted(ctx context.Context, recordID string, outcome Outcome) error
	// Get returns the recorded outcome, or nil when none exists.
	Get(ctx context.Context, recordID string) (*Outcome, error)
}
