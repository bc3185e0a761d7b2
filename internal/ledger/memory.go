package ledger

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process ledger for tests and single-shot embedding.
// Safe for concurrent use.
type Memory struct {
	mu       sync.RWMutex
	outcomes map[string]Outcome
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{outcomes: make(map[string]Outcome)}
}

// HasCompleted reports whether an outcome exists for the record.
func (l *Memory) HasCompleted(_ context.Context, recordID string) (bool, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.outcomes[recordID]
	return ok, nil
}

// MarkCompleted records the outcome; the first writer wins.
func (l *Memory) MarkCompleted(_ context.Context, recordID string, outcome Outcome) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.outcomes[recordID]; ok {
		return nil
	}
	if outcome.CompletedAt.IsZero() {
		outcome.CompletedAt = time.Now().UTC()
	}
	l.outcomes[recordID] = outcome
	return nil
}

// Get returns the recorded outcome, or nil when none exists.
func (l *Memory) Get(_ context.Context, recordID string) (*Outcome, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	outcome, ok := l.outcomes[recordID]
	if !ok {
		return nil, nil
	}
	return &outcome, nil
}
