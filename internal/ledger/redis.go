package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis backs the ledger with a shared Redis instance for deployments where
// multiple collector processes act on the same store.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps an existing client. prefix namespaces ledger keys; empty
// defaults to "retrace:ledger:".
func NewRedis(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = "retrace:ledger:"
	}
	return &Redis{client: client, prefix: prefix}
}

func (l *Redis) key(recordID string) string {
	return l.prefix + recordID
}

// HasCompleted reports whether an outcome key exists for the record.
func (l *Redis) HasCompleted(ctx context.Context, recordID string) (bool, error) {
	count, err := l.client.Exists(ctx, l.key(recordID)).Result()
	if err != nil {
		return false, fmt.Errorf("ledger exists: %w", err)
	}
	return count > 0, nil
}

// MarkCompleted records the outcome with SETNX semantics so concurrent
// writers for the same record are idempotent.
func (l *Redis) MarkCompleted(ctx context.Context, recordID string, outcome Outcome) error {
	if outcome.CompletedAt.IsZero() {
		outcome.CompletedAt = time.Now().UTC()
	}
	payload, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("marshal outcome: %w", err)
	}
	if err := l.client.SetNX(ctx, l.key(recordID), payload, 0).Err(); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	return nil
}

// Get returns the recorded outcome, or nil when none exists.
func (l *Redis) Get(ctx context.Context, recordID string) (*Outcome, error) {
	payload, err := l.client.Get(ctx, l.key(recordID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get outcome: %w", err)
	}
	var outcome Outcome
	if err := json.Unmarshal(payload, &outcome); err != nil {
		return nil, fmt.Errorf("unmarshal outcome: %w", err)
	}
	return &outcome, nil
}
