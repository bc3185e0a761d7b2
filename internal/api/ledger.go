package api

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"retrace/internal/config"
	"retrace/internal/ledger"
	"retrace/internal/records"
)

// openLedger builds the configured ledger backend on top of an open store.
// The returned closer releases backend resources; it is a no-op for the
// SQLite ledger, which shares the store's connection.
func openLedger(ctx context.Context, cfg *config.Config, store *records.Store) (ledger.Ledger, func() error, error) {
	switch cfg.Ledger.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.Ledger.RedisAddr})
		return ledger.NewRedis(client, cfg.Ledger.RedisPrefix), client.Close, nil
	default:
		led, err := ledger.NewSQLite(ctx, store.DB())
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite ledger: %w", err)
		}
		return led, func() error { return nil }, nil
	}
}

// MarkCompletedRequest records a confirmed downstream action for a record.
type MarkCompletedRequest struct {
	Config   *config.Config
	RecordID string
	Outcome  ledger.Outcome
}

// MarkCompleted writes the outcome through the configured ledger backend.
// Marking twice is a no-op by design.
func MarkCompleted(ctx context.Context, req MarkCompletedRequest) error {
	cfg := req.Config
	if cfg == nil {
		return fmt.Errorf("configuration is required")
	}
	if req.RecordID == "" {
		return fmt.Errorf("record id is required")
	}
	if req.Outcome.Action == "" {
		return fmt.Errorf("outcome action is required")
	}

	store, err := records.Open(cfg)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	led, closeLedger, err := openLedger(ctx, cfg, store)
	if err != nil {
		return err
	}
	defer func() {
		_ = closeLedger()
	}()

	return led.MarkCompleted(ctx, req.RecordID, req.Outcome)
}

// LedgerEntry pairs a record ID with its recorded outcome, if any.
type LedgerEntry struct {
	RecordID  string
	Completed bool
	Outcome   *ledger.Outcome
}

// GetLedgerEntry reads ledger state for one record.
func GetLedgerEntry(ctx context.Context, cfg *config.Config, recordID string) (*LedgerEntry, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if recordID == "" {
		return nil, fmt.Errorf("record id is required")
	}

	store, err := records.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	led, closeLedger, err := openLedger(ctx, cfg, store)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = closeLedger()
	}()

	outcome, err := led.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}
	return &LedgerEntry{RecordID: recordID, Completed: outcome != nil, Outcome: outcome}, nil
}
