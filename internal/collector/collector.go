// Package collector runs one crawl pass: normalize the raw snapshot,
// fingerprint it, and persist any reviews not seen before.
package collector

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"retrace/internal/config"
	"retrace/internal/fingerprint"
	"retrace/internal/normalize"
	"retrace/internal/records"
	"retrace/internal/review"
)

// Summary reports what one pass did.
type Summary struct {
	PassID   string
	Salt     string
	Captured int
	Inserted int
	Known    int
}

// Collector persists newly observed reviews from listing snapshots.
type Collector struct {
	cfg    *config.Config
	store  *records.Store
	logger *slog.Logger
}

// New wires a collector against an open record store.
func New(cfg *config.Config, store *records.Store, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{cfg: cfg, store: store, logger: logger}
}

// Run executes one collection pass. A file lock serializes passes against the
// same data directory; a pass already in flight fails fast rather than
// double-collecting.
func (c *Collector) Run(ctx context.Context, source Source) (*Summary, error) {
	lock := flock.New(c.cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire collect lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("collect pass already running (lock %s held)", c.cfg.LockPath())
	}
	defer func() {
		_ = lock.Unlock()
	}()

	raw, err := source.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire snapshot: %w", err)
	}

	snapshot := BuildSnapshot(raw)
	summary := &Summary{
		PassID:   uuid.NewString(),
		Salt:     snapshot.Salt(),
		Captured: snapshot.Len(),
	}
	logger := c.logger.With("pass_id", summary.PassID, "salt", summary.Salt)
	logger.Info("collect pass started", "reviews", summary.Captured)

	for i := 0; i < snapshot.Len(); i++ {
		entry := snapshot.At(i)
		inserted, err := c.store.Insert(ctx, records.NewFromEntry(entry))
		if err != nil {
			return nil, fmt.Errorf("persist review at position %d: %w", i, err)
		}
		if inserted {
			summary.Inserted++
			logger.Debug("stored new review", "stable_id", entry.Fingerprint.StableID, "position", i)
		} else {
			summary.Known++
		}
	}

	logger.Info("collect pass finished", "inserted", summary.Inserted, "known", summary.Known)
	return summary, nil
}

// BuildSnapshot normalizes and fingerprints a raw capture. Exposed separately
// so matching runs can index a snapshot without persisting anything.
func BuildSnapshot(raw RawSnapshot) *fingerprint.Snapshot {
	normalized := make([]review.Normalized, len(raw.Reviews))
	for i, item := range raw.Reviews {
		item.Position = i
		normalized[i] = normalize.Review(item, raw.CapturedAt)
	}
	salt := fingerprint.Salt(raw.Owner, raw.CapturedAt, raw.Page)
	return fingerprint.NewSnapshot(salt, normalized)
}
