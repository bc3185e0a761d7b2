package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"retrace/internal/review"
)

// RawSnapshot is one point-in-time capture of an entire listing, as supplied
// by the external collection layer.
type RawSnapshot struct {
	// Owner identifies the listing owner (store account), used to scope the
	// snapshot salt.
	Owner string `json:"owner"`
	// Page is the listing page index for multi-page captures.
	Page int `json:"page"`
	// CapturedAt anchors relative date resolution.
	CapturedAt time.Time `json:"captured_at"`
	// Reviews is the ordered extraction result.
	Reviews []review.Raw `json:"reviews"`
}

// Source supplies raw snapshots per crawl pass. Implementations may wrap a
// scraper, a replay log, or fixtures; acquiring a snapshot is the only
// I/O-bound step of a pass, so it takes the context.
type Source interface {
	Snapshot(ctx context.Context) (RawSnapshot, error)
}

// SliceSource serves a fixed snapshot, mainly for tests and embedding.
type SliceSource struct {
	Capture RawSnapshot
}

// Snapshot returns the fixed capture.
func (s SliceSource) Snapshot(context.Context) (RawSnapshot, error) {
	return s.Capture, nil
}

// FileSource reads a JSON-encoded snapshot from disk: the replay-log path for
// collection runs decoupled from any live scraper.
type FileSource struct {
	Path string
}

// Snapshot loads and decodes the snapshot file.
func (s FileSource) Snapshot(context.Context) (RawSnapshot, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return RawSnapshot{}, fmt.Errorf("read snapshot file: %w", err)
	}
	var snapshot RawSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return RawSnapshot{}, fmt.Errorf("decode snapshot file: %w", err)
	}
	if snapshot.CapturedAt.IsZero() {
		return RawSnapshot{}, fmt.Errorf("snapshot file %s: captured_at is required", s.Path)
	}
	return snapshot, nil
}
