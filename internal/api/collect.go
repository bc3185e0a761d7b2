package api

import (
	"context"
	"fmt"

	"retrace/internal/collector"
	"retrace/internal/config"
	"retrace/internal/logging"
	"retrace/internal/records"
)

// CollectRequest describes one collection pass over a snapshot file.
type CollectRequest struct {
	Config       *config.Config
	SnapshotPath string
}

// Collect runs one collection pass: read the snapshot file, fingerprint it,
// persist reviews not seen before.
func Collect(ctx context.Context, req CollectRequest) (*collector.Summary, error) {
	cfg := req.Config
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if req.SnapshotPath == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	store, err := records.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	coll := collector.New(cfg, store, logger)
	summary, err := coll.Run(ctx, collector.FileSource{Path: req.SnapshotPath})
	if err != nil {
		return nil, fmt.Errorf("collect pass: %w", err)
	}
	return summary, nil
}
