package api

import (
	"context"
	"fmt"

	"retrace/internal/config"
	"retrace/internal/records"
)

// RecordView is the CLI-facing summary of one stored record.
type RecordView struct {
	ID        string  `json:"id"`
	StableID  string  `json:"stable_id"`
	Position  int     `json:"position"`
	Text      string  `json:"text"`
	Rating    float64 `json:"rating,omitempty"`
	Date      string  `json:"date,omitempty"`
	Salt      string  `json:"snapshot_salt"`
	ReplyText string  `json:"reply_text,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// ListRecords returns all stored records in creation order.
func ListRecords(ctx context.Context, cfg *config.Config) ([]RecordView, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}

	store, err := records.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	list, err := store.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]RecordView, 0, len(list))
	for _, record := range list {
		views = append(views, recordView(record))
	}
	return views, nil
}

// GetRecord fetches one stored record by stable ID.
func GetRecord(ctx context.Context, cfg *config.Config, stableID string) (*RecordView, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if stableID == "" {
		return nil, fmt.Errorf("stable id is required")
	}

	store, err := records.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	record, err := store.GetByStableID(ctx, stableID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("record %s not found", stableID)
	}
	view := recordView(record)
	return &view, nil
}

// AttachReply stores the reply text composed for a record.
func AttachReply(ctx context.Context, cfg *config.Config, stableID, replyText string) error {
	if cfg == nil {
		return fmt.Errorf("configuration is required")
	}
	if stableID == "" {
		return fmt.Errorf("stable id is required")
	}

	store, err := records.Open(cfg)
	if err != nil {
		return fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	return store.AttachReply(ctx, stableID, replyText)
}

func recordView(record *records.Record) RecordView {
	view := RecordView{
		ID:        record.ID,
		StableID:  record.StableID,
		Position:  record.Position,
		Text:      record.Text,
		Rating:    record.Rating,
		Salt:      record.SnapshotSalt,
		ReplyText: record.ReplyText,
		CreatedAt: record.CreatedAt.Format("2006-01-02 15:04:05"),
	}
	if !record.ReviewDate.IsZero() {
		view.Date = record.ReviewDate.Format("2006-01-02")
	}
	return view
}
