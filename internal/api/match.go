package api

import (
	"context"
	"fmt"

	"retrace/internal/collector"
	"retrace/internal/config"
	"retrace/internal/fingerprint"
	"retrace/internal/match"
	"retrace/internal/records"
)

// MatchRequest locates one stored record inside a fresh snapshot file.
type MatchRequest struct {
	Config       *config.Config
	StableID     string
	SnapshotPath string
}

// CandidateView summarizes one snapshot entry in a match report.
type CandidateView struct {
	StableID string  `json:"stable_id"`
	Position int     `json:"position"`
	Text     string  `json:"text"`
	Date     string  `json:"date,omitempty"`
	Rating   float64 `json:"rating,omitempty"`
}

// MatchReport is the caller-facing view of one Locate run.
type MatchReport struct {
	Kind       string          `json:"kind"`
	Stage      string          `json:"stage"`
	Confidence float64         `json:"confidence,omitempty"`
	Located    *CandidateView  `json:"located,omitempty"`
	Candidates []CandidateView `json:"candidates,omitempty"`
	// ActionCompleted reports ledger state so schedulers can skip records
	// whose downstream action already landed.
	ActionCompleted bool `json:"action_completed"`
}

// Match runs the matching cascade for a stored record against a snapshot
// file and annotates the result with ledger state. It performs no downstream
// action itself.
func Match(ctx context.Context, req MatchRequest) (*MatchReport, error) {
	cfg := req.Config
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if req.StableID == "" {
		return nil, fmt.Errorf("stable id is required")
	}
	if req.SnapshotPath == "" {
		return nil, fmt.Errorf("snapshot path is required")
	}

	store, err := records.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	defer store.Close()

	record, err := store.GetByStableID(ctx, req.StableID)
	if err != nil {
		return nil, fmt.Errorf("fetch record: %w", err)
	}
	if record == nil {
		return nil, fmt.Errorf("record %s not found", req.StableID)
	}

	led, closeLedger, err := openLedger(ctx, cfg, store)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = closeLedger()
	}()

	completed, err := led.HasCompleted(ctx, record.ID)
	if err != nil {
		return nil, fmt.Errorf("check ledger: %w", err)
	}

	raw, err := collector.FileSource{Path: req.SnapshotPath}.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	snapshot := collector.BuildSnapshot(raw)

	result := match.Locate(record, snapshot, matchPolicy(cfg))

	report := &MatchReport{
		Kind:            result.Kind.String(),
		Stage:           result.Stage,
		Confidence:      result.Confidence,
		ActionCompleted: completed,
	}
	if result.Entry != nil {
		view := candidateView(result.Entry)
		report.Located = &view
	}
	for _, candidate := range result.Candidates {
		report.Candidates = append(report.Candidates, candidateView(candidate))
	}
	return report, nil
}

func matchPolicy(cfg *config.Config) match.Policy {
	return match.Policy{
		FactorThreshold:     cfg.Matching.FactorThreshold,
		DateToleranceDays:   cfg.Matching.DateToleranceDays,
		RatingEpsilon:       cfg.Matching.RatingEpsilon,
		SimilarityFloor:     cfg.Matching.SimilarityFloor,
		SimilarityTieMargin: cfg.Matching.SimilarityTieMargin,
	}
}

func candidateView(entry *fingerprint.Entry) CandidateView {
	view := CandidateView{
		StableID: entry.Fingerprint.StableID,
		Position: entry.Fingerprint.Position,
		Text:     entry.Review.Text,
		Rating:   entry.Review.Rating,
	}
	if entry.Review.DateKnown() {
		view.Date = entry.Review.Date.Format("2006-01-02")
	}
	return view
}
