package records

import (
	"time"

	"github.com/google/uuid"

	"retrace/internal/fingerprint"
	"retrace/internal/review"
)

// Record is one durable stored review.
type Record struct {
	ID           string
	StableID     string
	ContentHash  string
	RollingHash  string
	NeighborHash string
	SnapshotSalt string
	Position     int

	Text       string
	Rating     float64
	SubRatings map[string]float64
	MenuItems  []string
	ReviewDate time.Time

	ReplyText string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewFromEntry builds a fresh record from one fingerprinted snapshot entry.
func NewFromEntry(entry *fingerprint.Entry) *Record {
	return &Record{
		ID:           uuid.NewString(),
		StableID:     entry.Fingerprint.StableID,
		ContentHash:  entry.Fingerprint.ContentHash,
		RollingHash:  entry.Fingerprint.RollingHash,
		NeighborHash: entry.Fingerprint.NeighborHash,
		SnapshotSalt: entry.Fingerprint.SnapshotSalt,
		Position:     entry.Fingerprint.Position,
		Text:         entry.Review.Text,
		Rating:       entry.Review.Rating,
		SubRatings:   entry.Review.SubRatings,
		MenuItems:    entry.Review.MenuItems,
		ReviewDate:   entry.Review.Date,
	}
}

// Normalized reconstructs the normalized review view of the record for
// matching against a fresh snapshot.
func (r *Record) Normalized() review.Normalized {
	return review.Normalized{
		Text:       r.Text,
		Rating:     r.Rating,
		SubRatings: r.SubRatings,
		MenuItems:  r.MenuItems,
		Date:       r.ReviewDate,
		Position:   r.Position,
	}
}

// Fingerprint reconstructs the fingerprint view of the record.
func (r *Record) Fingerprint() fingerprint.Fingerprint {
	return fingerprint.Fingerprint{
		ContentHash:  r.ContentHash,
		RollingHash:  r.RollingHash,
		NeighborHash: r.NeighborHash,
		SnapshotSalt: r.SnapshotSalt,
		Position:     r.Position,
		StableID:     r.StableID,
	}
}
