package testsupport

import (
	"testing"
	"time"

	"retrace/internal/config"
	"retrace/internal/records"
	"retrace/internal/review"
)

// MustOpenStore opens a records.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *records.Store {
	t.Helper()

	store, err := records.Open(cfg)
	if err != nil {
		t.Fatalf("records.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// Reviews builds an ordered normalized-review sequence from plain texts, one
// review per day counting back from date, all rated 5.0.
func Reviews(date time.Time, texts ...string) []review.Normalized {
	items := make([]review.Normalized, len(texts))
	for i, text := range texts {
		items[i] = review.Normalized{
			Text:     text,
			Rating:   5.0,
			Date:     date.AddDate(0, 0, -i),
			Position: i,
		}
	}
	return items
}
