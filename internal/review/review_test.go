package review_test

import (
	"testing"
	"time"

	"retrace/internal/review"
)

func TestDaysApart(t *testing.T) {
	a := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, 8, 21, 0, 0, 0, 0, time.UTC)

	if got := review.DaysApart(a, b); got != 1 {
		t.Fatalf("DaysApart = %d, want 1", got)
	}
	if got := review.DaysApart(b, a); got != 1 {
		t.Fatalf("DaysApart not symmetric: %d", got)
	}
	if got := review.DaysApart(a, a); got != 0 {
		t.Fatalf("DaysApart same day = %d", got)
	}
}

func TestDaysApartUnknownDates(t *testing.T) {
	known := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

	// An unknown date is never close to anything, including another unknown.
	if got := review.DaysApart(time.Time{}, known); got <= 365 {
		t.Fatalf("unknown date treated as close: %d", got)
	}
	if got := review.DaysApart(time.Time{}, time.Time{}); got <= 365 {
		t.Fatalf("two unknown dates treated as close: %d", got)
	}
}

func TestRatingsClose(t *testing.T) {
	if !review.RatingsClose(4.5, 4.5, 0.01) {
		t.Fatalf("equal ratings not close")
	}
	if !review.RatingsClose(4.5, 4.505, 0.01) {
		t.Fatalf("ratings within epsilon not close")
	}
	if review.RatingsClose(4.5, 4.6, 0.01) {
		t.Fatalf("ratings outside epsilon reported close")
	}
	// Zero means the listing carried no rating; absence never matches.
	if review.RatingsClose(0, 0, 0.01) {
		t.Fatalf("missing ratings reported close")
	}
	if review.RatingsClose(0, 4.5, 10) {
		t.Fatalf("missing rating matched a real one")
	}
}

func TestDateKnown(t *testing.T) {
	r := review.Normalized{}
	if r.DateKnown() {
		t.Fatalf("zero date reported as known")
	}
	r.Date = time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	if !r.DateKnown() {
		t.Fatalf("set date reported as unknown")
	}
}

func TestAsRawRoundTrip(t *testing.T) {
	n := review.Normalized{
		Text:     "fast delivery",
		Rating:   5,
		Date:     time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC),
		Position: 2,
	}
	raw := n.AsRaw()
	if raw.Text != n.Text || raw.Rating != n.Rating || raw.Position != n.Position {
		t.Fatalf("AsRaw lost fields: %+v", raw)
	}
	if raw.DateText != "2025-08-20" {
		t.Fatalf("date text = %q", raw.DateText)
	}

	unknown := review.Normalized{Text: "x"}
	if got := unknown.AsRaw().DateText; got != "" {
		t.Fatalf("unknown date produced date text %q", got)
	}
}
