// Package review defines the raw and normalized review models shared by the
// collection, fingerprinting, and matching layers.
package review

import (
	"math"
	"time"
)

// Raw is one review as extracted from a rendered listing. It carries only
// text and structured values; markup and presentation artifacts are stripped
// upstream by the extraction layer.
type Raw struct {
	// Text is the review body as rendered.
	Text string `json:"text"`
	// Rating is the overall score, 0 when the listing shows none.
	Rating float64 `json:"rating,omitempty"`
	// SubRatings holds optional named sub-scores (taste, delivery, ...).
	SubRatings map[string]float64 `json:"sub_ratings,omitempty"`
	// MenuItems is the ordered list of items the review was attached to.
	MenuItems []string `json:"menu_items,omitempty"`
	// DateText is the date exactly as rendered, absolute or relative
	// ("2025-08-20", "어제", "3일 전").
	DateText string `json:"date_text"`
	// Position is the zero-based index of the review within its snapshot.
	Position int `json:"position"`
}

// Normalized is the canonical form of a Raw review: text reduced to a stable
// representation and the rendered date resolved to a calendar day.
type Normalized struct {
	Text       string
	Rating     float64
	SubRatings map[string]float64
	MenuItems  []string
	// Date is the resolved calendar day at UTC midnight. The zero value
	// marks an unresolvable rendered date.
	Date     time.Time
	Position int
}

// DateKnown reports whether the rendered date resolved to a calendar day.
func (n Normalized) DateKnown() bool {
	return !n.Date.IsZero()
}

// AsRaw converts a normalized review back into the raw shape, formatting the
// resolved date absolutely. Normalizing the result reproduces the original
// normalized review.
func (n Normalized) AsRaw() Raw {
	dateText := ""
	if n.DateKnown() {
		dateText = n.Date.Format("2006-01-02")
	}
	return Raw{
		Text:       n.Text,
		Rating:     n.Rating,
		SubRatings: n.SubRatings,
		MenuItems:  n.MenuItems,
		DateText:   dateText,
		Position:   n.Position,
	}
}

// DaysApart returns the absolute distance in calendar days between two
// resolved dates. Either side being unknown yields a distance larger than any
// real listing spans, so unknown dates never satisfy a tolerance check.
func DaysApart(a, b time.Time) int {
	if a.IsZero() || b.IsZero() {
		return math.MaxInt32
	}
	diff := a.Sub(b).Hours() / 24
	days := int(math.Round(math.Abs(diff)))
	return days
}

// RatingsClose reports whether two overall ratings agree within epsilon.
// Absent ratings (zero) never agree; a missing score is no evidence.
func RatingsClose(a, b, epsilon float64) bool {
	if a <= 0 || b <= 0 {
		return false
	}
	return math.Abs(a-b) <= epsilon
}
