// Package normalize converts raw extracted reviews into their canonical form.
//
// Normalization is total and deterministic: malformed input degrades to empty
// fields instead of erroring, because the only consumer is fingerprinting and
// a review that cannot be canonicalized must still hash reproducibly.
// Normalizing an already-normalized review is a no-op.
package normalize

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/width"

	"retrace/internal/review"
)

// Review canonicalizes one raw review. capturedAt anchors relative date
// expressions ("어제", "3 days ago") to an absolute calendar day.
func Review(raw review.Raw, capturedAt time.Time) review.Normalized {
	return review.Normalized{
		Text:       Text(raw.Text),
		Rating:     raw.Rating,
		SubRatings: raw.SubRatings,
		MenuItems:  normalizeMenuItems(raw.MenuItems),
		Date:       ResolveDate(raw.DateText, capturedAt),
		Position:   raw.Position,
	}
}

// Text reduces review text to its canonical form: width-folded, lowercased,
// stripped of emoji/punctuation/non-printables, whitespace collapsed.
func Text(value string) string {
	folded := width.Fold.String(value)

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
		default:
			// Punctuation, emoji, control characters, and separators all
			// collapse to a word boundary so token order survives.
			b.WriteByte(' ')
		}
	}
	return collapseWhitespace(b.String())
}

func collapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

func normalizeMenuItems(items []string) []string {
	if len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		cleaned := Text(item)
		if cleaned == "" {
			continue
		}
		out = append(out, cleaned)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
