package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/width"
)

// Relative expressions resolve to the start of the referenced day, so the same
// phrase captured at different times of day yields the same calendar date.
// Expressions that resolve to nothing return the zero time, the explicit
// unknown-date sentinel; the resolver never guesses.

var (
	relativeKoreanPattern  = regexp.MustCompile(`^(\d+)\s*(분|시간|일|주|개월|달)\s*전$`)
	relativeEnglishPattern = regexp.MustCompile(`^(\d+)\s*(minute|hour|day|week|month)s?\s+ago$`)
)

var absoluteDateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006.01.02.",
	"2006/01/02",
	"2006년 1월 2일",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ResolveDate resolves a rendered date expression to a calendar day at UTC
// midnight, using capturedAt as the anchor for relative phrases. Returns the
// zero time when the expression cannot be resolved.
func ResolveDate(dateText string, capturedAt time.Time) time.Time {
	folded := strings.TrimSpace(width.Fold.String(dateText))
	cleaned := strings.ToLower(folded)
	if cleaned == "" || capturedAt.IsZero() {
		return time.Time{}
	}

	switch cleaned {
	case "오늘", "today", "방금", "방금 전", "just now":
		return startOfDay(capturedAt)
	case "어제", "yesterday":
		return startOfDay(capturedAt.AddDate(0, 0, -1))
	case "그제", "그저께":
		return startOfDay(capturedAt.AddDate(0, 0, -2))
	}

	if m := relativeKoreanPattern.FindStringSubmatch(cleaned); m != nil {
		return resolveRelative(capturedAt, m[1], koreanUnit(m[2]))
	}
	if m := relativeEnglishPattern.FindStringSubmatch(cleaned); m != nil {
		return resolveRelative(capturedAt, m[1], m[2])
	}

	for _, layout := range absoluteDateLayouts {
		if parsed, err := time.Parse(layout, folded); err == nil {
			return startOfDay(parsed)
		}
	}
	return time.Time{}
}

func koreanUnit(unit string) string {
	switch unit {
	case "분":
		return "minute"
	case "시간":
		return "hour"
	case "일":
		return "day"
	case "주":
		return "week"
	case "개월", "달":
		return "month"
	}
	return ""
}

func resolveRelative(capturedAt time.Time, amountText, unit string) time.Time {
	amount, err := strconv.Atoi(amountText)
	if err != nil || amount < 0 {
		return time.Time{}
	}
	switch unit {
	case "minute":
		return startOfDay(capturedAt.Add(-time.Duration(amount) * time.Minute))
	case "hour":
		return startOfDay(capturedAt.Add(-time.Duration(amount) * time.Hour))
	case "day":
		return startOfDay(capturedAt.AddDate(0, 0, -amount))
	case "week":
		return startOfDay(capturedAt.AddDate(0, 0, -7*amount))
	case "month":
		return startOfDay(capturedAt.AddDate(0, -amount, 0))
	}
	return time.Time{}
}

func startOfDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
