package match_test

import (
	"testing"
	"time"

	"retrace/internal/fingerprint"
	"retrace/internal/match"
	"retrace/internal/normalize"
	"retrace/internal/records"
	"retrace/internal/review"
	"retrace/internal/testsupport"
)

var baseDate = time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)

func storedRecord(t *testing.T, snapshot *fingerprint.Snapshot, position int) *records.Record {
	t.Helper()
	if position >= snapshot.Len() {
		t.Fatalf("position %d outside snapshot of %d entries", position, snapshot.Len())
	}
	return records.NewFromEntry(snapshot.At(position))
}

func TestLocateExactOnUnchangedListing(t *testing.T) {
	items := testsupport.Reviews(baseDate, "fast delivery", "great chicken", "cold pizza")
	snapshot := fingerprint.NewSnapshot("owner|2025-08-20|0", items)
	record := storedRecord(t, snapshot, 1)

	// The listing did not change, so a re-fingerprinted capture under the
	// same salt reproduces the stored stable ID.
	fresh := fingerprint.NewSnapshot("owner|2025-08-20|0", items)
	result := match.Locate(record, fresh, match.DefaultPolicy())

	if result.Kind != match.KindExact {
		t.Fatalf("kind = %s, want exact", result.Kind)
	}
	if result.Stage != "stable_id" {
		t.Fatalf("stage = %q, want stable_id", result.Stage)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want 1.0", result.Confidence)
	}
	if result.Entry.Review.Text != "great chicken" {
		t.Fatalf("located %q, want %q", result.Entry.Review.Text, "great chicken")
	}
}

func TestLocateFuzzyAfterListingDrift(t *testing.T) {
	// Stored yesterday; today a new review pushed everything down one
	// position and the salt changed with the capture date. Stable IDs no
	// longer line up, so the factor stage must recover the review.
	original := []review.Normalized{
		{Text: "fast delivery", Rating: 5.0, Date: baseDate, Position: 0},
		{Text: "great chicken", Rating: 4.0, Date: baseDate.AddDate(0, 0, -10), Position: 1},
		{Text: "cold pizza", Rating: 2.0, Date: baseDate.AddDate(0, 0, -20), Position: 2},
	}
	snapshot := fingerprint.NewSnapshot("owner|2025-08-20|0", original)
	record := storedRecord(t, snapshot, 1)

	shifted := []review.Normalized{
		{Text: "brand new review", Rating: 3.0, Date: baseDate.AddDate(0, 0, 1), Position: 0},
		{Text: "fast delivery", Rating: 5.0, Date: baseDate, Position: 1},
		{Text: "great chicken", Rating: 4.0, Date: baseDate.AddDate(0, 0, -9), Position: 2},
		{Text: "cold pizza", Rating: 2.0, Date: baseDate.AddDate(0, 0, -20), Position: 3},
	}
	fresh := fingerprint.NewSnapshot("owner|2025-08-21|0", shifted)
	result := match.Locate(record, fresh, match.DefaultPolicy())

	if result.Kind != match.KindFuzzy {
		t.Fatalf("kind = %s, want fuzzy", result.Kind)
	}
	if result.Stage != "factors" {
		t.Fatalf("stage = %q, want factors", result.Stage)
	}
	if result.Confidence < 0.75 {
		t.Fatalf("confidence = %v, want >= 0.75", result.Confidence)
	}
	if result.Entry.Review.Text != "great chicken" {
		t.Fatalf("located %q, want %q", result.Entry.Review.Text, "great chicken")
	}
}

func TestLocateAmbiguousOnDuplicateReviews(t *testing.T) {
	// Two indistinguishable reviews in the fresh snapshot both clear the
	// factor threshold; the cascade must refuse to guess between them.
	original := []review.Normalized{
		{Text: "good value lunch set", Rating: 5.0, Date: baseDate, Position: 0},
	}
	snapshot := fingerprint.NewSnapshot("owner|2025-08-20|0", original)
	record := storedRecord(t, snapshot, 0)

	duplicated := []review.Normalized{
		{Text: "good value lunch set", Rating: 5.0, Date: baseDate, Position: 0},
		{Text: "something else entirely", Rating: 1.0, Date: baseDate.AddDate(0, 0, -30), Position: 1},
		{Text: "good value lunch set", Rating: 5.0, Date: baseDate, Position: 2},
	}
	fresh := fingerprint.NewSnapshot("owner|2025-08-21|0", duplicated)
	result := match.Locate(record, fresh, match.DefaultPolicy())

	if result.Kind != match.KindAmbiguous {
		t.Fatalf("kind = %s, want ambiguous", result.Kind)
	}
	if result.Stage != "factors" {
		t.Fatalf("stage = %q, want factors", result.Stage)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(result.Candidates))
	}
	if result.Entry != nil {
		t.Fatalf("ambiguous result must not nominate an entry")
	}
}

func TestLocateSimilarityFallback(t *testing.T) {
	// Text was edited enough to break equality and containment, the date and
	// rating drifted, so only the token-overlap stage can find it.
	original := []review.Normalized{
		{Text: "fast delivery great chicken happy", Rating: 5.0, Date: baseDate, Position: 0},
	}
	snapshot := fingerprint.NewSnapshot("owner|2025-08-20|0", original)
	record := storedRecord(t, snapshot, 0)

	edited := []review.Normalized{
		{Text: "great chicken fast delivery edited", Rating: 3.0, Date: baseDate.AddDate(0, 0, -7), Position: 0},
		{Text: "totally unrelated words here", Rating: 1.0, Date: baseDate, Position: 1},
	}
	fresh := fingerprint.NewSnapshot("owner|2025-08-21|0", edited)
	result := match.Locate(record, fresh, match.DefaultPolicy())

	if result.Kind != match.KindFuzzy {
		t.Fatalf("kind = %s, want fuzzy", result.Kind)
	}
	if result.Stage != "similarity" {
		t.Fatalf("stage = %q, want similarity", result.Stage)
	}
	if result.Entry.Review.Text != "great chicken fast delivery edited" {
		t.Fatalf("located %q", result.Entry.Review.Text)
	}
	// 4 shared tokens of 6 distinct.
	if result.Confidence < 0.6 || result.Confidence > 0.7 {
		t.Fatalf("confidence = %v, want about 0.667", result.Confidence)
	}
}

func TestLocateSimilarityPrefersClosestDate(t *testing.T) {
	original := []review.Normalized{
		{Text: "spicy noodles arrived warm tasty", Rating: 4.0, Date: baseDate, Position: 0},
	}
	snapshot := fingerprint.NewSnapshot("owner|2025-08-20|0", original)
	record := storedRecord(t, snapshot, 0)

	candidates := []review.Normalized{
		{Text: "noodles arrived warm spicy enough overall", Rating: 2.0, Date: baseDate.AddDate(0, 0, -5), Position: 0},
		{Text: "warm spicy noodles arrived quickly", Rating: 2.5, Date: baseDate, Position: 1},
	}
	fresh := fingerprint.NewSnapshot("owner|2025-08-21|0", candidates)
	result := match.Locate(record, fresh, match.DefaultPolicy())

	if result.Kind != match.KindFuzzy {
		t.Fatalf("kind = %s, want fuzzy", result.Kind)
	}
	if result.Entry.Review.Position != 1 {
		t.Fatalf("picked position %d, want the same-date candidate at 1", result.Entry.Review.Position)
	}
}

func TestLocateSimilarityTieIsAmbiguous(t *testing.T) {
	original := []review.Normalized{
		{Text: "crispy pork cutlet generous portion", Rating: 5.0, Date: baseDate, Position: 0},
	}
	snapshot := fingerprint.NewSnapshot("owner|2025-08-20|0", original)
	record := storedRecord(t, snapshot, 0)

	// Same date distance, overlap within the tie margin of each other, and no
	// factor-stage signal because ratings and dates drifted.
	tied := []review.Normalized{
		{Text: "generous portion crispy pork always", Rating: 2.0, Date: baseDate.AddDate(0, 0, -6), Position: 0},
		{Text: "crispy generous pork portion again", Rating: 2.0, Date: baseDate.AddDate(0, 0, -6), Position: 1},
	}
	fresh := fingerprint.NewSnapshot("owner|2025-08-21|0", tied)
	result := match.Locate(record, fresh, match.DefaultPolicy())

	if result.Kind != match.KindAmbiguous {
		t.Fatalf("kind = %s, want ambiguous", result.Kind)
	}
	if result.Stage != "similarity" {
		t.Fatalf("stage = %q, want similarity", result.Stage)
	}
	if len(result.Candidates) != 2 {
		t.Fatalf("candidates = %d, want 2", len(result.Candidates))
	}
}

func TestLocateNotFound(t *testing.T) {
	original := []review.Normalized{
		{Text: "amazing tteokbokki", Rating: 5.0, Date: baseDate, Position: 0},
	}
	snapshot := fingerprint.NewSnapshot("owner|2025-08-20|0", original)
	record := storedRecord(t, snapshot, 0)

	unrelated := []review.Normalized{
		{Text: "completely different review content", Rating: 1.0, Date: baseDate.AddDate(0, 0, -90), Position: 0},
	}
	fresh := fingerprint.NewSnapshot("owner|2025-08-21|0", unrelated)
	result := match.Locate(record, fresh, match.DefaultPolicy())

	if result.Kind != match.KindNotFound {
		t.Fatalf("kind = %s, want not_found", result.Kind)
	}
	if result.Stage != "exhausted" {
		t.Fatalf("stage = %q, want exhausted", result.Stage)
	}
}

func TestLocateEmptyInputs(t *testing.T) {
	items := testsupport.Reviews(baseDate, "anything")
	snapshot := fingerprint.NewSnapshot("salt", items)
	record := storedRecord(t, snapshot, 0)

	empty := fingerprint.NewSnapshot("salt", nil)
	if result := match.Locate(record, empty, match.DefaultPolicy()); result.Kind != match.KindNotFound || result.Stage != "empty_input" {
		t.Fatalf("empty snapshot: kind = %s stage = %q", result.Kind, result.Stage)
	}
	if result := match.Locate(nil, snapshot, match.DefaultPolicy()); result.Kind != match.KindNotFound || result.Stage != "empty_input" {
		t.Fatalf("nil record: kind = %s stage = %q", result.Kind, result.Stage)
	}
}

func TestLocateUnknownDateNeverSatisfiesDateFactor(t *testing.T) {
	// One factor (rating) is not enough, and the unknown date must not count
	// as close to anything.
	original := []review.Normalized{
		{Text: "stored text one two three", Rating: 5.0, Date: time.Time{}, Position: 0},
	}
	snapshot := fingerprint.NewSnapshot("owner|2025-08-20|0", original)
	record := storedRecord(t, snapshot, 0)

	fresh := fingerprint.NewSnapshot("owner|2025-08-21|0", []review.Normalized{
		{Text: "entirely different words altogether", Rating: 5.0, Date: time.Time{}, Position: 0},
	})
	result := match.Locate(record, fresh, match.DefaultPolicy())
	if result.Kind != match.KindNotFound {
		t.Fatalf("kind = %s, want not_found", result.Kind)
	}
}

func TestLocateKoreanReviewAcrossDays(t *testing.T) {
	// End to end: collected on the 20th, matched against a capture from the
	// 21st where the review moved down one slot and its date reads "어제".
	firstCapture := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	day1 := []review.Normalized{
		normalize.Review(review.Raw{Text: "배달이 빨라요!", Rating: 5, DateText: "오늘", Position: 0}, firstCapture),
		normalize.Review(review.Raw{Text: "양이 적어요", Rating: 2, DateText: "3일 전", Position: 1}, firstCapture),
	}
	snapshot := fingerprint.NewSnapshot(fingerprint.Salt("store-77", firstCapture, 0), day1)
	record := storedRecord(t, snapshot, 0)

	secondCapture := time.Date(2025, 8, 21, 9, 0, 0, 0, time.UTC)
	day2 := []review.Normalized{
		normalize.Review(review.Raw{Text: "사장님이 친절해요", Rating: 5, DateText: "오늘", Position: 0}, secondCapture),
		normalize.Review(review.Raw{Text: "배달이 빨라요!", Rating: 5, DateText: "어제", Position: 1}, secondCapture),
		normalize.Review(review.Raw{Text: "양이 적어요", Rating: 2, DateText: "4일 전", Position: 2}, secondCapture),
	}
	fresh := fingerprint.NewSnapshot(fingerprint.Salt("store-77", secondCapture, 0), day2)

	result := match.Locate(record, fresh, match.DefaultPolicy())
	if result.Kind != match.KindFuzzy {
		t.Fatalf("kind = %s, want fuzzy", result.Kind)
	}
	if result.Confidence != 1.0 {
		t.Fatalf("confidence = %v, want 1.0 with every factor matched", result.Confidence)
	}
	if result.Entry.Review.Text != "배달이 빨라요" {
		t.Fatalf("located %q", result.Entry.Review.Text)
	}
}
