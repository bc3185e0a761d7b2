package match

import (
	"strings"

	"retrace/internal/fingerprint"
	"retrace/internal/records"
	"retrace/internal/review"
	"retrace/internal/textutil"
)

// factorCount is the number of independent stage 2 signals.
const factorCount = 4

// Kind tags a match outcome.
type Kind int

const (
	// KindNotFound means no stage produced a candidate. A normal, retryable
	// outcome, not an error.
	KindNotFound Kind = iota
	// KindExact means the stored stable ID was present in the snapshot.
	KindExact
	// KindFuzzy means a single candidate was accepted on partial evidence.
	KindFuzzy
	// KindAmbiguous means multiple candidates qualified and the caller must
	// not guess among them.
	KindAmbiguous
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindFuzzy:
		return "fuzzy"
	case KindAmbiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// Result is the outcome of one Locate call. It is consumed immediately by the
// caller and never persisted; only the downstream action outcome is durable.
type Result struct {
	Kind Kind
	// Entry is the located snapshot entry for exact and fuzzy outcomes.
	Entry *fingerprint.Entry
	// Confidence is the fraction of stage 2 factors matched, or the token
	// overlap ratio for stage 3 results. 1.0 for exact matches.
	Confidence float64
	// Candidates lists all qualifying entries for ambiguous outcomes.
	Candidates []*fingerprint.Entry
	// Stage names the cascade stage that produced the result.
	Stage string
}

// Locate runs the matching cascade for one stored record against one
// snapshot. Pure: it never blocks and never mutates its inputs.
func Locate(record *records.Record, snapshot *fingerprint.Snapshot, policy Policy) Result {
	policy = policy.normalized()
	if record == nil || snapshot.Len() == 0 {
		return Result{Kind: KindNotFound, Stage: "empty_input"}
	}

	if entry, ok := snapshot.Lookup(record.StableID); ok {
		return Result{Kind: KindExact, Entry: entry, Confidence: 1.0, Stage: "stable_id"}
	}

	if result, ok := locateByFactors(record, snapshot, policy); ok {
		return result
	}

	if result, ok := locateBySimilarity(record, snapshot, policy); ok {
		return result
	}

	return Result{Kind: KindNotFound, Stage: "exhausted"}
}

// locateByFactors scores every snapshot entry on four independent boolean
// factors and accepts candidates clearing the threshold.
func locateByFactors(record *records.Record, snapshot *fingerprint.Snapshot, policy Policy) (Result, bool) {
	stored := record.Normalized()

	type scored struct {
		entry   *fingerprint.Entry
		matched int
	}
	var candidates []scored

	for i := 0; i < snapshot.Len(); i++ {
		entry := snapshot.At(i)
		matched := countFactors(stored, record.ContentHash, entry, policy)
		if matched >= policy.FactorThreshold {
			candidates = append(candidates, scored{entry: entry, matched: matched})
		}
	}

	switch len(candidates) {
	case 0:
		return Result{}, false
	case 1:
		return Result{
			Kind:       KindFuzzy,
			Entry:      candidates[0].entry,
			Confidence: float64(candidates[0].matched) / factorCount,
			Stage:      "factors",
		}, true
	default:
		entries := make([]*fingerprint.Entry, len(candidates))
		for i, c := range candidates {
			entries[i] = c.entry
		}
		return Result{Kind: KindAmbiguous, Candidates: entries, Stage: "factors"}, true
	}
}

func countFactors(stored review.Normalized, storedContentHash string, entry *fingerprint.Entry, policy Policy) int {
	matched := 0
	if textMatches(stored.Text, entry.Review.Text) {
		matched++
	}
	if review.DaysApart(stored.Date, entry.Review.Date) <= policy.DateToleranceDays {
		matched++
	}
	if review.RatingsClose(stored.Rating, entry.Review.Rating, policy.RatingEpsilon) {
		matched++
	}
	if storedContentHash != "" && storedContentHash == entry.Fingerprint.ContentHash {
		matched++
	}
	return matched
}

// textMatches accepts equality or containment in either direction. Listings
// truncate long reviews, so either capture may hold a prefix of the other.
func textMatches(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.Contains(a, b) || strings.Contains(b, a)
}

// locateBySimilarity is the last-resort scan: token overlap against every
// entry, keeping candidates above the floor and preferring the closest
// resolved date among them.
func locateBySimilarity(record *records.Record, snapshot *fingerprint.Snapshot, policy Policy) (Result, bool) {
	stored := record.Normalized()

	type scored struct {
		entry      *fingerprint.Entry
		similarity float64
		dateDist   int
	}
	var candidates []scored

	for i := 0; i < snapshot.Len(); i++ {
		entry := snapshot.At(i)
		similarity := textutil.OverlapRatio(stored.Text, entry.Review.Text)
		if similarity < policy.SimilarityFloor {
			continue
		}
		candidates = append(candidates, scored{
			entry:      entry,
			similarity: similarity,
			dateDist:   review.DaysApart(stored.Date, entry.Review.Date),
		})
	}
	if len(candidates) == 0 {
		return Result{}, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.dateDist < best.dateDist {
			best = c
			continue
		}
		if c.dateDist == best.dateDist && c.similarity > best.similarity {
			best = c
		}
	}

	// Candidates at the same date distance whose similarity sits within the
	// tie margin of the best are indistinguishable; surface them instead of
	// picking one.
	var tied []*fingerprint.Entry
	for _, c := range candidates {
		if c.dateDist == best.dateDist && best.similarity-c.similarity <= policy.SimilarityTieMargin {
			tied = append(tied, c.entry)
		}
	}
	if len(tied) > 1 {
		return Result{Kind: KindAmbiguous, Candidates: tied, Stage: "similarity"}, true
	}

	return Result{
		Kind:       KindFuzzy,
		Entry:      best.entry,
		Confidence: best.similarity,
		Stage:      "similarity",
	}, true
}
