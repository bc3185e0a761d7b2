package match

// Policy centralizes matching thresholds and tie-break rules.
type Policy struct {
	// FactorThreshold is the minimum number of the four weighted factors a
	// candidate must satisfy in stage 2.
	FactorThreshold int
	// DateToleranceDays absorbs relative-date rounding drift between two
	// captures taken at different times of day.
	DateToleranceDays int
	// RatingEpsilon bounds rating comparison in stage 2.
	RatingEpsilon float64
	// SimilarityFloor is the minimum token-overlap ratio a stage 3 candidate
	// must clear.
	SimilarityFloor float64
	// SimilarityTieMargin controls stage 3 tie-breaking: candidates at equal
	// date distance whose similarity is within this margin of the best are
	// reported as ambiguous rather than picked arbitrarily.
	SimilarityTieMargin float64
}

// DefaultPolicy returns conservative defaults tuned for delivery-app review
// listings.
func DefaultPolicy() Policy {
	return Policy{
		FactorThreshold:     3,
		DateToleranceDays:   1,
		RatingEpsilon:       0.01,
		SimilarityFloor:     0.5,
		SimilarityTieMargin: 0.05,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()

	if p.FactorThreshold <= 0 || p.FactorThreshold > factorCount {
		p.FactorThreshold = d.FactorThreshold
	}
	if p.DateToleranceDays < 0 {
		p.DateToleranceDays = d.DateToleranceDays
	}
	if p.RatingEpsilon <= 0 {
		p.RatingEpsilon = d.RatingEpsilon
	}
	if p.SimilarityFloor <= 0 || p.SimilarityFloor >= 1 {
		p.SimilarityFloor = d.SimilarityFloor
	}
	if p.SimilarityTieMargin < 0 || p.SimilarityTieMargin >= 1 {
		p.SimilarityTieMargin = d.SimilarityTieMargin
	}
	return p
}
