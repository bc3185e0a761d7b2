// Package textutil provides tokenization and token-overlap similarity for
// normalized review text.
package textutil

import (
	"strings"
	"unicode"
)

// Tokenize splits text into lowercase tokens on any non-letter, non-digit
// boundary. Single-rune tokens are kept: CJK review text carries meaning in
// very short tokens, so no minimum length is enforced.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	return strings.FieldsFunc(lowered, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// TokenSet builds the unique token set for text.
func TokenSet(text string) map[string]struct{} {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}

// OverlapRatio computes the Jaccard ratio between the token sets of two
// texts: |intersection| / |union|. Returns 0 when either side has no tokens.
func OverlapRatio(a, b string) float64 {
	setA := TokenSet(a)
	setB := TokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	intersection := 0
	for token := range setA {
		if _, ok := setB[token]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
