package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"retrace/internal/review"
)

// StableIDLength is the hex length of a truncated stable identifier.
const StableIDLength = 16

// neighborSentinel substitutes for content hashes outside the snapshot range.
const neighborSentinel = "0000000000000000000000000000000000000000000000000000000000000000"

// Fingerprint is the identity record computed for one review within one
// snapshot. Immutable once built.
type Fingerprint struct {
	ContentHash  string
	RollingHash  string
	NeighborHash string
	SnapshotSalt string
	Position     int
	StableID     string
}

// Build computes fingerprints for an ordered sequence of normalized reviews
// captured under one snapshot salt. Pure and reproducible: identical inputs
// yield byte-identical output.
func Build(salt string, items []review.Normalized) []Fingerprint {
	n := len(items)
	if n == 0 {
		return nil
	}

	// First pass: content hashes. The second pass reads neighbors in both
	// directions, so it must not start until this pass completes.
	contentHashes := make([]string, n)
	for i, item := range items {
		contentHashes[i] = hashHex(item.Text)
	}

	fingerprints := make([]Fingerprint, n)
	rollingPrev := hashHex(salt)
	for i := range items {
		rolling := hashHex(contentHashes[i], rollingPrev)

		nextContent := neighborSentinel
		if i+1 < n {
			nextContent = contentHashes[i+1]
		}
		stableID := hashHex(contentHashes[i], rollingPrev, nextContent, salt)[:StableIDLength]

		fingerprints[i] = Fingerprint{
			ContentHash:  contentHashes[i],
			RollingHash:  rolling,
			NeighborHash: neighborHash(contentHashes, i),
			SnapshotSalt: salt,
			Position:     i,
			StableID:     stableID,
		}
		rollingPrev = rolling
	}
	return fingerprints
}

func neighborHash(contentHashes []string, i int) string {
	window := make([]string, 0, 5)
	for offset := -2; offset <= 2; offset++ {
		j := i + offset
		if j < 0 || j >= len(contentHashes) {
			window = append(window, neighborSentinel)
			continue
		}
		window = append(window, contentHashes[j])
	}
	return hashHex(window...)
}

func hashHex(parts ...string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(parts, "")))
	return hex.EncodeToString(h.Sum(nil))
}
