package fingerprint

import (
	"fmt"
	"time"

	"retrace/internal/review"
)

// Entry pairs one fingerprint with its source review inside a snapshot.
type Entry struct {
	Fingerprint Fingerprint
	Review      review.Normalized
}

// Snapshot is the ordered, fingerprinted capture of one listing. It is built
// once per crawl pass and read-only afterwards, so it may be shared across
// concurrent Locate calls without locking.
type Snapshot struct {
	salt    string
	entries []Entry
	byID    map[string]int
}

// NewSnapshot fingerprints the ordered reviews under salt and indexes them by
// stable ID.
func NewSnapshot(salt string, items []review.Normalized) *Snapshot {
	fingerprints := Build(salt, items)
	entries := make([]Entry, len(items))
	byID := make(map[string]int, len(items))
	for i := range items {
		entries[i] = Entry{Fingerprint: fingerprints[i], Review: items[i]}
		byID[fingerprints[i].StableID] = i
	}
	return &Snapshot{salt: salt, entries: entries, byID: byID}
}

// Salt returns the snapshot-scoped salt the fingerprints were built under.
func (s *Snapshot) Salt() string {
	return s.salt
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// At returns the entry at position i.
func (s *Snapshot) At(i int) *Entry {
	return &s.entries[i]
}

// Lookup finds an entry by stable ID.
func (s *Snapshot) Lookup(stableID string) (*Entry, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.byID[stableID]
	if !ok {
		return nil, false
	}
	return &s.entries[i], true
}

// Salt composes a snapshot salt from the listing owner, the capture date, and
// the page index. The composition scopes stable IDs so byte-identical content
// on two different listings never collides; it contains no secret.
func Salt(owner string, capturedAt time.Time, page int) string {
	return fmt.Sprintf("%s|%s|%d", owner, capturedAt.UTC().Format("2006-01-02"), page)
}
