// Package fingerprint assigns durable identifiers to reviews that expose no
// platform identifier of their own.
//
// For each review in one listing snapshot the builder computes three SHA-256
// derived values:
//
//   - a content hash over the normalized text, position-independent;
//   - a rolling hash chained across the snapshot from a salt-derived seed, so
//     any change earlier in the listing changes every subsequent value (a
//     coarse "listing changed above here" detector, never used for identity
//     on its own);
//   - a neighbor hash over the ±2 window of content hashes, with a fixed
//     sentinel standing in for out-of-range neighbors.
//
// The stable ID combines the review's own content hash, the previous rolling
// hash, the next review's content hash, and the snapshot salt, truncated to
// 16 hex characters. It is a lookup key, not a security token; 64 bits is
// ample against accidental collision within one listing's history. Tying the
// ID to local context means two identical texts at different positions get
// distinct IDs, while an unchanged listing re-crawled under the same salt
// reproduces the same IDs exactly.
//
// Building is a strict two-pass computation: all content hashes must exist
// before any rolling hash or stable ID is derived.
package fingerprint
