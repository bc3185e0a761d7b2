// Package records persists stored review records: the durable union of a
// normalized review, its fingerprint, and downstream reply state.
//
// Records are created when a review is first collected and never mutated
// afterwards except to attach reply state. The store is SQLite-backed and
// keyed by stable ID, which is unique within one database's history.
package records
