// Package match re-locates a previously stored review inside a freshly
// fingerprinted snapshot of the same listing.
//
// Locate runs a short-circuiting cascade:
//
//  1. Stable-ID lookup. Free and unambiguous; hits when the listing layout
//     and salt are unchanged since collection.
//  2. Weighted factors. Every snapshot entry is scored on four independent
//     boolean signals (text equality/containment, resolved date within
//     tolerance, rating within epsilon, content-hash equality). A candidate
//     needs at least three; one qualifying candidate is a fuzzy match, more
//     than one is surfaced as ambiguous. Multiple independent signals keep
//     false positives low under typical drift (an inserted review shifting
//     positions, a relative date resolving a day differently).
//  3. Token-overlap similarity with closest-date preference, entered only
//     when stage 2 produces no candidate. The most expensive and least
//     discriminating signal, so it runs last.
//  4. Not found. Callers retry on a later snapshot; they never fabricate a
//     match, and they treat ambiguous and not-found results as "not ready",
//     never as a trigger to act.
//
// Locate is a pure in-memory scan over a read-only snapshot. Listings are
// tens to low hundreds of reviews, so no structure beyond the snapshot's
// stable-ID map is needed.
package match
