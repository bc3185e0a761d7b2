// Package api exposes the CLI-facing workflows: collecting a snapshot,
// locating a stored record inside a fresh snapshot, and inspecting records
// and ledger state. Each workflow opens what it needs from configuration and
// releases it before returning.
package api
