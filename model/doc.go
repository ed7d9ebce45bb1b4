// Package model turns parsed directive records into a validated, immutable
// SearchConfig: the full set of search parameters a Xi run needs
// (tolerances, crosslinkers, modifications, digestion, fragment ion series,
// neutral losses, scoring and runtime knobs).
//
// Build runs semantic checks over the whole record set, aggregates every
// error with its source line, applies documented defaults for directives
// that are entirely absent and collects non-fatal warnings. The resulting
// SearchConfig never mutates after construction and is safe to share across
// worker goroutines without locking.
package model
