// Package store provides a SQLite-backed journal of harness runs.
//
// The journal is append-only:
//   - Runs: one row per harness invocation, with the subject path, whether
//     the extended set was enabled, the catalog digest and the final status
//   - Checks: one row per reported check, keyed by (run_id, seq)
//
// # Ordering
//
// Runs are ordered by a logical seq column assigned when the run begins, never
// by wall time. Checks carry the sequence number the reporter gave them. All
// queries order by seq so two reads of the same journal return identical
// results.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
