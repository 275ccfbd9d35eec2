// Package store provides the record store behind the gate: cases, the flat
// document index, and the append-only trace log.
//
// Two implementations satisfy the same narrow interface:
//
//   - Memory: mutex-guarded maps with copy-on-read semantics. Used by tests
//     and by deployments that accept process-lifetime persistence.
//   - SQLite: durable store with WAL mode, pragma configuration, and
//     user_version migrations. Used by the CLI by default.
//
// The gate never reaches past the Store interface; both implementations hand
// out deep copies so readers cannot observe concurrent structural changes.
//
// Trace events are append-only: there is no update or delete path for them in
// either implementation. Query order is timestamp descending with insertion
// order (seq) breaking ties.
package store
