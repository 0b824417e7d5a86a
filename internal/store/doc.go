// Package store provides SQLite-backed durable storage for the session
// ledger.
//
// The ledger is an append-mostly table of session records keyed by an
// AUTOINCREMENT seq, so sequence numbers are never reused even if rows are
// deleted out-of-band. The open tail is mutated in place on refresh; a
// restart closes the tail and appends the next record inside a single
// transaction (RotateTail), which is the only atomicity the design needs -
// concurrent writers are serialized externally by the caller's scheduling.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
//
// Open creates the containing directory and schema on first run and seeds
// a ledger_meta row carrying the ledger's UUID identity.
package store
