// Package store provides SQLite-backed persistence for GHEP event records.
//
// Each record is one row in events plus one row per entry in particles,
// keyed by (event_id, pos). Entries are stored in record order with their
// daughter ranges verbatim, so a record read back has exactly the layout it
// was written with.
//
// # Idempotency
//
// Events carry the content digest from internal/digest under a UNIQUE
// constraint. Writing a record whose content is already stored inserts
// nothing and reports the existing event ID.
//
// # Ordering
//
// Listings use ORDER BY seq ASC, id ASC COLLATE BINARY. seq is a logical
// counter supplied by the caller, never a timestamp.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: particles cascade with their event
package store
