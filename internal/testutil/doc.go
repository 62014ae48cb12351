// Package testutil holds deterministic stand-ins for the event ID and seq
// sources used when records are persisted, so tests and golden runs produce
// identical stores.
package testutil
