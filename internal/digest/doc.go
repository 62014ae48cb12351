// Package digest turns an event record into a deterministic snapshot and a
// content-addressed digest.
//
// The snapshot is serialised as RFC 8785 style canonical JSON: object keys
// sorted by UTF-16 code units, strings NFC-normalised, no HTML escaping and
// numbers in their shortest round-trip form. Two records with the same
// entries, summary label and flags always produce the same bytes, which is
// what the store uses for idempotent writes and the harness for golden
// files.
package digest
