// Package pdg provides the particle-data lookups the event record needs:
// a printable name, a nominal mass, and the fake/nucleus classification
// used by the 4-momentum balance.
//
// The table is embedded (table.yaml) and parsed once on first use. Names are
// NFC-normalised so that names built from combining marks (ν̅) compare equal
// regardless of how the source file was encoded.
package pdg
