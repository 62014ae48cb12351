// Package particle defines the entries stored in a GHEP event record.
//
// A Particle carries a PDG code, a status (its role in the event), mother and
// daughter links, a 4-momentum and a 4-position. Links are positions into the
// owning record, never pointers: -1 means "none". This package imports
// nothing internal except pdg, so both ghep and its collaborators can share
// the types without cycles.
package particle
