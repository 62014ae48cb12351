// Package harness runs GHEP scenarios: declarative event records whose
// expected genealogy is checked after every particle has been appended.
//
// # Scenario Format
//
// Scenarios are YAML or CUE files with the following structure:
//
//	name: res_cc_delta
//	description: "Δ++ decay products appended after an unrelated daughter"
//	summary: RES-CC
//	particles:
//	  - {pdg: 14, status: initial_state, p4: [0, 0, 2, 2]}
//	  - {pdg: 13, status: stable_final_state, mother: 0}
//	flags:
//	  generic_err: false
//	shift_vertex: [0, 0, 0, 0]
//	assertions:
//	  - {type: daughters, pos: 0, first: 1, last: 1}
//	  - {type: compactions, count: 0}
//	  - {type: genealogy}
//
// Particles are appended in order; mother positions refer to the record as it
// stands when the particle is appended. The vertex shift is applied after the
// last append and the flags are set last.
//
// Every scenario is validated against the embedded CUE definition #Scenario
// before it runs, whatever format it was written in.
//
// # Assertion Types
//
//   - daughters: entry pos has daughter range [first, last] (-1, -1 for none)
//   - compactions: the record ran exactly count full compactions
//   - particle_at: entry pos has the given pdg (and status, if set)
//   - unphysical: the record's unphysical state equals value
//   - balance: the Fin-Init 4-momentum equals p4 within tolerance
//   - genealogy: every daughter range matches the mother links
//
// # Golden Files
//
// RunWithGolden compares the canonical JSON snapshot of the final record
// against testdata/golden/<name>.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
