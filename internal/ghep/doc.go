// Package ghep implements the GHEP event record: an ordered sequence of
// particle entries that together encode the generation tree of one
// simulated interaction.
//
// # Genealogy
//
// Relationships are positions, not pointers. Every entry names its first
// mother; the record maintains, for every entry, the inclusive range of
// positions holding its daughters. That range must be contiguous:
//
//	for every i with FirstDaughter(i) != -1, the entries whose
//	FirstMother == i are exactly FirstDaughter(i)..LastDaughter(i)
//
// Appends normally extend a range in O(1). When an append lands away from its
// mother's existing block the Compactor reorders slots in place and derives
// every range again from the mother links.
//
// # Position stability
//
// Positions are the only identity an entry has. Any Add* call may trigger a
// full compaction, after which previously obtained positions and *Particle
// pointers may refer to different content. Re-query after appending.
//
// # Concurrency
//
// A Record is not safe for concurrent use. One record per in-flight event,
// owned by one goroutine, is the expected usage.
package ghep
