package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/ghep/internal/digest"
	"github.com/roach88/ghep/internal/ghep"
	"github.com/roach88/ghep/internal/particle"
)

// createTestStore opens a store in a per-test temp directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// testRecord builds a resonance event whose layout needed a compaction: a
// second daughter of the neutrino arrives after the Δ++ block, which moves
// the Δ++ to position 4.
func testRecord() *ghep.Record {
	r := ghep.NewRecord()
	r.AddComponents(14, particle.StatusInitialState, -1, -1, -1, -1, 0, 0, 2, 2, 0, 0, 0, 0)
	r.AddComponents(2212, particle.StatusInitialState, -1, -1, -1, -1, 0, 0, 0, 0.938272, 0, 0, 0, 0)
	r.AddComponents(13, particle.StatusStableFinalState, 0, -1, -1, -1, 0.2, 0, 0.8, 0.83, 0, 0, 0, 0)
	r.AddComponents(2224, particle.StatusDecayedState, 1, -1, -1, -1, -0.2, 0, 1.2, 2.1, 0, 0, 0, 0)
	r.AddComponents(2212, particle.StatusStableFinalState, 3, -1, -1, -1, -0.1, 0, 0.9, 1.3, 0, 0, 0, 0)
	r.AddComponents(22, particle.StatusStableFinalState, 0, -1, -1, -1, 0, 0, 0.05, 0.05, 0, 0, 0, 0)
	r.AddComponents(211, particle.StatusStableFinalState, 4, -1, -1, -1, -0.1, 0, 0.3, 0.35, 0, 0, 0, 0)
	r.ShiftVertex(particle.Vec4(0.5, -0.5, 1.25, 0))
	r.AttachSummary(ghep.Label("RES-CC"))
	return r
}

func recordDigest(t *testing.T, r *ghep.Record) string {
	t.Helper()
	snap, err := digest.Take(r)
	require.NoError(t, err)
	sum, err := snap.Digest()
	require.NoError(t, err)
	return sum
}
