package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ghep/internal/ghep"
	"github.com/roach88/ghep/internal/particle"
)

type labelSummary string

func (s labelSummary) Clone() ghep.Summary { return s }

func (s labelSummary) MarshalText() ([]byte, error) { return []byte(s), nil }

type opaqueSummary struct{}

func (opaqueSummary) Clone() ghep.Summary { return opaqueSummary{} }

func decayRecord() *ghep.Record {
	r := ghep.NewRecord()
	r.AddComponents(111, particle.StatusDecayedState, -1, -1, -1, -1, 0, 0, 0.5, 0.5179, 0, 0, 0, 0)
	r.AddComponents(22, particle.StatusStableFinalState, 0, -1, -1, -1, 0, 0.0675, 0.25, 0.259, 0, 0, 0, 0)
	r.AddComponents(22, particle.StatusStableFinalState, 0, -1, -1, -1, 0, -0.0675, 0.25, 0.259, 0, 0, 0, 0)
	return r
}

func TestTake(t *testing.T) {
	r := decayRecord()
	r.AttachSummary(labelSummary("pi0 decay"))
	r.SetGenericErr(true)

	s, err := Take(r)
	require.NoError(t, err)

	assert.Equal(t, "pi0 decay", s.Summary)
	assert.Equal(t, Flags{GenericErr: true, Unphysical: true}, s.Flags)
	require.Len(t, s.Particles, 3)
	assert.Equal(t, [2]int{1, 2}, s.Particles[0].Daughters)
	assert.Equal(t, [2]int{0, -1}, s.Particles[2].Mothers)
	assert.Equal(t, "π0", s.Particles[0].Name)
}

func TestTakeOpaqueSummary(t *testing.T) {
	r := decayRecord()
	r.AttachSummary(opaqueSummary{})

	s, err := Take(r)
	require.NoError(t, err)
	assert.Empty(t, s.Summary)
}

func TestEntryParticleRoundTrip(t *testing.T) {
	r := decayRecord()
	s, err := Take(r)
	require.NoError(t, err)

	for i, e := range s.Particles {
		assert.True(t, r.Particle(i).Compare(e.Particle()), "entry %d", i)
	}
}

func TestCanonicalShape(t *testing.T) {
	r := ghep.NewRecord()
	r.AddComponents(22, particle.StatusStableFinalState, -1, -1, -1, -1, 0, 0, 1, 1, 0, 0, 0, 0)

	s, err := Take(r)
	require.NoError(t, err)
	got, err := s.Canonical()
	require.NoError(t, err)

	assert.Equal(t,
		`{"flags":{"below_thr_nrf":false,"generic_err":false,"pauli_blocked":false,"unphysical":false},`+
			`"particles":[{"daughters":[-1,-1],"mothers":[-1,-1],"name":"γ","p4":[0,0,1,1],"pdg":22,`+
			`"pos":0,"status":"stable_final_state","x4":[0,0,0,0]}]}`,
		string(got))
}

func recordDigest(t *testing.T, r *ghep.Record) string {
	t.Helper()
	s, err := Take(r)
	require.NoError(t, err)
	sum, err := s.Digest()
	require.NoError(t, err)
	return sum
}

func TestDigestDeterministic(t *testing.T) {
	a := recordDigest(t, decayRecord())
	b := recordDigest(t, decayRecord())
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestDigestChangesWithContent(t *testing.T) {
	base := recordDigest(t, decayRecord())

	shifted := decayRecord()
	shifted.ShiftVertex(particle.Vec4(0, 0, 1e-9, 0))
	assert.NotEqual(t, base, recordDigest(t, shifted))

	flagged := decayRecord()
	flagged.SetPauliBlocked(true)
	assert.NotEqual(t, base, recordDigest(t, flagged))

	labelled := decayRecord()
	labelled.AttachSummary(labelSummary("x"))
	assert.NotEqual(t, base, recordDigest(t, labelled))
}

func TestDigestUsesDomainSeparation(t *testing.T) {
	data := []byte(`{}`)
	assert.NotEqual(t, hashWithDomain(DomainRecord, data), hashWithDomain("other/v1", data))
}
