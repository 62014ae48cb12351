package harness

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ghep/internal/digest"
	"github.com/roach88/ghep/internal/particle"
)

func intPtr(n int) *int { return &n }

func statusPtr(s particle.Status) *particle.Status { return &s }

func TestRun_TestdataScenariosPass(t *testing.T) {
	paths, err := FindScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			s, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_ScenarioC_ShiftVertex(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/scenario_c.cue")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	p := result.Record.Particle(0)
	assert.Equal(t, particle.Vec4(1, 2, 3, 4), p.X4)
	assert.Equal(t, particle.Vec4(0.5, 0.25, 0.125, 1), p.P4)
}

func TestRun_ResultCarriesSnapshotAndDigest(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/res_cc_delta.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Compactions)
	assert.Equal(t, "RES-CC", result.Snapshot.Summary)
	assert.Len(t, result.Snapshot.Particles, 7)
	snap, err := digest.Take(result.Record)
	require.NoError(t, err)
	sum, err := snap.Digest()
	require.NoError(t, err)
	assert.Equal(t, sum, result.Digest)

	again, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, result.Digest, again.Digest)
}

func TestRun_FailingAssertionsAreReported(t *testing.T) {
	s := &Scenario{
		Name:        "failing",
		Description: "every assertion is wrong",
		Particles: []ParticleStep{
			{PDG: 14, Status: particle.StatusInitialState, P4: []float64{0, 0, 1, 1}},
			{PDG: 13, Status: particle.StatusStableFinalState, Mother: intPtr(0), P4: []float64{0, 0, 1, 1}},
		},
		Assertions: []Assertion{
			{Type: AssertDaughters, Pos: 0, First: 1, Last: 2},
			{Type: AssertCompactions, Count: 3},
			{Type: AssertParticleAt, Pos: 1, PDG: 11},
			{Type: AssertUnphysical, Value: true},
			{Type: AssertBalance, P4: []float64{0, 0, 0, 1}},
			{Type: AssertGenealogy},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Contains(t, result.Errors[0], "Assertion 0 failed: daughters")
	assert.Contains(t, result.Errors[0], "daughters [1, 1]")
	assert.Contains(t, result.Errors[1], "0 compactions")
	assert.Contains(t, result.Errors[2], "pdg 13")
	assert.Contains(t, result.Errors[3], "unphysical=false")
	assert.Contains(t, result.Errors[4], "balance")
}

func TestRun_InvalidScenarioIsAnError(t *testing.T) {
	s := &Scenario{Name: "bad", Description: "no assertions"}
	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")
}

func TestRun_LogsThroughInjectedLogger(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	s, err := LoadScenario("testdata/scenarios/scenario_b.yaml")
	require.NoError(t, err)
	_, err = Run(s, WithLogger(logger))
	require.NoError(t, err)

	out := logs.String()
	assert.Contains(t, out, "scenario=scenario_b")
	assert.Contains(t, out, "stream=GHEP")
	assert.Contains(t, out, "compacting daughter lists")
	assert.Contains(t, out, `msg="scenario completed"`)
}

func TestRun_MotherTwoIsRecordedButIgnored(t *testing.T) {
	s := &Scenario{
		Name:        "mother2",
		Description: "second mother does not drive genealogy",
		Particles: []ParticleStep{
			{PDG: 14, Status: particle.StatusInitialState},
			{PDG: 2112, Status: particle.StatusNucleonTarget},
			{PDG: 13, Status: particle.StatusStableFinalState, Mother: intPtr(0), Mother2: intPtr(1)},
		},
		Assertions: []Assertion{
			{Type: AssertDaughters, Pos: 0, First: 2, Last: 2},
			{Type: AssertDaughters, Pos: 1, First: -1, Last: -1},
			{Type: AssertParticleAt, Pos: 2, PDG: 13, Status: statusPtr(particle.StatusStableFinalState)},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 1, result.Record.Particle(2).LastMother)
}
