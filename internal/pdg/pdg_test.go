package pdg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

func TestLookup_KnownParticle(t *testing.T) {
	e, ok := Lookup(2212)
	require.True(t, ok)
	assert.Equal(t, "p", e.Name)
	assert.InDelta(t, 0.938272, e.Mass, 1e-9)
	assert.False(t, e.Fake)
}

func TestLookup_SynthesisedNucleus(t *testing.T) {
	e, ok := Lookup(1000200400) // Ca40, not in the table
	require.True(t, ok)
	assert.Equal(t, "Ion(Z=20,A=40)", e.Name)
	assert.InDelta(t, 40*AtomicMassUnit, e.Mass, 1e-9)
}

func TestLookup_Unknown(t *testing.T) {
	_, ok := Lookup(999999)
	assert.False(t, ok)
	assert.Equal(t, "999999", Name(999999))
	assert.Zero(t, Mass(999999))
}

func TestClassification(t *testing.T) {
	tests := []struct {
		code     int
		fake     bool
		nucleus  bool
		particle bool
	}{
		{code: 14, particle: true},
		{code: 2112, particle: true},
		{code: 0, fake: true},
		{code: 2000000101, fake: true},
		{code: 1000060120, nucleus: true},
		{code: 123456, particle: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.fake, IsFake(tt.code), "IsFake(%d)", tt.code)
		assert.Equal(t, tt.nucleus, IsNucleus(tt.code), "IsNucleus(%d)", tt.code)
		assert.Equal(t, tt.particle, IsParticle(tt.code), "IsParticle(%d)", tt.code)
	}
}

func TestIonCodeDecoding(t *testing.T) {
	assert.Equal(t, 6, IonZ(1000060120))
	assert.Equal(t, 12, IonA(1000060120))
	assert.Equal(t, 18, IonZ(1000180400))
	assert.Equal(t, 40, IonA(1000180400))
}

func TestNamesAreNFC(t *testing.T) {
	for _, code := range []int{-12, -14, -2112} {
		name := Name(code)
		assert.True(t, norm.NFC.IsNormalString(name), "name for %d not NFC", code)
	}
}
