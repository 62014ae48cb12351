package ghep

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/ghep/internal/particle"
)

func TestSequence_AppendAndAt(t *testing.T) {
	s := NewSequence(nil, 2)
	p := particle.New(11, particle.StatusStableFinalState, -1, -1, -1, -1, particle.LorentzVector{}, particle.LorentzVector{})

	assert.Equal(t, 0, s.Append(p))
	assert.Equal(t, 1, s.Append(p))
	assert.Equal(t, 2, s.Len())
	assert.NotSame(t, p, s.At(0))
	assert.Nil(t, s.At(2))
}

func TestSequence_ReplaceContentKeepsSlot(t *testing.T) {
	s := NewSequence(nil, 0)
	s.Append(particle.New(11, particle.StatusStableFinalState, -1, -1, -1, -1, particle.LorentzVector{}, particle.LorentzVector{}))
	slot := s.At(0)

	repl := particle.New(13, particle.StatusDecayedState, 0, -1, -1, -1, particle.Vec4(1, 1, 1, 1), particle.LorentzVector{})
	assert.True(t, s.ReplaceContent(0, repl))
	assert.Same(t, slot, s.At(0))
	assert.Equal(t, 13, s.At(0).PDG)
	assert.False(t, s.ReplaceContent(3, repl))
}

func TestSequence_FindFirst(t *testing.T) {
	s := NewSequence(nil, 0)
	for _, code := range []int{11, 13, 11, 22} {
		s.Append(particle.New(code, particle.StatusStableFinalState, -1, -1, -1, -1, particle.LorentzVector{}, particle.LorentzVector{}))
	}
	isElectron := func(p *particle.Particle) bool { return p.PDG == 11 }

	assert.Equal(t, 0, s.FindFirst(isElectron, 0))
	assert.Equal(t, 2, s.FindFirst(isElectron, 1))
	assert.Equal(t, 0, s.FindFirst(isElectron, -3))
	assert.Equal(t, -1, s.FindFirst(isElectron, 3))
	assert.Equal(t, -1, s.FindFirst(isElectron, 10))
}

func TestSequence_AllStopsEarly(t *testing.T) {
	s := NewSequence(nil, 0)
	for i := 0; i < 5; i++ {
		s.Append(particle.New(22, particle.StatusStableFinalState, -1, -1, -1, -1, particle.LorentzVector{}, particle.LorentzVector{}))
	}
	seen := 0
	for i := range s.All() {
		seen++
		if i == 2 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}
