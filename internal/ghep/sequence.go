package ghep

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/roach88/ghep/internal/particle"
)

// Sequence is the ordered, append-only backing store of a record. It owns
// its entries: Append stores a copy and entries are only ever rearranged by
// content swaps.
type Sequence struct {
	entries []*particle.Particle
	logger  *slog.Logger
}

// NewSequence creates an empty sequence with room for capacity entries.
func NewSequence(logger *slog.Logger, capacity int) *Sequence {
	if logger == nil {
		logger = discardLogger()
	}
	return &Sequence{
		entries: make([]*particle.Particle, 0, capacity),
		logger:  logger,
	}
}

// Append stores a copy of p and returns its position.
func (s *Sequence) Append(p *particle.Particle) int {
	s.entries = append(s.entries, p.Clone())
	return len(s.entries) - 1
}

// At returns the entry at pos, or nil with a warning if pos is out of range.
func (s *Sequence) At(pos int) *particle.Particle {
	if !s.inRange(pos) {
		s.logger.Warn("no particle at position", "pos", pos, "entries", len(s.entries))
		return nil
	}
	return s.entries[pos]
}

// Len returns the number of entries.
func (s *Sequence) Len() int {
	return len(s.entries)
}

// ReplaceContent copies every field of p into the slot at pos. The slot keeps
// its position. Reports false (with a warning) if pos is out of range.
func (s *Sequence) ReplaceContent(pos int, p *particle.Particle) bool {
	if !s.inRange(pos) {
		s.logger.Warn("cannot replace particle: position out of range", "pos", pos, "entries", len(s.entries))
		return false
	}
	s.entries[pos].CopyFrom(p)
	return true
}

// FindFirst returns the first position >= start whose entry satisfies match,
// or -1. A negative start is treated as 0.
func (s *Sequence) FindFirst(match func(*particle.Particle) bool, start int) int {
	for i := max(start, 0); i < len(s.entries); i++ {
		if match(s.entries[i]) {
			return i
		}
	}
	return particle.NoIndex
}

// All iterates over the entries in sequence order.
func (s *Sequence) All() iter.Seq2[int, *particle.Particle] {
	return func(yield func(int, *particle.Particle) bool) {
		for i, p := range s.entries {
			if !yield(i, p) {
				return
			}
		}
	}
}

// swap exchanges the content of two slots. Callers that need mother links
// kept consistent use Compactor.SwapAndRepoint instead.
func (s *Sequence) swap(a, b int) {
	if !s.inRange(a) || !s.inRange(b) {
		panic(fmt.Sprintf("ghep: swap positions (%d, %d) out of range [0, %d)", a, b, len(s.entries)))
	}
	if a == b {
		return
	}
	s.entries[a].Swap(s.entries[b])
}

func (s *Sequence) reset() {
	clear(s.entries)
	s.entries = s.entries[:0]
}

func (s *Sequence) inRange(pos int) bool {
	return pos >= 0 && pos < len(s.entries)
}
