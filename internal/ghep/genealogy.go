package ghep

import (
	"errors"
	"fmt"

	"github.com/roach88/ghep/internal/particle"
)

// GenealogyError describes an entry whose daughter range disagrees with the
// mother links of the record.
type GenealogyError struct {
	Pos     int
	First   int
	Last    int
	Message string
}

func (e *GenealogyError) Error() string {
	return fmt.Sprintf("entry %d daughters [%d, %d]: %s", e.Pos, e.First, e.Last, e.Message)
}

// CheckGenealogy verifies that every daughter range is exactly the set of
// entries naming its owner as first mother. Entries whose mother has no
// range yet (forward references) are not errors. All violations are joined.
func (r *Record) CheckGenealogy() error {
	var errs []error
	entries := r.seq.entries
	n := len(entries)

	for i, p := range entries {
		if !p.HasDaughters() {
			continue
		}
		first, last := p.FirstDaughter, p.LastDaughter
		if first < 0 || last < first || last >= n {
			errs = append(errs, &GenealogyError{Pos: i, First: first, Last: last, Message: "malformed range"})
			continue
		}
		for k := first; k <= last; k++ {
			if entries[k].FirstMother != i {
				errs = append(errs, &GenealogyError{Pos: i, First: first, Last: last,
					Message: fmt.Sprintf("entry %d in range has mother %d", k, entries[k].FirstMother)})
			}
		}
	}

	for k, p := range entries {
		m := p.FirstMother
		if m < 0 || m >= n {
			continue
		}
		mom := entries[m]
		if !mom.HasDaughters() || k < mom.FirstDaughter || k > mom.LastDaughter {
			errs = append(errs, &GenealogyError{Pos: m, First: mom.FirstDaughter, Last: mom.LastDaughter,
				Message: fmt.Sprintf("daughter %d lies outside the range", k)})
		}
	}
	return errors.Join(errs...)
}

// Daughters returns the positions in the daughter range of the entry at pos,
// or nil if it has none or pos is out of range.
func (r *Record) Daughters(pos int) []int {
	p := r.seq.At(pos)
	if p == nil || !p.HasDaughters() {
		return nil
	}
	out := make([]int, 0, p.LastDaughter-p.FirstDaughter+1)
	for k := p.FirstDaughter; k <= p.LastDaughter; k++ {
		out = append(out, k)
	}
	return out
}

// Mother returns the first mother of the entry at pos, or nil.
func (r *Record) Mother(pos int) *particle.Particle {
	p := r.seq.At(pos)
	if p == nil || !p.HasMother() {
		return nil
	}
	return r.seq.At(p.FirstMother)
}
