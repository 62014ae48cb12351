package queryir

import (
	"math"

	"github.com/roach88/ghep/internal/ghep"
	"github.com/roach88/ghep/internal/particle"
)

var nan = math.NaN()

// Match evaluates pred against one entry. A nil predicate matches.
func Match(pred Predicate, p *particle.Particle) bool {
	switch pr := pred.(type) {
	case nil:
		return true
	case Equals:
		get, ok := intFields[pr.Field]
		return ok && get(p) == pr.Value
	case *Equals:
		return Match(*pr, p)
	case AtLeast:
		return pr.Field.value(p) >= pr.Value
	case *AtLeast:
		return Match(*pr, p)
	case AtMost:
		return pr.Field.value(p) <= pr.Value
	case *AtMost:
		return Match(*pr, p)
	case And:
		for _, sub := range pr.Predicates {
			if !Match(sub, p) {
				return false
			}
		}
		return true
	case *And:
		return Match(*pr, p)
	default:
		return false
	}
}

// SelectRecord returns the positions of the entries of rec matching sel, in
// record order.
func SelectRecord(rec *ghep.Record, sel Select) []int {
	var positions []int
	for pos, p := range rec.All() {
		if Match(sel.Filter, p) {
			positions = append(positions, pos)
		}
	}
	return positions
}

// EventMatches reports whether rec satisfies q: every predicate of q.Having
// is matched by at least one entry.
func EventMatches(rec *ghep.Record, q Events) bool {
	for _, pred := range q.Having {
		found := false
		for _, p := range rec.All() {
			if Match(pred, p) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
