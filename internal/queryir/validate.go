package queryir

import (
	"fmt"
	"math"
)

// ValidationResult lists the problems found in a query.
type ValidationResult struct {
	// Valid is true when Errors is empty.
	Valid bool

	// Errors lists one message per problem, in traversal order.
	Errors []string
}

// Err returns the problems as a single error, or nil when the query is valid.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("invalid query: %v", r.Errors)
}

// Validate checks that a query only references known fields with matching
// kinds and has nothing that a backend could not evaluate:
//  1. Fields must name entry attributes
//  2. Equals only applies to integer fields
//  3. Bounds must be finite numbers
//  4. Events needs at least one predicate
//
// Backends compile only validated queries, since field names end up in SQL
// text.
//
// Validate is a pure function with no side effects.
func Validate(query Query) ValidationResult {
	v := &validator{errors: []string{}}
	v.validateQuery(query)

	return ValidationResult{
		Valid:  len(v.errors) == 0,
		Errors: v.errors,
	}
}

type validator struct {
	errors []string
}

func (v *validator) addError(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case nil:
		v.addError("nil query")
	case Select:
		v.validatePredicate(query.Filter)
	case *Select:
		v.validatePredicate(query.Filter)
	case Events:
		v.validateEvents(query)
	case *Events:
		v.validateEvents(*query)
	default:
		v.addError("unknown query type: %T", q)
	}
}

func (v *validator) validateEvents(q Events) {
	if len(q.Having) == 0 {
		v.addError("events query needs at least one predicate")
	}
	for i, pred := range q.Having {
		if pred == nil {
			v.addError("having[%d]: nil predicate", i)
			continue
		}
		v.validatePredicate(pred)
	}
}

// validatePredicate recursively validates a predicate node. nil means no
// filter.
func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case nil:
	case Equals:
		v.validateEquals(pred)
	case *Equals:
		v.validateEquals(*pred)
	case AtLeast:
		v.validateBound(pred.Field, pred.Value)
	case *AtLeast:
		v.validateBound(pred.Field, pred.Value)
	case AtMost:
		v.validateBound(pred.Field, pred.Value)
	case *AtMost:
		v.validateBound(pred.Field, pred.Value)
	case And:
		v.validateAnd(pred)
	case *And:
		v.validateAnd(*pred)
	default:
		v.addError("unknown predicate type: %T", p)
	}
}

func (v *validator) validateEquals(eq Equals) {
	if !eq.Field.IsKnown() {
		v.addError("unknown field %q", eq.Field)
		return
	}
	if !eq.Field.IsInt() {
		v.addError("field %q is not an integer field; use a bound", eq.Field)
	}
}

func (v *validator) validateBound(f Field, value float64) {
	if !f.IsKnown() {
		v.addError("unknown field %q", f)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		v.addError("field %q: bound must be finite", f)
	}
}

func (v *validator) validateAnd(and And) {
	for _, sub := range and.Predicates {
		v.validatePredicate(sub)
	}
}
