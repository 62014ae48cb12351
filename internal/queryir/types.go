package queryir

// Query represents an abstract query.
//
// This is a sealed interface - only types in this package implement it.
// The marker method pattern prevents external implementations and enables
// exhaustive type switches in backend compilers.
//
// Query types:
//   - Select: the entries matching a filter
//   - Events: the events holding a matching entry for every predicate
type Query interface {
	queryNode() // Marker method - seals interface to this package
}

// Predicate represents a condition on one entry.
//
// This is a sealed interface - only types in this package implement it.
//
// Predicate types:
//   - Equals: integer field = value
//   - AtLeast: field >= value
//   - AtMost: field <= value
//   - And: all predicates must be true
//
// There is no OR; use one query per alternative.
type Predicate interface {
	predicateNode() // Marker method - seals interface to this package
}

// Select picks every entry matching Filter. A nil Filter matches all.
//
// Translates to SQL:
//
//	SELECT event_id, pos FROM particles WHERE <filter>
//	ORDER BY event_id, pos
type Select struct {
	Filter Predicate
}

func (Select) queryNode() {}

// Events picks the events that, for every predicate in Having, hold at least
// one entry matching it. Different predicates may be satisfied by different
// entries, so
//
//	Events{Having: []Predicate{
//	  Equals{Field: FieldPDG, Value: 13},
//	  Equals{Field: FieldPDG, Value: 211},
//	}}
//
// finds events containing both a muon and a π+.
type Events struct {
	Having []Predicate
}

func (Events) queryNode() {}

// Equals compares an integer field with a literal.
//
//	Equals{Field: FieldStatus, Value: int(particle.StatusStableFinalState)}
//
// Translates to SQL:
//
//	status = ?
type Equals struct {
	Field Field
	Value int
}

func (Equals) predicateNode() {}

// AtLeast is true when the field is >= Value. Integer fields compare as
// float64.
type AtLeast struct {
	Field Field
	Value float64
}

func (AtLeast) predicateNode() {}

// AtMost is true when the field is <= Value.
type AtMost struct {
	Field Field
	Value float64
}

func (AtMost) predicateNode() {}

// And represents a conjunction of predicates on the same entry. Empty
// Predicates is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}
