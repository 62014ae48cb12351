package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/ghep/internal/ghep"
)

const defaultTolerance = 1e-6

// AssertionError is returned when an assertion fails.
// It includes the rendered record to help debug the failure.
type AssertionError struct {
	Index    int    // Position of the assertion in the scenario
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
	Record   string // Rendered record for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion %d failed: %s\n", e.Index, e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	if e.Record != "" {
		fmt.Fprintf(&buf, "\nRecord:%s", e.Record)
	}
	return buf.String()
}

func fail(rec *ghep.Record, i int, a Assertion, expected, actual string) error {
	return &AssertionError{
		Index:    i,
		Type:     a.Type,
		Expected: expected,
		Actual:   actual,
		Record:   rec.String(),
	}
}

func assertDaughters(rec *ghep.Record, i int, a Assertion) error {
	expected := fmt.Sprintf("entry %d daughters [%d, %d]", a.Pos, a.First, a.Last)
	p := rec.Particle(a.Pos)
	if p == nil {
		return fail(rec, i, a, expected, fmt.Sprintf("no entry at %d (record has %d)", a.Pos, rec.Len()))
	}
	if p.FirstDaughter != a.First || p.LastDaughter != a.Last {
		return fail(rec, i, a, expected, fmt.Sprintf("daughters [%d, %d]", p.FirstDaughter, p.LastDaughter))
	}
	return nil
}

func assertCompactions(rec *ghep.Record, i int, a Assertion) error {
	if got := rec.Compactions(); got != a.Count {
		return fail(rec, i, a, fmt.Sprintf("%d compactions", a.Count), fmt.Sprintf("%d compactions", got))
	}
	return nil
}

func assertParticleAt(rec *ghep.Record, i int, a Assertion) error {
	expected := fmt.Sprintf("entry %d has pdg %d", a.Pos, a.PDG)
	if a.Status != nil {
		expected += fmt.Sprintf(" and status %s", a.Status)
	}
	p := rec.Particle(a.Pos)
	if p == nil {
		return fail(rec, i, a, expected, fmt.Sprintf("no entry at %d (record has %d)", a.Pos, rec.Len()))
	}
	if p.PDG != a.PDG || (a.Status != nil && p.Status != *a.Status) {
		return fail(rec, i, a, expected, fmt.Sprintf("pdg %d status %s", p.PDG, p.Status))
	}
	return nil
}

func assertUnphysical(rec *ghep.Record, i int, a Assertion) error {
	if got := rec.IsUnphysical(); got != a.Value {
		return fail(rec, i, a, fmt.Sprintf("unphysical=%t", a.Value), fmt.Sprintf("unphysical=%t", got))
	}
	return nil
}

func assertBalance(rec *ghep.Record, i int, a Assertion) error {
	tol := a.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}
	want := vec4(a.P4)
	got := rec.Balance()
	diffs := []float64{got.X - want.X, got.Y - want.Y, got.Z - want.Z, got.T - want.T}
	for _, d := range diffs {
		if math.IsNaN(d) || math.Abs(d) > tol {
			return fail(rec, i, a,
				fmt.Sprintf("balance %s within %g", want, tol),
				fmt.Sprintf("balance %s", got))
		}
	}
	return nil
}

func assertGenealogy(rec *ghep.Record, i int, a Assertion) error {
	if err := rec.CheckGenealogy(); err != nil {
		return fail(rec, i, a, "every daughter range matches the mother links", err.Error())
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against rec.
// Returns one error message per failed assertion.
func EvaluateAssertions(rec *ghep.Record, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertDaughters:
			err = assertDaughters(rec, i, assertion)
		case AssertCompactions:
			err = assertCompactions(rec, i, assertion)
		case AssertParticleAt:
			err = assertParticleAt(rec, i, assertion)
		case AssertUnphysical:
			err = assertUnphysical(rec, i, assertion)
		case AssertBalance:
			err = assertBalance(rec, i, assertion)
		case AssertGenealogy:
			err = assertGenealogy(rec, i, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
