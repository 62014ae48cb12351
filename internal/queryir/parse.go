package queryir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/ghep/internal/particle"
)

// ParsePredicate parses a comma-separated list of terms into a predicate on
// one entry. Each term is field=int, field>=number or field<=number. The
// status field also accepts a status name:
//
//	pdg=211,status=stable_final_state,e>=0.3
//
// A single term yields that predicate; several yield an And.
func ParsePredicate(text string) (Predicate, error) {
	var preds []Predicate
	for term := range strings.SplitSeq(text, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		pred, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		preds = append(preds, pred)
	}

	switch len(preds) {
	case 0:
		return nil, fmt.Errorf("empty predicate %q", text)
	case 1:
		return preds[0], nil
	default:
		return And{Predicates: preds}, nil
	}
}

func parseTerm(term string) (Predicate, error) {
	for _, op := range []string{">=", "<="} {
		name, raw, ok := strings.Cut(term, op)
		if !ok {
			continue
		}
		field := Field(strings.TrimSpace(name))
		if !field.IsKnown() {
			return nil, fmt.Errorf("term %q: unknown field %q", term, field)
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", term, err)
		}
		if op == ">=" {
			return AtLeast{Field: field, Value: value}, nil
		}
		return AtMost{Field: field, Value: value}, nil
	}

	name, raw, ok := strings.Cut(term, "=")
	if !ok {
		return nil, fmt.Errorf("term %q: expected field=value, field>=value or field<=value", term)
	}
	field := Field(strings.TrimSpace(name))
	raw = strings.TrimSpace(raw)
	if !field.IsInt() {
		return nil, fmt.Errorf("term %q: %q is not an integer field", term, field)
	}
	if field == FieldStatus {
		status, err := particle.ParseStatus(raw)
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", term, err)
		}
		return Equals{Field: field, Value: int(status)}, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("term %q: %w", term, err)
	}
	return Equals{Field: field, Value: value}, nil
}
