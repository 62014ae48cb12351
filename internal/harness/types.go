package harness

import (
	"github.com/roach88/ghep/internal/digest"
	"github.com/roach88/ghep/internal/ghep"
)

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every assertion held.
	Pass bool `json:"pass"`

	// Errors contains one message per failed assertion.
	Errors []string `json:"errors,omitempty"`

	// Compactions is the number of full compactions the record ran.
	Compactions int `json:"compactions"`

	// Digest is the content digest of the final record.
	Digest string `json:"digest"`

	// Snapshot is the plain-data view of the final record.
	Snapshot digest.Snapshot `json:"snapshot"`

	// Record is the final record itself.
	Record *ghep.Record `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
