package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/ghep/internal/digest"
	"github.com/roach88/ghep/internal/ghep"
	"github.com/roach88/ghep/internal/particle"
)

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
}

// WithLogger routes harness and record diagnostics to logger. Runs are
// silent by default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runConfig) {
		c.logger = logger
	}
}

// Run validates scenario, builds its record and evaluates its assertions.
//
// Execution order:
//  1. Validate against #Scenario
//  2. Attach the summary label
//  3. Append every particle step
//  4. Apply the vertex shift
//  5. Switch on the flags
//  6. Snapshot, digest and evaluate assertions
//
// A returned error means the scenario could not run; failed assertions are
// reported in the Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.logger.With("scenario", scenario.Name)

	if err := Validate(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	rec := ghep.NewRecord(ghep.WithLogger(logger), ghep.WithCapacity(len(scenario.Particles)))
	if scenario.Summary != "" {
		rec.AttachSummary(ghep.Label(scenario.Summary))
	}

	for i, step := range scenario.Particles {
		rec.Add(step.PDG, step.Status,
			positionOrNone(step.Mother), positionOrNone(step.Mother2),
			particle.NoIndex, particle.NoIndex,
			vec4(step.P4), vec4(step.X4))
		logger.Debug("particle step appended", "step", i, "pdg", step.PDG, "entries", rec.Len())
	}

	if len(scenario.ShiftVertex) > 0 {
		rec.ShiftVertex(vec4(scenario.ShiftVertex))
	}
	if scenario.Flags.PauliBlocked {
		rec.SetPauliBlocked(true)
	}
	if scenario.Flags.BelowThrNRF {
		rec.SetBelowThrNRF(true)
	}
	if scenario.Flags.GenericErr {
		rec.SetGenericErr(true)
	}

	snap, err := digest.Take(rec)
	if err != nil {
		return nil, fmt.Errorf("snapshot record: %w", err)
	}
	sum, err := snap.Digest()
	if err != nil {
		return nil, fmt.Errorf("snapshot record: %w", err)
	}

	result := NewResult()
	result.Record = rec
	result.Snapshot = snap
	result.Digest = sum
	result.Compactions = rec.Compactions()

	for _, msg := range EvaluateAssertions(rec, scenario.Assertions) {
		result.AddError(msg)
	}

	logger.Info("scenario completed",
		"entries", rec.Len(),
		"compactions", result.Compactions,
		"pass", result.Pass,
	)
	return result, nil
}

func positionOrNone(p *int) int {
	if p == nil {
		return particle.NoIndex
	}
	return *p
}

// vec4 converts a schema-checked 4-vector. Missing vectors are zero.
func vec4(v []float64) particle.LorentzVector {
	if len(v) != 4 {
		return particle.LorentzVector{}
	}
	return particle.Vec4(v[0], v[1], v[2], v[3])
}
