package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/ghep/internal/digest"
	"github.com/roach88/ghep/internal/harness"
	"github.com/roach88/ghep/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string

	// IDGenerator allows overriding the event ID generator (for testing).
	// If nil, defaults to store.UUIDv7Generator.
	IDGenerator store.IDGenerator

	// SeqSource allows overriding the seq numbering (for testing).
	// If nil, numbering resumes after the highest stored seq.
	SeqSource store.SeqSource
}

// RunOutput is the JSON payload of the run command.
type RunOutput struct {
	Scenario    string          `json:"scenario"`
	Pass        bool            `json:"pass"`
	Errors      []string        `json:"errors,omitempty"`
	Compactions int             `json:"compactions"`
	Digest      string          `json:"digest"`
	EventID     string          `json:"event_id,omitempty"`
	Inserted    bool            `json:"inserted,omitempty"`
	Snapshot    digest.Snapshot `json:"snapshot"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}
	return newRunCommand(opts)
}

func newRunCommand(opts *RunOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <scenario>",
		Short: "Build a record from a scenario",
		Long: `Build a GHEP record by appending the particles of a scenario file,
then evaluate its assertions and print the record.

With --db the record is stored under a new UUIDv7 event ID. Storing the
same content twice keeps the first event.

Example:
  ghep run testdata/scenarios/res_cc_delta.yaml
  ghep run --db ./events.db --format json qel.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database to store the record in")

	return cmd
}

func runScenarioFile(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	formatter.VerboseLog("loading scenario %s", path)
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return reportLoadError(formatter, path, err)
	}

	result, err := harness.Run(scenario, harness.WithLogger(logger))
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	out := RunOutput{
		Scenario:    scenario.Name,
		Pass:        result.Pass,
		Errors:      result.Errors,
		Compactions: result.Compactions,
		Digest:      result.Digest,
		Snapshot:    result.Snapshot,
	}

	if opts.Database != "" {
		id, inserted, err := storeResult(commandContext(cmd), opts, result, logger)
		if err != nil {
			_ = formatter.Error(ErrCodeStore, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to store record", err)
		}
		out.EventID = id
		out.Inserted = inserted
	}

	if opts.Format == "json" {
		if err := formatter.Success(out); err != nil {
			return err
		}
	} else {
		writeRunText(cmd, out, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("%d assertion(s) failed", len(result.Errors)))
	}
	return nil
}

func storeResult(ctx context.Context, opts *RunOptions, result *harness.Result, logger *slog.Logger) (string, bool, error) {
	st, err := store.Open(opts.Database)
	if err != nil {
		return "", false, err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	clock := opts.SeqSource
	if clock == nil {
		next, err := st.NextSeq(ctx)
		if err != nil {
			return "", false, err
		}
		clock = store.NewClockAt(next - 1)
	}
	seq := clock.Next()

	gen := opts.IDGenerator
	if gen == nil {
		gen = store.UUIDv7Generator{}
	}
	id, inserted, err := st.WriteRecord(ctx, gen.Generate(), seq, result.Record)
	if err != nil {
		return "", false, err
	}
	logger.Info("stored record", "event_id", id, "seq", seq, "inserted", inserted)
	return id, inserted, nil
}

func writeRunText(cmd *cobra.Command, out RunOutput, result *harness.Result) {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Scenario: %s\n", out.Scenario)
	_ = result.Record.Print(w)
	fmt.Fprintf(w, "Compactions: %d\n", out.Compactions)
	fmt.Fprintf(w, "Digest: %s\n", out.Digest)
	if out.EventID != "" {
		if out.Inserted {
			fmt.Fprintf(w, "Stored as event %s\n", out.EventID)
		} else {
			fmt.Fprintf(w, "Already stored as event %s\n", out.EventID)
		}
	}
	if out.Pass {
		fmt.Fprintln(w, "✓ All assertions passed")
		return
	}
	fmt.Fprintf(w, "✗ %d assertion(s) failed\n", len(out.Errors))
	for _, e := range out.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

// reportLoadError prints a scenario load failure and maps it to an exit
// error. Schema violations carry their CUE details.
func reportLoadError(formatter *OutputFormatter, path string, err error) error {
	var schemaErr *harness.SchemaError
	if errors.As(err, &schemaErr) {
		_ = formatter.Error(ErrCodeSchema, "scenario violates schema: "+path, schemaErr.Details)
		return WrapExitError(ExitCommandError, "invalid scenario", err)
	}
	_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
	return WrapExitError(ExitCommandError, "failed to load scenario", err)
}
