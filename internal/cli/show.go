package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/ghep/internal/digest"
	"github.com/roach88/ghep/internal/ghep"
	"github.com/roach88/ghep/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	Database string
	EventID  string
}

// ShowOutput is the JSON payload of the show command.
type ShowOutput struct {
	EventID  string          `json:"event_id"`
	Digest   string          `json:"digest"`
	Snapshot digest.Snapshot `json:"snapshot"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print a stored record",
		Long: `Load a record stored by "ghep run --db" and print it.

Example:
  ghep show --db ./events.db --event 0190a1b2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.EventID, "event", "", "event ID to show (required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	st, err := openExisting(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.Error("error closing database", "error", closeErr)
		}
	}()

	rec, err := st.ReadRecord(commandContext(cmd), opts.EventID, ghep.WithLogger(logger))
	if errors.Is(err, store.ErrNotFound) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("event %q not found", opts.EventID), nil)
		return WrapExitError(ExitCommandError, "event not found", err)
	}
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to read record", err)
	}

	snapshot, err := digest.Take(rec)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to snapshot record", err)
	}
	sum, err := snapshot.Digest()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to digest record", err)
	}

	if opts.Format == "json" {
		return formatter.Success(ShowOutput{EventID: opts.EventID, Digest: sum, Snapshot: snapshot})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Event: %s\n", opts.EventID)
	if err := rec.Print(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "Digest: %s\n", sum)
	return nil
}

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List stored records in write order",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := openExisting(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	events, err := st.ListEvents(commandContext(cmd))
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list events", err)
	}

	if opts.Format == "json" {
		return formatter.Success(events)
	}

	if len(events) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No events stored.")
		return nil
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tID\tPARTICLES\tSUMMARY\tUNPHYSICAL")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%t\n", e.Seq, e.ID, e.Particles, e.Summary, e.Unphysical)
	}
	return tw.Flush()
}

// openExisting opens a database that must already exist; show and list never
// create one.
func openExisting(formatter *OutputFormatter, path string) (*store.Store, error) {
	if !fileExists(path) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("database not found: %s", path), nil)
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
	}
	st, err := store.Open(path)
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
