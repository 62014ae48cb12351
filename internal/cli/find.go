package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ghep/internal/queryir"
	"github.com/roach88/ghep/internal/store"
)

// FindOptions holds flags for the find command.
type FindOptions struct {
	*RootOptions
	Database  string
	Having    []string
	Particles bool
}

// FindOutput is the JSON payload of the find command. Exactly one of Events
// and Particles is set.
type FindOutput struct {
	Events    []string            `json:"events,omitempty"`
	Particles []store.ParticleRef `json:"particles,omitempty"`
}

// NewFindCommand creates the find command.
func NewFindCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FindOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Search stored records",
		Long: `Search stored records by entry attributes.

Each --has takes comma-separated terms on one entry: field=int, field>=number
or field<=number. Fields are pdg, status, mother1, mother2, daughter1,
daughter2, px, py, pz, e, x, y, z and t; status also takes a name.

Events are listed when they hold a matching entry for every --has. With
--particles the matching entries themselves are listed instead, which takes
exactly one --has.

Examples:
  ghep find --db ./events.db --has pdg=13 --has "pdg=211,e>=0.3"
  ghep find --db ./events.db --particles --has status=stable_final_state`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringArrayVar(&opts.Having, "has", nil, "entry predicate (repeatable)")
	cmd.Flags().BoolVar(&opts.Particles, "particles", false, "list matching entries instead of events")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("has")

	return cmd
}

func runFind(opts *FindOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	preds := make([]queryir.Predicate, 0, len(opts.Having))
	for _, text := range opts.Having {
		pred, err := queryir.ParsePredicate(text)
		if err != nil {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid --has", err)
		}
		preds = append(preds, pred)
	}
	if opts.Particles && len(preds) != 1 {
		return NewExitError(ExitCommandError, "--particles takes exactly one --has")
	}

	st, err := openExisting(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := commandContext(cmd)
	var out FindOutput
	if opts.Particles {
		out.Particles, err = st.SelectParticles(ctx, queryir.Select{Filter: preds[0]})
	} else {
		out.Events, err = st.FindEvents(ctx, queryir.Events{Having: preds})
	}
	if err != nil {
		_ = formatter.Error(ErrCodeStore, err.Error(), nil)
		return WrapExitError(ExitCommandError, "search failed", err)
	}

	if opts.Format == "json" {
		return formatter.Success(out)
	}

	w := cmd.OutOrStdout()
	switch {
	case opts.Particles && len(out.Particles) == 0, !opts.Particles && len(out.Events) == 0:
		fmt.Fprintln(w, "No matches.")
	case opts.Particles:
		for _, ref := range out.Particles {
			fmt.Fprintf(w, "%s\t%d\n", ref.EventID, ref.Pos)
		}
	default:
		for _, id := range out.Events {
			fmt.Fprintln(w, id)
		}
	}
	return nil
}
