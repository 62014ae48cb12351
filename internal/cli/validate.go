package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/ghep/internal/harness"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid bool             `json:"valid"`
	Files []FileValidation `json:"files"`
}

// FileValidation is the validation outcome of one scenario file.
type FileValidation struct {
	Path   string `json:"path"`
	Name   string `json:"name,omitempty"`
	Valid  bool   `json:"valid"`
	Code   string `json:"code,omitempty"`
	Errors string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario>...",
		Short: "Check scenario files against the schema",
		Long: `Check scenario files against the embedded #Scenario schema without
building any record. Faster than run for editing feedback.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, paths []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result := ValidationResult{Valid: true, Files: make([]FileValidation, 0, len(paths))}
	for _, path := range paths {
		formatter.VerboseLog("validating %s", path)
		fv := validateFile(path)
		if !fv.Valid {
			result.Valid = false
		}
		result.Files = append(result.Files, fv)
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		for _, fv := range result.Files {
			if fv.Valid {
				fmt.Fprintf(w, "✓ %s (%s)\n", fv.Path, fv.Name)
				continue
			}
			fmt.Fprintf(w, "✗ %s [%s]\n", fv.Path, fv.Code)
			fmt.Fprintf(w, "  %s\n", fv.Errors)
		}
	}

	if !result.Valid {
		// Validation errors are command-level errors (exit code 2)
		return NewExitError(ExitCommandError, "one or more scenarios are invalid")
	}
	return nil
}

func validateFile(path string) FileValidation {
	scenario, err := harness.LoadScenario(path)
	if err == nil {
		return FileValidation{Path: path, Name: scenario.Name, Valid: true}
	}

	fv := FileValidation{Path: path, Code: ErrCodeLoadFailed, Errors: err.Error()}
	var schemaErr *harness.SchemaError
	if errors.As(err, &schemaErr) {
		fv.Code = ErrCodeSchema
		fv.Errors = schemaErr.Details
	}
	return fv
}
