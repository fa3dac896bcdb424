package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/roach88/state/internal/schema"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	Format string
	Schema string
	Path   string
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid      bool           `json:"valid"`
	Definition string         `json:"definition,omitempty"`
	Issues     []schema.Issue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a record file against a CUE schema",
		Long: `Validate a record file against a definition in a CUE schema.

The schema is a .cue file or a directory holding one CUE package. --path
selects the definition to check against, e.g. "#Employee"; without it the
record is unified with the whole schema.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "input format (default: inferred from extension)")
	cmd.Flags().StringVar(&opts.Schema, "schema", "", "CUE schema file or directory (required)")
	cmd.Flags().StringVar(&opts.Path, "path", "", "schema definition to validate against")
	_ = cmd.MarkFlagRequired("schema")

	return cmd
}

func runValidate(rootOpts *RootOptions, opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	s, err := schema.Load(opts.Schema)
	if err != nil {
		return schemaFailure(formatter, err)
	}
	formatter.VerboseLog("Loaded %d CUE file(s) from %s", s.FileCount(), opts.Schema)

	v, _, err := loadInput(formatter, path, opts.Format)
	if err != nil {
		return err
	}

	issues, err := s.Validate(v, opts.Path)
	if err != nil {
		return schemaFailure(formatter, err)
	}

	if len(issues) > 0 {
		return outputValidationIssues(formatter, opts.Path, issues)
	}
	return outputValidateSuccess(formatter, path, opts.Path)
}

// schemaFailure reports a schema load, lookup or encoding error.
func schemaFailure(formatter *OutputFormatter, err error) error {
	var schemaErr *schema.Error
	if errors.As(err, &schemaErr) {
		return formatter.Fail(ExitCommandError, ErrCodeSchema, schemaErr.Error(),
			map[string]string{"schema_code": schemaErr.Code})
	}
	return formatter.Fail(ExitCommandError, ErrCodeSchema, err.Error(), nil)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, path, definition string) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Definition: definition})
	}

	if definition == "" {
		fmt.Fprintf(formatter.Writer, "✓ %s is valid\n", path)
		return nil
	}
	fmt.Fprintf(formatter.Writer, "✓ %s is valid against %s\n", path, definition)
	return nil
}

// outputValidationIssues outputs every conflict between record and schema.
func outputValidationIssues(formatter *OutputFormatter, definition string, issues []schema.Issue) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:      false,
				Definition: definition,
				Issues:     issues,
			},
			Error: &CLIError{
				Code:    ErrCodeInvalid,
				Message: issues[0].String(),
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, issue := range issues {
		if issue.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "line %d\n", issue.Pos.Line())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", ErrCodeInvalid, issue)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d issue(s)", len(issues)))
}
