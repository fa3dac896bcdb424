package cli

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/roach88/state/internal/format"
	"github.com/roach88/state/internal/value"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	From    string
	To      string
	Compact bool
}

// ConvertResult describes a finished conversion.
type ConvertResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	From   string `json:"from"`
	To     string `json:"to"`
	Kind   string `json:"kind"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert <input> <output>",
		Short: "Convert a record file between formats",
		Long: `Read a record file in one format and write it in another.

Formats are inferred from file extensions unless --from or --to is given.
An output of "-" writes the encoded document to stdout. The output file is
replaced atomically, so a failed conversion leaves it untouched.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.From, "from", "", "input format (default: inferred from extension)")
	cmd.Flags().StringVar(&opts.To, "to", "", "output format (default: inferred from extension)")
	cmd.Flags().BoolVar(&opts.Compact, "compact", false, "write without pretty layout")

	return cmd
}

func runConvert(rootOpts *RootOptions, opts *ConvertOptions, input, output string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	v, from, err := loadInput(formatter, input, opts.From)
	if err != nil {
		return err
	}

	to, ok := resolveFormat(opts.To, output)
	if !ok {
		return formatter.Fail(ExitCommandError, ErrCodeUnknownFormat,
			unknownFormatMessage(opts.To, output), map[string]any{"formats": format.Names()})
	}

	if output == "-" {
		data, err := to.Encode(v, !opts.Compact)
		if err != nil {
			return formatter.Fail(ExitFailure, ErrCodeUnrepresentable,
				fmt.Sprintf("encoding as %s: %v", to.Name(), err), nil)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	formatter.VerboseLog("Writing %s as %s", output, to.Name())
	save := format.Save
	if opts.Compact {
		save = format.SaveCompact
	}
	if err := save(to, v, output); err != nil {
		if errors.Is(err, format.ErrUnrepresentable) {
			return formatter.Fail(ExitFailure, ErrCodeUnrepresentable,
				fmt.Sprintf("encoding as %s: %v", to.Name(), err), nil)
		}
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed,
			fmt.Sprintf("writing %s: %v", output, err), nil)
	}

	result := ConvertResult{
		Input:  input,
		Output: output,
		From:   from.Name(),
		To:     to.Name(),
		Kind:   value.KindOf(v).String(),
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Converted %s (%s) to %s (%s)\n", input, from.Name(), output, to.Name())
	return nil
}
