package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/state/internal/model"
	"github.com/roach88/state/internal/store"
	"github.com/roach88/state/internal/value"
)

// DomainContentHash is the hash domain for record content digests.
const DomainContentHash = "state/content/v1"

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	Format string
}

// InspectResult summarizes a record file.
type InspectResult struct {
	Path    string   `json:"path"`
	Format  string   `json:"format"`
	Kind    string   `json:"kind"`
	Count   int      `json:"count"`
	Keys    []string `json:"keys,omitempty"`
	Version string   `json:"version,omitempty"`
	Hash    string   `json:"hash,omitempty"`
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Summarize a record file",
		Long: `Print the root kind, entry count, keys and version tag of a record file.

The content hash is the SHA-256 of the canonical JSON of the root value. It
is omitted for graphs canonical JSON cannot carry, such as ones holding bytes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", "", "input format (default: inferred from extension)")

	return cmd
}

func runInspect(rootOpts *RootOptions, opts *InspectOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(rootOpts, cmd)

	v, f, err := loadInput(formatter, path, opts.Format)
	if err != nil {
		return err
	}

	result := Inspect(v)
	result.Path = path
	result.Format = f.Name()

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "%s (%s)\n", result.Path, result.Format)
	fmt.Fprintf(w, "  kind:    %s\n", result.Kind)
	fmt.Fprintf(w, "  count:   %d\n", result.Count)
	if len(result.Keys) > 0 {
		fmt.Fprintf(w, "  keys:    %s\n", strings.Join(result.Keys, ", "))
	}
	if result.Version != "" {
		fmt.Fprintf(w, "  version: %s\n", result.Version)
	}
	if result.Hash != "" {
		fmt.Fprintf(w, "  hash:    %s\n", result.Hash)
	}
	return nil
}

// Inspect summarizes v. Path and Format are left for the caller.
func Inspect(v value.Value) InspectResult {
	result := InspectResult{Kind: value.KindOf(v).String()}

	switch val := v.(type) {
	case value.Array:
		result.Count = len(val)
	case value.Dict:
		result.Count = len(val)
	case value.Object:
		s := store.Wrap(val)
		result.Count = s.Len()
		result.Keys = s.Keys()
		if tag, ok := model.VersionOf(s); ok {
			result.Version = tag
		}
	default:
		result.Count = 1
	}

	if hash, err := value.HashValue(DomainContentHash, v); err == nil {
		result.Hash = hash
	}
	return result
}
