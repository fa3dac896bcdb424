package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/roach88/state/internal/format"
)

// Version is the CLI version, set at build time with
// -ldflags "-X github.com/roach88/state/internal/cli.Version=...".
var Version = "dev"

// VersionInfo is the version command payload.
type VersionInfo struct {
	Version   string   `json:"version"`
	GoVersion string   `json:"go_version"`
	Formats   []string `json:"formats"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the version and supported formats",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)
			info := VersionInfo{
				Version:   Version,
				GoVersion: runtime.Version(),
				Formats:   format.Names(),
			}
			if formatter.Format == "json" {
				return formatter.Success(info)
			}
			fmt.Fprintf(formatter.Writer, "state %s (%s)\n", info.Version, info.GoVersion)
			for _, name := range info.Formats {
				fmt.Fprintf(formatter.Writer, "  %s\n", name)
			}
			return nil
		},
	}
}
