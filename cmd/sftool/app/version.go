package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Build information, set via -ldflags at release time.
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(globalOpts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("sftool %s\n", version)
			fmt.Printf("  Build Time: %s\n", buildTime)
			fmt.Printf("  Git Commit: %s\n", gitCommit)
			return nil
		},
	}

	return cmd
}
