package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanbit-ml/sftool/internal/config"
	"github.com/hanbit-ml/sftool/internal/runtime"
)

// RmOptions holds options for the rm command
type RmOptions struct {
	*GlobalOptions

	// Name is the container to remove
	Name string
}

// NewRmCommand creates the rm command.
//
// The rm command force-removes the serving container, freeing its name for
// the next 'sftool serve'. The HuggingFace cache mount survives removal.
func NewRmCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &RmOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "rm [CONTAINER]",
		Short: "Remove the serving container",
		Long: `Remove the serving container, stopping it first if needed.

Without an argument, the container name is resolved from CONTAINER_NAME
(environment or .env file), defaulting to "` + config.DefaultContainerName + `".
Downloaded model weights are kept: they live in the host cache directory,
not in the container.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Name = args[0]
			}
			return runRm(opts)
		},
	}

	return cmd
}

// runRm executes the rm command logic
func runRm(opts *RmOptions) error {
	name := opts.Name
	if name == "" {
		config.LoadEnvFile()
		name = config.ContainerNameFromEnv()
	}

	launcher, err := runtime.NewLauncher()
	if err != nil {
		return err
	}

	if err := launcher.Remove(context.Background(), name); err != nil {
		return err
	}

	fmt.Printf("Removed container: %s\n", name)

	return nil
}
