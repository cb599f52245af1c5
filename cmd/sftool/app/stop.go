package app

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hanbit-ml/sftool/internal/config"
	"github.com/hanbit-ml/sftool/internal/runtime"
)

// StopOptions holds options for the stop command
type StopOptions struct {
	*GlobalOptions

	// Name is the container to stop
	Name string
}

// NewStopCommand creates the stop command.
//
// The stop command gracefully stops the serving container. The container is
// preserved so it can be inspected or removed with 'sftool rm'.
func NewStopCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &StopOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "stop [CONTAINER]",
		Short: "Stop the serving container",
		Long: `Stop the serving container gracefully.

Without an argument, the container name is resolved from CONTAINER_NAME
(environment or .env file), defaulting to "` + config.DefaultContainerName + `".
The stopped container is kept; remove it with 'sftool rm'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Name = args[0]
			}
			return runStop(opts)
		},
	}

	return cmd
}

// runStop executes the stop command logic
func runStop(opts *StopOptions) error {
	name := opts.Name
	if name == "" {
		config.LoadEnvFile()
		name = config.ContainerNameFromEnv()
	}

	launcher, err := runtime.NewLauncher()
	if err != nil {
		return err
	}

	if err := launcher.Stop(context.Background(), name); err != nil {
		return err
	}

	fmt.Printf("Stopped container: %s\n", name)

	return nil
}
