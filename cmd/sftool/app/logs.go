package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/docker/docker/pkg/stdcopy"
	"github.com/spf13/cobra"

	"github.com/hanbit-ml/sftool/internal/config"
	"github.com/hanbit-ml/sftool/internal/runtime"
)

// LogsOptions holds options for the logs command
type LogsOptions struct {
	*GlobalOptions

	// Name is the container to read logs from
	Name string

	// Follow continues streaming logs in real-time
	Follow bool
}

// NewLogsCommand creates the logs command.
//
// The logs command streams logs from the serving container. By default it
// follows the stream until the container stops or the operator interrupts it.
//
// Usage:
//
//	sftool logs [CONTAINER]
func NewLogsCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &LogsOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "logs [CONTAINER]",
		Short: "Stream logs from the serving container",
		Long: `Stream logs from the serving container.

Without an argument, the container name is resolved the same way serve
resolves it: CONTAINER_NAME from the environment or .env file, defaulting
to "` + config.DefaultContainerName + `".

Logs are followed continuously by default (press Ctrl+C to stop); use
--follow=false to print the existing logs and exit.`,
		Example: `  # Follow the default serving container
  sftool logs

  # Print existing logs of a specific container and exit
  sftool logs my-vllm --follow=false`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Name = args[0]
			}
			return runLogs(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Follow, "follow", "f", true,
		"follow log output")

	return cmd
}

// runLogs executes the logs command logic
func runLogs(opts *LogsOptions) error {
	name := opts.Name
	if name == "" {
		config.LoadEnvFile()
		name = config.ContainerNameFromEnv()
	}

	launcher, err := runtime.NewLauncher()
	if err != nil {
		return err
	}

	// Ctrl+C cancels the follow instead of aborting mid-write.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reader, err := launcher.Logs(ctx, name, opts.Follow)
	if err != nil {
		return err
	}
	defer reader.Close()

	tty, err := launcher.IsTTY(ctx, name)
	if err != nil {
		return err
	}

	// TTY containers emit a raw stream; non-TTY streams multiplex
	// stdout/stderr and need demultiplexing.
	if tty {
		_, err = io.Copy(os.Stdout, reader)
	} else {
		_, err = stdcopy.StdCopy(os.Stdout, os.Stderr, reader)
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("log stream ended with error: %w", err)
	}

	return nil
}
