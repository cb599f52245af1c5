// Package app provides the command-line interface implementation for sftool.
//
// This package contains all CLI commands and their implementations. Commands
// are organized hierarchically with a root command and subcommands, one file
// per subcommand.
package app

import (
	"github.com/spf13/cobra"

	"github.com/hanbit-ml/sftool/internal/logger"
)

const (
	// cliName is the name of the CLI application
	cliName = "sftool"

	// cliDescription is the short description shown in help text
	cliDescription = "sftool - code SFT dataset pipeline and vLLM serving"
)

// GlobalOptions holds options that are common to all commands
type GlobalOptions struct {
	// Verbose enables verbose output
	Verbose bool
}

// NewSFToolCommand creates the root sftool command with all subcommands.
//
// The root command provides the main entry point for the CLI. It sets up
// global flags and registers all subcommands.
func NewSFToolCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: cliDescription,
		Long: `sftool drives a supervised fine-tuning data pipeline for code models
and serves the resulting models with vLLM.

The pipeline has three stages, each delegating to an external program:

  filter    collect code samples per language from the GitHub dataset
  generate  synthesize SFT examples from the collected code via Azure OpenAI
  serve     launch a vLLM model-serving container on the local GPU

Serving configuration is resolved from environment variables with an optional
.env file next to the binary (environment > .env > defaults). MODEL_ID is the
only required variable for serving.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbose(opts.Verbose)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"verbose output")

	cmd.AddCommand(
		NewFilterCommand(opts),
		NewGenerateCommand(opts),
		NewCPTCommand(opts),
		NewServeCommand(opts),
		NewLogsCommand(opts),
		NewStopCommand(opts),
		NewRmCommand(opts),
		NewPsCommand(opts),
		NewVersionCommand(opts),
	)

	return cmd
}
