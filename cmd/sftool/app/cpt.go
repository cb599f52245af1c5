package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hanbit-ml/sftool/internal/config"
	"github.com/hanbit-ml/sftool/internal/runner"
)

// CPTOptions holds options for the cpt command
type CPTOptions struct {
	*GlobalOptions

	// Python is the interpreter used to run the builder script
	Python string

	// Script is the path to the CPT dataset builder
	Script string

	// InputDir is the source-tree directory to tokenize
	InputDir string

	// RepoID identifies the source repository in the output records
	RepoID string

	// OutputPath is the JSON output file
	OutputPath string

	// ModelName selects the tokenizer; empty uses the builder's default
	ModelName string
}

// NewCPTCommand creates the cpt command.
//
// The cpt command wraps the external continued-pretraining dataset builder,
// which walks a source directory and emits tokenized records for CPT runs.
func NewCPTCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &CPTOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "cpt",
		Short: "Build a continued-pretraining dataset from a source tree",
		Long: `Build a continued-pretraining (CPT) dataset from a source directory.

The external builder walks the input directory, tokenizes the sources with the
selected model's tokenizer, and writes JSON records tagged with the repo id.`,
		Example: `  # Build CPT data from a checkout
  sftool cpt --input-dir ./autosar-src --repo-id autosar/classic --output data/output/cpt.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCPT(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Python, "python", config.DefaultPython,
		"python interpreter used to run the builder script")
	cmd.Flags().StringVar(&opts.Script, "script", config.DefaultCPTScript,
		"path to the CPT dataset builder script")
	cmd.Flags().StringVar(&opts.InputDir, "input-dir", "",
		"source directory to tokenize (required)")
	cmd.Flags().StringVar(&opts.RepoID, "repo-id", "",
		"repository identifier recorded in the output (required)")
	cmd.Flags().StringVar(&opts.OutputPath, "output", "",
		"output JSON file path (required)")
	cmd.Flags().StringVar(&opts.ModelName, "model-name", "",
		"tokenizer model name (default: the builder's own default)")

	cmd.MarkFlagRequired("input-dir")
	cmd.MarkFlagRequired("repo-id")
	cmd.MarkFlagRequired("output")

	return cmd
}

// runCPT executes the cpt command logic
func runCPT(opts *CPTOptions) error {
	inv := runner.CPTInvocation(opts.Python, opts.Script,
		opts.InputDir, opts.RepoID, opts.OutputPath, opts.ModelName)

	fmt.Printf("Building CPT dataset from %s\n\n", opts.InputDir)

	if err := runner.Run(context.Background(), inv); err != nil {
		fmt.Fprintln(os.Stderr, "CPT dataset build failed")
		os.Exit(1)
	}

	fmt.Println("CPT dataset build complete")
	fmt.Printf("Output: %s\n", opts.OutputPath)

	return nil
}
