package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hanbit-ml/sftool/internal/config"
	"github.com/hanbit-ml/sftool/internal/runner"
)

// FilterOptions holds options for the filter command
type FilterOptions struct {
	*GlobalOptions

	// SampleSize is the per-language sample count, passed through to the
	// filtering program verbatim
	SampleSize string

	// Python is the interpreter used to run the filtering script
	Python string

	// Script is the path to the filtering program
	Script string

	// Languages are the languages to collect, one filtering run each
	Languages []string

	// OutputDir receives one JSON file per language
	OutputDir string
}

// NewFilterCommand creates the filter command.
//
// The filter command collects code samples from the GitHub 2025 dataset by
// invoking the external filtering program once per language.
//
// Usage:
//
//	sftool filter [SAMPLE_SIZE]
//
// Examples:
//
//	# Collect 1500 samples each for c and cpp (the defaults)
//	sftool filter
//
//	# Collect 300 samples per language
//	sftool filter 300
func NewFilterCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &FilterOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "filter [SAMPLE_SIZE]",
		Short: "Collect code samples per language from the GitHub dataset",
		Long: `Collect code samples from the GitHub 2025 dataset.

The external filtering program is invoked once per language, writing one JSON
file per language into the output directory. SAMPLE_SIZE applies to every
language and defaults to ` + config.DefaultFilterSampleSize + `.

The runs are sequential and fail fast: if a language's filtering run exits
nonzero, remaining languages are skipped and its exit status becomes this
command's exit status.`,
		Example: `  # Collect with defaults (1500 samples for c and cpp)
  sftool filter

  # Smaller test collection
  sftool filter 300

  # Different language set
  sftool filter 500 --languages c,cpp,python`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.SampleSize = args[0]
			}
			return runFilter(opts)
		},
	}

	cmd.Flags().StringVar(&opts.Python, "python", config.DefaultPython,
		"python interpreter used to run the filtering script")
	cmd.Flags().StringVar(&opts.Script, "script", config.DefaultFilterScript,
		"path to the filtering script")
	cmd.Flags().StringSliceVar(&opts.Languages, "languages", config.DefaultFilterLanguages,
		"languages to collect, one filtering run each")
	cmd.Flags().StringVar(&opts.OutputDir, "output-dir", config.DefaultFilterOutputDir,
		"directory receiving one JSON file per language")

	return cmd
}

// runFilter executes the filter command logic
func runFilter(opts *FilterOptions) error {
	if opts.SampleSize == "" {
		opts.SampleSize = config.DefaultFilterSampleSize
	}

	ctx := context.Background()

	fmt.Printf("Filtering %s with sample size %s\n",
		strings.Join(opts.Languages, ", "), opts.SampleSize)

	for _, lang := range opts.Languages {
		outputPath := runner.FilterOutputPath(opts.OutputDir, lang)
		inv := runner.FilterInvocation(opts.Python, opts.Script, lang, opts.SampleSize, outputPath)

		fmt.Printf("\n[%s] %s\n", lang, inv)

		if err := runner.Run(ctx, inv); err != nil {
			fmt.Fprintf(os.Stderr, "Filtering failed for %s: %v\n", lang, err)
			os.Exit(runner.ExitCode(err))
		}

		fmt.Printf("[%s] wrote %s\n", lang, outputPath)
	}

	fmt.Println("\nFiltering complete")

	return nil
}
