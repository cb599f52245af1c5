package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hanbit-ml/sftool/internal/config"
	"github.com/hanbit-ml/sftool/internal/runner"
)

// GenerateOptions holds options for the generate command
type GenerateOptions struct {
	*GlobalOptions

	// ConfigFile optionally overlays the compiled-in generation settings
	ConfigFile string

	// SampleSize overrides the configured sample size when the flag is set
	SampleSize string
}

// NewGenerateCommand creates the generate command.
//
// The generate command runs the external SFT-generation program against an
// Azure OpenAI deployment, turning filtered code records into supervised
// fine-tuning examples.
//
// Usage:
//
//	sftool generate [--config FILE] [--sample-size N]
func NewGenerateCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &GenerateOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate SFT training data from filtered code records",
		Long: `Generate SFT training data by invoking the external generation program.

The generation settings (Azure endpoint, deployment, API version, input and
output paths, processing limits) are compiled in; pass --config to overlay
any of them from a YAML file.

The sample size is a conditional option: when it is empty the --sample_size
flag is omitted from the external invocation entirely and the full input is
processed. Set it (via config file or --sample-size) for test runs.`,
		Example: `  # Generate with the compiled-in settings
  sftool generate

  # Overlay settings from a file
  sftool generate --config generate.yaml

  # Quick test run over 10 records
  sftool generate --sample-size 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFile, "config", "",
		"YAML file overlaying the compiled-in generation settings")
	cmd.Flags().StringVar(&opts.SampleSize, "sample-size", "",
		"limit the number of input records (empty: process everything)")

	return cmd
}

// runGenerate executes the generate command logic
func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	cfg := config.DefaultGenerateConfig()

	if opts.ConfigFile != "" {
		if err := cfg.ApplyFile(opts.ConfigFile); err != nil {
			return err
		}
	}

	// Distinguish an explicit empty flag from an unset one: --sample-size ""
	// clears a value the config file may have set.
	if cmd.Flags().Changed("sample-size") {
		cfg.SampleSize = opts.SampleSize
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid generation config: %w", err)
	}

	inv := runner.GenerateInvocation(cfg)

	fmt.Println("Starting SFT data generation...")
	fmt.Printf("  Endpoint:   %s\n", cfg.AzureEndpoint)
	fmt.Printf("  Deployment: %s\n", cfg.AzureDeployment)
	fmt.Printf("  Input:      %s\n", cfg.InputJSON)
	fmt.Printf("  Output:     %s\n", cfg.OutputJSON)
	if cfg.SampleSize != "" {
		fmt.Printf("  Sample:     %s records\n", cfg.SampleSize)
	}
	fmt.Println()

	if err := runner.Run(context.Background(), inv); err != nil {
		fmt.Fprintln(os.Stderr, "SFT data generation failed")
		os.Exit(1)
	}

	fmt.Println("SFT data generation complete")
	fmt.Printf("Output: %s\n", cfg.OutputJSON)

	return nil
}
