package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hanbit-ml/sftool/internal/config"
	"github.com/hanbit-ml/sftool/internal/runtime"
	"github.com/hanbit-ml/sftool/internal/vllm"
)

// ServeOptions holds options for the serve command
type ServeOptions struct {
	*GlobalOptions

	// Pull ensures the image is available locally before launching
	Pull bool

	// Wait blocks until the serving endpoint answers
	Wait bool

	// WaitTimeout bounds the readiness wait
	WaitTimeout time.Duration
}

// NewServeCommand creates the serve command.
//
// The serve command launches a single detached vLLM model-serving container
// on the local GPU. All configuration comes from environment variables with
// an optional .env file; MODEL_ID is the only required variable.
//
// Usage:
//
//	MODEL_ID=Qwen/Qwen3-Coder-30B-A3B-Instruct sftool serve
func NewServeCommand(globalOpts *GlobalOptions) *cobra.Command {
	opts := &ServeOptions{
		GlobalOptions: globalOpts,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Launch the vLLM model-serving container",
		Long: `Launch a detached vLLM model-serving container.

Configuration is resolved from environment variables, with an optional .env
file next to the binary (or in the working directory). Explicit environment
variables take precedence over .env entries, which take precedence over the
built-in defaults.

Variables (defaults in parentheses):
  MODEL_ID                 model to serve - required, no default
  IMAGE                    serving image (vllm/vllm-openai:latest)
  HOST_PORT                host port mapped to the server (8000)
  GPU_ID                   GPU device selection (0)
  HF_CACHE_DIR             HuggingFace cache mount (~/.cache/huggingface)
  SHM_SIZE                 shared-memory size (10.24gb)
  MAX_MODEL_LEN            max context length (128000)
  TRUST_REMOTE_CODE        "true" or "1" adds --trust-remote-code (true)
  GPU_MEMORY_UTILIZATION   GPU memory fraction (0.90)
  CONTAINER_NAME           container name (vllm-single)
  API_KEY                  adds --api-key when non-empty (empty)
  ADDITIONAL_ARGS          extra server args, whitespace-split (empty)

Launching twice with the same CONTAINER_NAME fails with the container
runtime's own name-collision error; stop and remove the old container first
(sftool stop; sftool rm).`,
		Example: `  # Serve a model with defaults
  MODEL_ID=Qwen/Qwen3-Coder-30B-A3B-Instruct sftool serve

  # Pull the image first and wait until the endpoint is up
  sftool serve --pull --wait`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Pull, "pull", false,
		"pull the serving image if it is not available locally")
	cmd.Flags().BoolVar(&opts.Wait, "wait", false,
		"wait until the serving endpoint answers before returning")
	cmd.Flags().DurationVar(&opts.WaitTimeout, "wait-timeout", 10*time.Minute,
		"maximum time to wait for the endpoint with --wait")

	return cmd
}

// runServe executes the serve command logic
func runServe(opts *ServeOptions) error {
	config.LoadEnvFile()
	cfg := config.ServeConfigFromEnv()

	// Required configuration is checked before any container-runtime action.
	if err := cfg.Validate(); err != nil {
		return err
	}

	launcher, err := runtime.NewLauncher()
	if err != nil {
		return err
	}

	ctx := context.Background()

	if opts.Pull {
		if err := runtime.EnsureImage(ctx, cfg.Image); err != nil {
			return err
		}
	}

	spec := &runtime.LaunchSpec{
		Name:       cfg.ContainerName,
		Image:      cfg.Image,
		ModelID:    cfg.ModelID,
		HostPort:   cfg.HostPort,
		GPUIDs:     strings.Split(cfg.GPUID, ","),
		ShmSize:    cfg.ShmSize,
		HFCacheDir: cfg.HFCacheDir,
		Args:       vllm.BuildServeArgs(cfg),
	}

	id, err := launcher.Launch(ctx, spec)
	if err != nil {
		return err
	}

	fmt.Printf("Serving %s\n", cfg.ModelID)
	fmt.Printf("  Container: %s (%s)\n", cfg.ContainerName, id[:12])
	fmt.Printf("  Endpoint:  %s\n", cfg.Endpoint())
	fmt.Printf("  GPU:       %s\n", cfg.GPUID)
	fmt.Println()

	if opts.Wait {
		fmt.Printf("Waiting for the endpoint (up to %s)...\n", opts.WaitTimeout)

		waitCtx, cancel := context.WithTimeout(ctx, opts.WaitTimeout)
		defer cancel()

		client := vllm.NewClient(cfg.Endpoint(), cfg.APIKey)
		if err := client.WaitReady(waitCtx, 5*time.Second); err != nil {
			return fmt.Errorf("endpoint did not become ready: %w (check 'sftool logs')", err)
		}

		fmt.Println("Endpoint is ready")
		return nil
	}

	fmt.Println("Follow startup with: sftool logs")

	return nil
}
