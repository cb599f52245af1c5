// Package vllm builds vLLM OpenAI-server arguments and probes the
// serving endpoint for readiness.
package vllm

import (
	"strconv"

	"github.com/hanbit-ml/sftool/internal/config"
)

// ToolCallParser is the parser for model tool-call output. Fixed alongside
// --enable-auto-tool-choice so served models can use function calling.
const ToolCallParser = "hermes"

// BuildServeArgs assembles the argument list passed to the model-serving
// image (the vllm/vllm-openai entrypoint consumes them directly).
//
// Two flags are conditional: --trust-remote-code is included only when the
// configured value resolves to "true" or "1", and --api-key only when a key
// is configured. Free-form additional arguments come last so they can
// override or extend the generated flags.
func BuildServeArgs(cfg *config.ServeConfig) []string {
	args := []string{
		"--model", cfg.ModelID,
		"--max-model-len", strconv.Itoa(cfg.MaxModelLen),
		"--gpu-memory-utilization", cfg.GPUMemoryUtilization,
		"--enable-auto-tool-choice",
		"--tool-call-parser", ToolCallParser,
	}

	if cfg.TrustRemoteCodeEnabled() {
		args = append(args, "--trust-remote-code")
	}

	if cfg.APIKey != "" {
		args = append(args, "--api-key", cfg.APIKey)
	}

	return append(args, cfg.AdditionalArgList()...)
}
