package vllm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hanbit-ml/sftool/internal/config"
)

func baseConfig() *config.ServeConfig {
	return &config.ServeConfig{
		ModelID:              "Qwen/Qwen3-Coder-30B-A3B-Instruct",
		MaxModelLen:          128000,
		GPUMemoryUtilization: "0.90",
		TrustRemoteCode:      "false",
	}
}

func TestBuildServeArgsBase(t *testing.T) {
	args := BuildServeArgs(baseConfig())

	assert.Equal(t, []string{
		"--model", "Qwen/Qwen3-Coder-30B-A3B-Instruct",
		"--max-model-len", "128000",
		"--gpu-memory-utilization", "0.90",
		"--enable-auto-tool-choice",
		"--tool-call-parser", "hermes",
	}, args)
}

func TestBuildServeArgsTrustRemoteCode(t *testing.T) {
	tests := []struct {
		value    string
		included bool
	}{
		{"true", true},
		{"1", true},
		{"false", false},
		{"0", false},
		{"", false},
		{"yes", false},
	}

	for _, tt := range tests {
		cfg := baseConfig()
		cfg.TrustRemoteCode = tt.value

		args := BuildServeArgs(cfg)

		if tt.included {
			assert.Contains(t, args, "--trust-remote-code", "value %q", tt.value)
		} else {
			assert.NotContains(t, args, "--trust-remote-code", "value %q", tt.value)
		}
	}
}

func TestBuildServeArgsAPIKey(t *testing.T) {
	cfg := baseConfig()
	assert.NotContains(t, BuildServeArgs(cfg), "--api-key")

	cfg.APIKey = "secret-key"
	args := BuildServeArgs(cfg)
	assert.Contains(t, args, "--api-key")

	for i, a := range args {
		if a == "--api-key" {
			assert.Equal(t, "secret-key", args[i+1])
		}
	}
}

func TestBuildServeArgsAdditionalArgsLast(t *testing.T) {
	cfg := baseConfig()
	cfg.AdditionalArgs = "--dtype bfloat16 --enforce-eager"

	args := BuildServeArgs(cfg)

	n := len(args)
	assert.Equal(t, []string{"--dtype", "bfloat16", "--enforce-eager"}, args[n-3:])
}
