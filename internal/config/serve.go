// Package config provides configuration management for the sftool application.
//
// This package handles all configuration-related functionality including:
//   - Serving configuration resolved from the environment with defaults
//   - Optional .env file loading with documented precedence
//   - Compiled-in defaults for the SFT data generation pipeline
//
// Resolution precedence for serving values is always:
//
//	explicit environment variable > .env file entry > compiled-in default
//
// The .env file is looked up next to the executable first and then in the
// current working directory, so the tool behaves the same whether it is run
// from a checkout or from an installed binary.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/hanbit-ml/sftool/internal/logger"
)

const (
	// DefaultImage is the model-serving container image.
	DefaultImage = "vllm/vllm-openai:latest"

	// DefaultHostPort is the host port mapped to the server's port 8000.
	DefaultHostPort = 8000

	// DefaultGPUID selects the GPU device exposed to the container.
	DefaultGPUID = "0"

	// DefaultShmSize is the shared-memory size for the container.
	// vLLM needs a large /dev/shm for tensor exchange between workers.
	DefaultShmSize = "10.24gb"

	// DefaultMaxModelLen is the maximum model context length.
	DefaultMaxModelLen = 128000

	// DefaultTrustRemoteCode controls the --trust-remote-code server flag.
	DefaultTrustRemoteCode = "true"

	// DefaultGPUMemoryUtilization is the fraction of GPU memory vLLM may use.
	DefaultGPUMemoryUtilization = "0.90"

	// DefaultContainerName names the single serving container.
	DefaultContainerName = "vllm-single"

	// EnvFileName is the optional configuration file read at startup.
	EnvFileName = ".env"
)

// ServeConfig holds the resolved configuration for the serving container.
//
// Every field except ModelID has a default; ModelID must be provided through
// the environment (or the .env file) and its absence is a fatal precondition
// checked by Validate before any container-runtime action is attempted.
type ServeConfig struct {
	// ModelID is the HuggingFace model identifier to serve. Required.
	ModelID string

	// Image is the model-serving container image reference.
	Image string

	// HostPort is the host port mapped to the server inside the container.
	HostPort int

	// GPUID is the GPU device selection (e.g., "0" or "0,1").
	GPUID string

	// HFCacheDir is the host HuggingFace cache directory mounted into
	// the container so downloaded weights survive container removal.
	HFCacheDir string

	// ShmSize is the container shared-memory size (e.g., "10.24gb").
	ShmSize string

	// MaxModelLen is the maximum model context length.
	MaxModelLen int

	// TrustRemoteCode enables --trust-remote-code when it resolves to
	// the literal string "true" or "1".
	TrustRemoteCode string

	// GPUMemoryUtilization is passed through to --gpu-memory-utilization.
	GPUMemoryUtilization string

	// ContainerName is the name given to the serving container.
	ContainerName string

	// APIKey protects the serving endpoint; the --api-key flag is added
	// only when this is non-empty.
	APIKey string

	// AdditionalArgs holds free-form extra server arguments, split on
	// whitespace and appended after the generated flags.
	AdditionalArgs string
}

// LoadEnvFile loads the optional .env file into the process environment.
//
// Variables already present in the environment are never overridden, which
// gives explicit environment variables precedence over file entries. A
// missing file is not an error; the defaults simply apply.
func LoadEnvFile() {
	path := findEnvFile()
	if path == "" {
		logger.Debug("No %s file found, using environment and defaults", EnvFileName)
		return
	}

	if err := godotenv.Load(path); err != nil {
		logger.Warn("Failed to load %s: %v", path, err)
		return
	}

	logger.Debug("Loaded environment file: %s", path)
}

// findEnvFile locates the .env file next to the executable or in the
// current working directory, in that order.
func findEnvFile() string {
	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), EnvFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if _, err := os.Stat(EnvFileName); err == nil {
		return EnvFileName
	}

	return ""
}

// ServeConfigFromEnv resolves the serving configuration from the current
// process environment, applying defaults for every unset optional value.
//
// Call LoadEnvFile first if .env file support is wanted; this function only
// reads the process environment.
func ServeConfigFromEnv() *ServeConfig {
	return &ServeConfig{
		ModelID:              os.Getenv("MODEL_ID"),
		Image:                envOr("IMAGE", DefaultImage),
		HostPort:             envIntOr("HOST_PORT", DefaultHostPort),
		GPUID:                envOr("GPU_ID", DefaultGPUID),
		HFCacheDir:           envOr("HF_CACHE_DIR", defaultHFCacheDir()),
		ShmSize:              envOr("SHM_SIZE", DefaultShmSize),
		MaxModelLen:          envIntOr("MAX_MODEL_LEN", DefaultMaxModelLen),
		TrustRemoteCode:      envOr("TRUST_REMOTE_CODE", DefaultTrustRemoteCode),
		GPUMemoryUtilization: envOr("GPU_MEMORY_UTILIZATION", DefaultGPUMemoryUtilization),
		ContainerName:        envOr("CONTAINER_NAME", DefaultContainerName),
		APIKey:               os.Getenv("API_KEY"),
		AdditionalArgs:       os.Getenv("ADDITIONAL_ARGS"),
	}
}

// ContainerNameFromEnv resolves only the container name, for commands that
// address an existing container (logs, stop, rm).
func ContainerNameFromEnv() string {
	return envOr("CONTAINER_NAME", DefaultContainerName)
}

// Validate checks required configuration before any container action.
func (c *ServeConfig) Validate() error {
	if c.ModelID == "" {
		return fmt.Errorf("MODEL_ID is not set: export MODEL_ID or add it to %s (e.g., MODEL_ID=Qwen/Qwen3-Coder-30B-A3B-Instruct)", EnvFileName)
	}
	if c.HostPort <= 0 || c.HostPort > 65535 {
		return fmt.Errorf("HOST_PORT must be a valid TCP port, got %d", c.HostPort)
	}
	return nil
}

// TrustRemoteCodeEnabled reports whether the trust-remote-code flag should
// be included. Only the literal strings "true" and "1" enable it.
func (c *ServeConfig) TrustRemoteCodeEnabled() bool {
	return c.TrustRemoteCode == "true" || c.TrustRemoteCode == "1"
}

// AdditionalArgList splits the free-form additional arguments on whitespace.
func (c *ServeConfig) AdditionalArgList() []string {
	return strings.Fields(c.AdditionalArgs)
}

// Endpoint returns the local HTTP address of the serving container.
func (c *ServeConfig) Endpoint() string {
	return fmt.Sprintf("http://localhost:%d", c.HostPort)
}

// defaultHFCacheDir returns the conventional HuggingFace cache location.
func defaultHFCacheDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "/tmp"
	}
	return filepath.Join(homeDir, ".cache", "huggingface")
}

// envOr returns the environment value for key, or def when unset or empty.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envIntOr returns the integer environment value for key, or def when the
// variable is unset or not parseable as an integer.
func envIntOr(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logger.Warn("Invalid integer for %s: %q, using default %d", key, v, def)
		return def
	}
	return n
}
