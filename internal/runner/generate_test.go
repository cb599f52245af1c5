package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hanbit-ml/sftool/internal/config"
)

func TestGenerateInvocation(t *testing.T) {
	cfg := config.DefaultGenerateConfig()
	cfg.AzureEndpoint = "https://test.openai.azure.com/"
	cfg.AzureDeployment = "gpt-4o"
	cfg.InputJSON = "in.json"
	cfg.OutputJSON = "out.json"

	inv := GenerateInvocation(cfg)

	assert.Equal(t, cfg.Python, inv.Program)
	assert.Equal(t, []string{
		cfg.Script,
		"--input_json", "in.json",
		"--output_json", "out.json",
		"--azure_endpoint", "https://test.openai.azure.com/",
		"--azure_deployment", "gpt-4o",
		"--api_version", "2024-02-15-preview",
		"--max_code_length", "2000",
		"--strategies_per_code", "3",
	}, inv.Args)
}

func TestGenerateInvocationOmitsEmptySampleSize(t *testing.T) {
	cfg := config.DefaultGenerateConfig()
	cfg.SampleSize = ""

	inv := GenerateInvocation(cfg)

	assert.NotContains(t, inv.Args, "--sample_size",
		"empty sample size must omit the flag entirely")
}

func TestGenerateInvocationIncludesSampleSize(t *testing.T) {
	cfg := config.DefaultGenerateConfig()
	cfg.SampleSize = "10"

	inv := GenerateInvocation(cfg)

	require.Contains(t, inv.Args, "--sample_size")
	assert.Equal(t, "10", argValue(t, inv.Args, "--sample_size"))
	// The conditional flag comes after all unconditional ones.
	assert.Equal(t, "--sample_size", inv.Args[len(inv.Args)-2])
}

func TestCPTInvocation(t *testing.T) {
	inv := CPTInvocation("python3", "preprocess/make_autosar_cpt_data.py",
		"./src", "autosar/classic", "out.json", "")

	assert.Equal(t, "python3", inv.Program)
	assert.Equal(t, []string{
		"preprocess/make_autosar_cpt_data.py",
		"--input_dir", "./src",
		"--repo_id", "autosar/classic",
		"--output_path", "out.json",
	}, inv.Args)
	assert.NotContains(t, inv.Args, "--model_name")
}

func TestCPTInvocationWithModelName(t *testing.T) {
	inv := CPTInvocation("python", "make.py", "./src", "r", "o.json",
		"Qwen/Qwen3-Coder-30B-A3B-Instruct")

	assert.Equal(t, "Qwen/Qwen3-Coder-30B-A3B-Instruct",
		argValue(t, inv.Args, "--model_name"))
}
