package runner

import (
	"strconv"

	"github.com/hanbit-ml/sftool/internal/config"
)

// GenerateInvocation builds the SFT-generation run from the configuration.
//
// One flag is emitted per configured option. The sample-size flag is a
// conditional inclusion: when the configured value is empty the flag is left
// out entirely, letting the external program process the full input.
func GenerateInvocation(cfg *config.GenerateConfig) Invocation {
	args := []string{
		cfg.Script,
		"--input_json", cfg.InputJSON,
		"--output_json", cfg.OutputJSON,
		"--azure_endpoint", cfg.AzureEndpoint,
		"--azure_deployment", cfg.AzureDeployment,
		"--api_version", cfg.APIVersion,
		"--max_code_length", strconv.Itoa(cfg.MaxCodeLength),
		"--strategies_per_code", strconv.Itoa(cfg.StrategiesPerCode),
	}

	if cfg.SampleSize != "" {
		args = append(args, "--sample_size", cfg.SampleSize)
	}

	return Invocation{Program: cfg.Python, Args: args}
}

// CPTInvocation builds the CPT dataset builder run.
//
// modelName is optional; when empty the external program's own default
// tokenizer is used.
func CPTInvocation(python, script, inputDir, repoID, outputPath, modelName string) Invocation {
	args := []string{
		script,
		"--input_dir", inputDir,
		"--repo_id", repoID,
		"--output_path", outputPath,
	}

	if modelName != "" {
		args = append(args, "--model_name", modelName)
	}

	return Invocation{Program: python, Args: args}
}
