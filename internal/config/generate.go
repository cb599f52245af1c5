package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultPython is the interpreter used for the external pipeline scripts.
	DefaultPython = "python"

	// DefaultGenerateScript is the external SFT-generation program.
	DefaultGenerateScript = "preprocess/sft_data_generate.py"

	// DefaultFilterScript is the external dataset-filtering program.
	DefaultFilterScript = "preprocess/filtering_github2025.py"

	// DefaultCPTScript is the external CPT dataset builder.
	DefaultCPTScript = "preprocess/make_autosar_cpt_data.py"

	// DefaultFilterOutputDir receives the filtered JSON files.
	DefaultFilterOutputDir = "data/output"

	// DefaultFilterSampleSize is the per-language sample count when the
	// filter command is run without a positional argument.
	DefaultFilterSampleSize = "1500"
)

// DefaultFilterLanguages are the languages collected by the filter command,
// one filtering run per language.
var DefaultFilterLanguages = []string{"c", "cpp"}

// GenerateConfig holds the configuration for the SFT-generation run.
//
// The zero configuration is never used directly; DefaultGenerateConfig
// returns the compiled-in settings and ApplyFile overlays values from an
// optional YAML file. SampleSize is deliberately a string: the empty string
// means the --sample_size flag is omitted from the external invocation
// entirely, which is different from passing any default value.
type GenerateConfig struct {
	// Python is the interpreter used to run the generation script.
	Python string `yaml:"python"`

	// Script is the path to the external SFT-generation program.
	Script string `yaml:"script"`

	// AzureEndpoint is the Azure OpenAI endpoint URL.
	AzureEndpoint string `yaml:"azure_endpoint"`

	// AzureDeployment is the Azure OpenAI deployment name.
	AzureDeployment string `yaml:"azure_deployment"`

	// APIVersion is the Azure OpenAI API version.
	APIVersion string `yaml:"api_version"`

	// InputJSON is the code-record input file (filter command output).
	InputJSON string `yaml:"input_json"`

	// OutputJSON is where the generated SFT dataset is written.
	OutputJSON string `yaml:"output_json"`

	// MaxCodeLength is the maximum code length processed per record.
	MaxCodeLength int `yaml:"max_code_length"`

	// StrategiesPerCode is the number of generation strategies applied
	// to each code record (1-8).
	StrategiesPerCode int `yaml:"strategies_per_code"`

	// SampleSize limits the number of input records for test runs.
	// Empty means no limit and no flag.
	SampleSize string `yaml:"sample_size"`
}

// DefaultGenerateConfig returns the compiled-in generation settings.
func DefaultGenerateConfig() *GenerateConfig {
	return &GenerateConfig{
		Python:            DefaultPython,
		Script:            DefaultGenerateScript,
		AzureEndpoint:     "https://your-resource.openai.azure.com/",
		AzureDeployment:   "gpt-4o",
		APIVersion:        "2024-02-15-preview",
		InputJSON:         "data/output/github2025_c.json",
		OutputJSON:        "data/output/sft_dataset.json",
		MaxCodeLength:     2000,
		StrategiesPerCode: 3,
		SampleSize:        "",
	}
}

// ApplyFile overlays settings from a YAML file onto the configuration.
//
// Only keys present in the file are changed; everything else keeps its
// compiled-in value.
func (c *GenerateConfig) ApplyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration is complete enough to build the
// external invocation.
func (c *GenerateConfig) Validate() error {
	if c.AzureEndpoint == "" {
		return fmt.Errorf("azure_endpoint is required")
	}
	if c.AzureDeployment == "" {
		return fmt.Errorf("azure_deployment is required")
	}
	if c.InputJSON == "" {
		return fmt.Errorf("input_json is required")
	}
	if c.OutputJSON == "" {
		return fmt.Errorf("output_json is required")
	}
	if c.StrategiesPerCode < 1 || c.StrategiesPerCode > 8 {
		return fmt.Errorf("strategies_per_code must be between 1 and 8, got %d", c.StrategiesPerCode)
	}
	return nil
}
