package runner

import (
	"fmt"
	"path/filepath"
)

// FilterOutputPath returns the JSON output path for one language's
// filtering run. Each language gets its own file under the output directory.
func FilterOutputPath(outputDir, language string) string {
	return filepath.Join(outputDir, fmt.Sprintf("github2025_%s.json", language))
}

// FilterInvocation builds the external filtering run for one language.
//
// The filtering program collects sampleSize code records of the given
// language from the streamed dataset and writes them to outputPath. Flag
// names match the program's argparse surface exactly.
func FilterInvocation(python, script, language, sampleSize, outputPath string) Invocation {
	return Invocation{
		Program: python,
		Args: []string{
			script,
			"--languages", language,
			"--sample_size", sampleSize,
			"--output_path", outputPath,
		},
	}
}
