package runner

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterInvocation(t *testing.T) {
	inv := FilterInvocation("python", "preprocess/filtering_github2025.py",
		"c", "1500", "data/output/github2025_c.json")

	assert.Equal(t, "python", inv.Program)
	assert.Equal(t, []string{
		"preprocess/filtering_github2025.py",
		"--languages", "c",
		"--sample_size", "1500",
		"--output_path", "data/output/github2025_c.json",
	}, inv.Args)
}

func TestFilterInvocationCarriesSampleSizePerLanguage(t *testing.T) {
	// Both language runs must carry the same requested sample size.
	for _, lang := range []string{"c", "cpp"} {
		inv := FilterInvocation("python", "filter.py", lang, "300",
			FilterOutputPath("data/output", lang))

		assert.Contains(t, inv.Args, "--sample_size")
		assert.Equal(t, "300", argValue(t, inv.Args, "--sample_size"))
		assert.Equal(t, lang, argValue(t, inv.Args, "--languages"))
	}
}

func TestFilterOutputPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("data", "output", "github2025_cpp.json"),
		FilterOutputPath(filepath.Join("data", "output"), "cpp"))
}

// argValue returns the argument following the given flag.
func argValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
	return ""
}
