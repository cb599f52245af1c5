package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandSubcommands(t *testing.T) {
	cmd := NewSFToolCommand()

	want := []string{"filter", "generate", "cpt", "serve", "logs", "stop", "rm", "ps", "version"}
	for _, name := range want {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, "subcommand %s", name)
		assert.Equal(t, name, sub.Name())
	}
}

func TestFilterCommandFlagDefaults(t *testing.T) {
	cmd := NewFilterCommand(&GlobalOptions{})

	python, err := cmd.Flags().GetString("python")
	require.NoError(t, err)
	assert.Equal(t, "python", python)

	languages, err := cmd.Flags().GetStringSlice("languages")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "cpp"}, languages)

	outputDir, err := cmd.Flags().GetString("output-dir")
	require.NoError(t, err)
	assert.Equal(t, "data/output", outputDir)
}

func TestGenerateCommandRejectsArgs(t *testing.T) {
	cmd := NewGenerateCommand(&GlobalOptions{})
	cmd.SetArgs([]string{"unexpected"})
	assert.Error(t, cmd.Execute())
}

func TestLogsCommandFollowsByDefault(t *testing.T) {
	cmd := NewLogsCommand(&GlobalOptions{})

	follow, err := cmd.Flags().GetBool("follow")
	require.NoError(t, err)
	assert.True(t, follow)
}

func TestServeCommandFlagDefaults(t *testing.T) {
	cmd := NewServeCommand(&GlobalOptions{})

	pull, err := cmd.Flags().GetBool("pull")
	require.NoError(t, err)
	assert.False(t, pull)

	timeout, err := cmd.Flags().GetDuration("wait-timeout")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, timeout)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{30 * time.Second, "30s"},
		{5 * time.Minute, "5m"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
		{26 * time.Hour, "1d2h"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}
