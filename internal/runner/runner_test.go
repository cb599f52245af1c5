package runner

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuccess(t *testing.T) {
	err := Run(context.Background(), Invocation{Program: "true"})
	require.NoError(t, err)
}

func TestRunFailureCarriesExitCode(t *testing.T) {
	err := Run(context.Background(), Invocation{
		Program: "sh",
		Args:    []string{"-c", "exit 3"},
	})

	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))
}

func TestRunMissingProgram(t *testing.T) {
	err := Run(context.Background(), Invocation{Program: "definitely-not-a-real-program"})

	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err), "errors without an exit status map to 1")
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, Invocation{Program: "sleep", Args: []string{"10"}})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestExitCodeNil(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
}

func TestInvocationString(t *testing.T) {
	inv := Invocation{Program: "python", Args: []string{"gen.py", "--sample_size", "10"}}
	assert.Equal(t, "python gen.py --sample_size 10", inv.String())
}
