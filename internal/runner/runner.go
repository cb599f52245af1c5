// Package runner executes the external data-pipeline programs.
//
// The pipeline delegates all real work to Python programs (dataset filtering,
// SFT generation, CPT data building). This package assembles their exact
// command lines and runs them with inherited stdio so progress output reaches
// the operator unchanged. There are no retries: each invocation has a binary
// outcome and a failing run surfaces its exit status.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/hanbit-ml/sftool/internal/logger"
)

// Invocation describes one external program run.
type Invocation struct {
	// Program is the executable to run (typically the Python interpreter).
	Program string

	// Args are the program arguments, script path first.
	Args []string
}

// String renders the invocation as a shell-like command line for logging.
func (inv Invocation) String() string {
	return strings.Join(append([]string{inv.Program}, inv.Args...), " ")
}

// Run executes the invocation, waiting for completion.
//
// Stdout, stderr, and stdin are inherited from the current process. A nonzero
// exit status is returned as an error wrapping *exec.ExitError so callers can
// recover the exact status via ExitCode.
func Run(ctx context.Context, inv Invocation) error {
	logger.Debug("Executing: %s", inv)

	cmd := exec.CommandContext(ctx, inv.Program, inv.Args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s cancelled: %w", inv.Program, ctx.Err())
		}
		return fmt.Errorf("%s failed: %w", inv.Program, err)
	}

	return nil
}

// ExitCode extracts the process exit status from an error returned by Run.
// Errors that carry no exit status (e.g., program not found) map to 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}
