package runtime

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/creack/pty"

	"github.com/hanbit-ml/sftool/internal/logger"
)

// ImageExists checks whether an image is present in the local Docker cache.
func ImageExists(ctx context.Context, imageName string) (bool, error) {
	if imageName == "" {
		return false, fmt.Errorf("image name cannot be empty")
	}

	cmd := exec.CommandContext(ctx, "docker", "images", "-q", imageName)
	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return false, fmt.Errorf("image check cancelled: %w", ctx.Err())
		}
		return false, fmt.Errorf("failed to check Docker image: %w", err)
	}

	return len(strings.TrimSpace(string(output))) > 0, nil
}

// PullImage pulls an image through the docker CLI.
//
// The pull runs under a PTY so Docker emits its native layer progress bars,
// which are copied through to stderr for the operator.
func PullImage(ctx context.Context, imageName string) error {
	if imageName == "" {
		return fmt.Errorf("image name cannot be empty")
	}

	logger.Info("Pulling Docker image: %s", imageName)

	cmd := exec.CommandContext(ctx, "docker", "pull", imageName)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		return fmt.Errorf("failed to start docker pull: %w", err)
	}
	defer ptmx.Close()

	// The PTY read returns an error when the child exits; cmd.Wait decides
	// whether the pull actually failed.
	io.Copy(os.Stderr, ptmx)

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("pull cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("failed to pull image %s: %w", imageName, err)
	}

	logger.Info("Successfully pulled image: %s", imageName)

	return nil
}

// EnsureImage pulls the image unless it is already available locally.
func EnsureImage(ctx context.Context, imageName string) error {
	exists, err := ImageExists(ctx, imageName)
	if err != nil {
		return err
	}

	if exists {
		logger.Debug("Image %s found locally", imageName)
		return nil
	}

	return PullImage(ctx, imageName)
}
