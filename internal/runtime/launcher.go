// Package runtime manages the model-serving Docker container.
//
// This package wraps the Docker API for the small lifecycle the tool needs:
// create+start the serving container, stream its logs, stop it, remove it,
// and list containers the tool has launched. Containers are tagged with
// sftool labels so discovery never touches unrelated containers on the host.
package runtime

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/docker/go-units"

	"github.com/hanbit-ml/sftool/internal/logger"
)

const (
	// LabelManaged marks containers launched by this tool.
	LabelManaged = "sftool.managed"

	// LabelModelID records the served model on the container.
	LabelModelID = "sftool.model_id"

	// servingPort is the fixed port the model server listens on inside
	// the container.
	servingPort = nat.Port("8000/tcp")

	// cacheMountTarget is where the HuggingFace cache is mounted inside
	// the container so downloaded weights persist across containers.
	cacheMountTarget = "/root/.cache/huggingface"

	// stopTimeoutSeconds is the graceful-stop window before Docker sends
	// SIGKILL. Long enough for in-flight inference requests to finish.
	stopTimeoutSeconds = 30
)

// LaunchSpec describes the serving container to create.
type LaunchSpec struct {
	// Name is the container name. Docker rejects duplicates; a name
	// collision surfaces as the daemon's own error.
	Name string

	// Image is the model-serving image reference.
	Image string

	// ModelID is the model identifier, recorded as a label and passed to
	// the server through Args.
	ModelID string

	// HostPort is bound to the server's port 8000.
	HostPort int

	// GPUIDs are the GPU device IDs exposed to the container.
	GPUIDs []string

	// ShmSize is the shared-memory size in Docker's human format
	// (e.g., "10.24gb").
	ShmSize string

	// HFCacheDir is the host cache directory bind-mounted into the
	// container.
	HFCacheDir string

	// Args are the model-server arguments consumed by the image
	// entrypoint.
	Args []string
}

// ContainerInfo is a summary of a managed container for listing.
type ContainerInfo struct {
	ID      string
	Name    string
	Image   string
	ModelID string
	State   string
	Status  string
	Port    int
	Created time.Time
}

// Launcher issues container operations against the local Docker daemon.
type Launcher struct {
	client *client.Client
}

// NewLauncher creates a launcher connected to the local Docker daemon.
//
// The client respects DOCKER_HOST and related environment variables and
// negotiates the API version with the daemon. Daemon reachability is
// verified up front so commands fail with a clear message instead of midway
// through a launch.
func NewLauncher() (*Launcher, error) {
	cli, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := cli.Ping(ctx); err != nil {
		return nil, fmt.Errorf("Docker daemon is not accessible: %w", err)
	}

	return &Launcher{client: cli}, nil
}

// Launch creates and starts the serving container, returning the container ID.
//
// The container runs detached with an interactive TTY, host IPC, the
// requested GPUs, shared-memory size, cache mount, and port binding. This is
// a single all-or-nothing operation: the tool does not retry, and a failure
// from the daemon (including a container-name collision) is returned as-is.
func (l *Launcher) Launch(ctx context.Context, spec *LaunchSpec) (string, error) {
	shmBytes, err := units.RAMInBytes(spec.ShmSize)
	if err != nil {
		return "", fmt.Errorf("invalid shared-memory size %q: %w", spec.ShmSize, err)
	}

	logger.Info("Creating container %s from image %s", spec.Name, spec.Image)
	logger.Debug("Server args: %v", spec.Args)

	containerConfig := &container.Config{
		Image: spec.Image,
		Cmd:   spec.Args,
		// -d -it equivalent: detached create+start with TTY and stdin open
		Tty:       true,
		OpenStdin: true,
		ExposedPorts: nat.PortSet{
			servingPort: struct{}{},
		},
		Labels: map[string]string{
			LabelManaged: "true",
			LabelModelID: spec.ModelID,
		},
	}

	hostConfig := &container.HostConfig{
		IpcMode: container.IpcMode("host"),
		ShmSize: shmBytes,
		PortBindings: nat.PortMap{
			servingPort: []nat.PortBinding{
				{
					HostIP:   "0.0.0.0",
					HostPort: fmt.Sprintf("%d", spec.HostPort),
				},
			},
		},
		Mounts: []mount.Mount{
			{
				Type:   mount.TypeBind,
				Source: spec.HFCacheDir,
				Target: cacheMountTarget,
			},
		},
		Resources: container.Resources{
			DeviceRequests: []container.DeviceRequest{
				{
					Driver:       "nvidia",
					DeviceIDs:    spec.GPUIDs,
					Capabilities: [][]string{{"gpu"}},
				},
			},
		},
	}

	resp, err := l.client.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, spec.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := l.client.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	logger.Info("Container started: %s (%s)", spec.Name, shortID(resp.ID))

	return resp.ID, nil
}

// Logs returns the container's log stream.
//
// With follow set, the stream stays open and delivers new output until the
// container stops or the context is cancelled. The caller must close the
// returned reader. Use IsTTY to decide whether the stream needs stdcopy
// demultiplexing.
func (l *Launcher) Logs(ctx context.Context, name string, follow bool) (io.ReadCloser, error) {
	options := container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Follow:     follow,
		Tail:       "all",
	}

	reader, err := l.client.ContainerLogs(ctx, name, options)
	if err != nil {
		return nil, fmt.Errorf("failed to get logs for %s: %w", name, err)
	}

	return reader, nil
}

// IsTTY reports whether the container was created with a TTY. TTY containers
// produce a raw log stream; non-TTY containers multiplex stdout/stderr.
func (l *Launcher) IsTTY(ctx context.Context, name string) (bool, error) {
	inspect, err := l.client.ContainerInspect(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to inspect %s: %w", name, err)
	}
	return inspect.Config != nil && inspect.Config.Tty, nil
}

// Stop gracefully stops the named container. The container is preserved for
// inspection or restart; use Remove to delete it.
func (l *Launcher) Stop(ctx context.Context, name string) error {
	logger.Info("Stopping container: %s", name)

	timeout := stopTimeoutSeconds
	if err := l.client.ContainerStop(ctx, name, container.StopOptions{Timeout: &timeout}); err != nil {
		return fmt.Errorf("failed to stop %s: %w", name, err)
	}

	return nil
}

// Remove force-removes the named container together with its anonymous
// volumes. The weights cache survives removal because it is a bind mount.
func (l *Launcher) Remove(ctx context.Context, name string) error {
	logger.Info("Removing container: %s", name)

	options := container.RemoveOptions{
		Force:         true,
		RemoveVolumes: true,
	}

	if err := l.client.ContainerRemove(ctx, name, options); err != nil {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}

	return nil
}

// List returns all containers launched by this tool, including stopped ones.
func (l *Launcher) List(ctx context.Context) ([]ContainerInfo, error) {
	containers, err := l.client.ContainerList(ctx, container.ListOptions{
		All: true,
		Filters: filters.NewArgs(
			filters.Arg("label", LabelManaged+"=true"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	infos := make([]ContainerInfo, 0, len(containers))
	for _, c := range containers {
		name := ""
		if len(c.Names) > 0 {
			// Docker prefixes names with a slash
			name = c.Names[0]
			if len(name) > 0 && name[0] == '/' {
				name = name[1:]
			}
		}

		port := 0
		for _, p := range c.Ports {
			if p.PrivatePort == 8000 {
				port = int(p.PublicPort)
				break
			}
		}

		infos = append(infos, ContainerInfo{
			ID:      c.ID,
			Name:    name,
			Image:   c.Image,
			ModelID: c.Labels[LabelModelID],
			State:   c.State,
			Status:  c.Status,
			Port:    port,
			Created: time.Unix(c.Created, 0),
		})
	}

	return infos, nil
}

// shortID returns the conventional 12-character container ID prefix.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
