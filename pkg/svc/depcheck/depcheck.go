// Package depcheck verifies host-side dependencies before cluster operations run.
package depcheck

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/docker/docker/client"
)

// ErrMissingDependency is returned when a required external tool is not installed.
var ErrMissingDependency = errors.New("missing dependency")

// ErrDaemonUnavailable is returned when the Docker daemon does not answer.
var ErrDaemonUnavailable = errors.New("docker daemon unavailable")

// Checker validates that the external tools a procedure needs are available.
// The first failed check aborts; later checks do not run.
type Checker interface {
	// Check validates all dependencies and returns the names that were verified.
	Check(ctx context.Context) ([]string, error)
}

// DockerChecker verifies the Docker CLI is on PATH and the daemon answers a ping.
// k3d is embedded as a library, so the Docker engine is the only host-side
// dependency of the cluster procedure.
type DockerChecker struct {
	lookPath func(file string) (string, error)
	ping     func(ctx context.Context) error
}

// NewDockerChecker constructs a checker backed by the real PATH and Docker daemon.
func NewDockerChecker() *DockerChecker {
	return &DockerChecker{
		lookPath: exec.LookPath,
		ping:     pingDockerDaemon,
	}
}

// NewCheckerWithProbes constructs a checker with injected probes for testing.
func NewCheckerWithProbes(
	lookPath func(file string) (string, error),
	ping func(ctx context.Context) error,
) *DockerChecker {
	return &DockerChecker{lookPath: lookPath, ping: ping}
}

// Check verifies the docker binary and daemon in order, failing fast on the
// first missing dependency. On success it returns the verified dependency names.
func (c *DockerChecker) Check(ctx context.Context) ([]string, error) {
	_, err := c.lookPath("docker")
	if err != nil {
		return nil, fmt.Errorf("%w: docker not found on PATH: %w", ErrMissingDependency, err)
	}

	err = c.ping(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDaemonUnavailable, err)
	}

	return []string{"docker", "docker daemon"}, nil
}

// pingDockerDaemon opens a Docker client from the environment and pings the daemon.
func pingDockerDaemon(ctx context.Context) error {
	dockerClient, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return fmt.Errorf("create docker client: %w", err)
	}

	defer func() { _ = dockerClient.Close() }()

	_, err = dockerClient.Ping(ctx)
	if err != nil {
		return fmt.Errorf("ping docker daemon: %w", err)
	}

	return nil
}
