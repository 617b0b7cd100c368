// Package k3dprovisioner drives k3d lifecycle operations through k3d's
// embedded Cobra commands.
package k3dprovisioner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	clustercommand "github.com/k3d-io/k3d/v5/cmd/cluster"
	imagecommand "github.com/k3d-io/k3d/v5/cmd/image"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/utils/runner"
)

var (
	// listMutex protects concurrent access to os.Stdout during List operations.
	// k3d writes directly to os.Stdout before Cobra's output redirection takes effect.
	listMutex sync.Mutex //nolint:gochecknoglobals // Required for thread-safe stdout manipulation

	// logrusConfigOnce ensures logrus is configured exactly once to avoid data races.
	logrusConfigOnce sync.Once //nolint:gochecknoglobals // Required for one-time logrus initialization
)

// Provisioner executes k3d lifecycle commands via Cobra.
type Provisioner struct {
	configPath string
	runner     runner.CommandRunner
}

// NewProvisioner constructs a command-backed provisioner for the given
// cluster configuration file.
func NewProvisioner(configPath string) *Provisioner {
	// k3d uses logrus for its console output, so it has to be set up once.
	logrusConfigOnce.Do(func() {
		logrus.SetOutput(os.Stdout)
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:      true,
			DisableTimestamp: false,
			FullTimestamp:    false,
			TimestampFormat:  "2006-01-02T15:04:05Z",
		})
		logrus.SetLevel(logrus.InfoLevel)
	})

	return &Provisioner{
		configPath: configPath,
		runner:     runner.NewCobraCommandRunner(nil, nil),
	}
}

// Create provisions a k3d cluster from the configuration file.
func (p *Provisioner) Create(ctx context.Context, name string) error {
	args := p.appendConfigFlag(nil)

	return p.runLifecycleCommand(ctx, clustercommand.NewCmdClusterCreate, args, name, "cluster create")
}

// Delete removes a k3d cluster via the Cobra command.
func (p *Provisioner) Delete(ctx context.Context, name string) error {
	return p.runLifecycleCommand(ctx, clustercommand.NewCmdClusterDelete, nil, name, "cluster delete")
}

// List returns cluster names reported by the Cobra command.
func (p *Provisioner) List(ctx context.Context) ([]string, error) {
	// Temporarily silence logrus so JSON output stays parseable.
	originalLogOutput := logrus.StandardLogger().Out

	logrus.SetOutput(io.Discard)
	defer logrus.SetOutput(originalLogOutput)

	// Lock to prevent concurrent modifications of os.Stdout.
	listMutex.Lock()

	originalStdout := os.Stdout

	pipeReader, pipeWriter, err := os.Pipe()
	if err != nil {
		listMutex.Unlock()

		return nil, fmt.Errorf("cluster list: create stdout pipe: %w", err)
	}

	os.Stdout = pipeWriter

	output, runErr := p.runListCommand(ctx)

	// Close write end before reading and restore stdout while still holding the lock.
	_ = pipeWriter.Close()
	os.Stdout = originalStdout

	listMutex.Unlock()

	// Discard whatever k3d wrote straight to the real stdout.
	_, copyErr := io.Copy(io.Discard, pipeReader)
	_ = pipeReader.Close()

	if copyErr != nil {
		logrus.WithError(copyErr).Debug("failed to drain stdout pipe when listing k3d clusters")
	}

	if runErr != nil {
		return nil, fmt.Errorf("cluster list: %w", runErr)
	}

	return parseClusterNames(output)
}

// Exists returns whether the target cluster is present. The cluster manager
// is queried fresh on every call.
func (p *Provisioner) Exists(ctx context.Context, name string) (bool, error) {
	clusters, err := p.List(ctx)
	if err != nil {
		return false, fmt.Errorf("list: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		return false, nil
	}

	return slices.Contains(clusters, name), nil
}

// ImportImages loads locally built images into the named cluster's nodes.
func (p *Provisioner) ImportImages(ctx context.Context, name string, images []string) error {
	if len(images) == 0 {
		return nil
	}

	args := slices.Clone(images)
	if strings.TrimSpace(name) != "" {
		args = append(args, "--cluster", name)
	}

	_, err := p.runner.Run(ctx, imagecommand.NewCmdImageImport(), args)
	if err != nil {
		return fmt.Errorf("image import: %w", err)
	}

	return nil
}

// runListCommand executes the k3d cluster list command and returns the output.
func (p *Provisioner) runListCommand(ctx context.Context) (string, error) {
	cmd := clustercommand.NewCmdClusterList()
	args := []string{"--output", "json"}

	var buf bytes.Buffer

	listRunner := runner.NewCobraCommandRunner(&buf, io.Discard)

	res, runErr := listRunner.Run(ctx, cmd, args)
	if runErr != nil {
		return "", fmt.Errorf("run k3d cluster list: %w", runErr)
	}

	return strings.TrimSpace(res.Stdout), nil
}

// parseClusterNames parses JSON output and extracts cluster names.
func parseClusterNames(output string) ([]string, error) {
	if output == "" {
		return nil, nil
	}

	var entries []struct {
		Name string `json:"name"`
	}

	decodeErr := json.Unmarshal([]byte(output), &entries)
	if decodeErr != nil {
		return nil, fmt.Errorf("cluster list: parse output: %w", decodeErr)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Name != "" {
			names = append(names, entry.Name)
		}
	}

	return names, nil
}

func (p *Provisioner) appendConfigFlag(args []string) []string {
	if p.configPath == "" {
		return args
	}

	return append(args, "--config", p.configPath)
}

func (p *Provisioner) runLifecycleCommand(
	ctx context.Context,
	builder func() *cobra.Command,
	args []string,
	name string,
	errorPrefix string,
) error {
	cmd := builder()

	if strings.TrimSpace(name) != "" {
		args = append(args, name)
	}

	_, runErr := p.runner.Run(ctx, cmd, args)
	if runErr != nil {
		return fmt.Errorf("%s: %w", errorPrefix, runErr)
	}

	return nil
}
