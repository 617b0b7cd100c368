// Package configmanager builds the explicit configuration record used by all commands.
//
// Configuration priority: defaults < optional studyctl.yaml config file <
// environment variables. No code outside this package reads the process
// environment; commands receive the loaded Config.
package configmanager

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
	"github.com/studytracker/studyctl/pkg/fsutil"
)

// DefaultClusterName is the fixed name of the local development cluster.
const DefaultClusterName = "study-app-cluster"

// DefaultClusterConfigFile is the k3d cluster configuration file shipped next
// to the studyctl binary. It is resolved relative to the binary's install
// location, never the invoking shell's working directory.
const DefaultClusterConfigFile = "k3d-config.yaml"

// ErrMissingConfiguration is returned when required configuration values are unset.
var ErrMissingConfiguration = errors.New("missing required configuration")

// Environment variable names honored for deploy key settings. These match the
// variables the original provisioning script consumed, so existing developer
// shells keep working.
const (
	EnvDeployKeyOwner = "GITHUB_OWNER"
	EnvDeployKeyRepo  = "GITHUB_REPO"
	EnvDeployKeyName  = "DEPLOY_KEY_NAME"
)

// ClusterConfig holds settings for the cluster bootstrap procedure.
type ClusterConfig struct {
	// Name is the k3d cluster name.
	Name string `mapstructure:"name"`
	// ConfigPath is the k3d cluster configuration file. Relative values are
	// resolved against the studyctl binary's directory.
	ConfigPath string `mapstructure:"configPath"`
	// Kubeconfig is the kubeconfig file whose current-context is switched
	// after the cluster is up. Defaults to ~/.kube/config.
	Kubeconfig string `mapstructure:"kubeconfig"`
}

// DeployKeyConfig holds settings for the deploy key provisioning procedure.
type DeployKeyConfig struct {
	// Owner is the GitHub organization or user owning the repository.
	Owner string `mapstructure:"owner"`
	// Repo is the repository name the deploy key is registered on.
	Repo string `mapstructure:"repo"`
	// Name is the key file base name and the basis of the deploy key title.
	Name string `mapstructure:"name"`
	// Dir is the directory the key pair is stored in.
	Dir string `mapstructure:"dir"`
}

// Config is the explicit configuration record built once at startup.
type Config struct {
	Cluster   ClusterConfig   `mapstructure:"cluster"`
	DeployKey DeployKeyConfig `mapstructure:"deployKey"`
}

// ContextName returns the kubectl context name for the configured cluster,
// following k3d's "k3d-<cluster>" convention.
func (c *Config) ContextName() string {
	return "k3d-" + c.Cluster.Name
}

// Repository returns the "owner/repo" slug for the deploy key target.
func (c *Config) Repository() string {
	return c.DeployKey.Owner + "/" + c.DeployKey.Repo
}

// ValidateDeployKey checks that all required deploy key settings are present.
// All missing names are collected and reported in one error so the user can
// fix them in a single pass; nothing else runs until validation succeeds.
func (c *Config) ValidateDeployKey() error {
	var missing []string

	if strings.TrimSpace(c.DeployKey.Owner) == "" {
		missing = append(missing, EnvDeployKeyOwner)
	}

	if strings.TrimSpace(c.DeployKey.Repo) == "" {
		missing = append(missing, EnvDeployKeyRepo)
	}

	if strings.TrimSpace(c.DeployKey.Name) == "" {
		missing = append(missing, EnvDeployKeyName)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfiguration, strings.Join(missing, ", "))
	}

	return nil
}

// Test override for the executable path lookup.
var (
	//nolint:gochecknoglobals // dependency injection for tests
	executablePathMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	executablePathOverride string
)

// SetExecutablePathForTests overrides the binary path used to resolve relative
// cluster config paths. Returns a restore function.
func SetExecutablePathForTests(path string) func() {
	executablePathMu.Lock()

	previous := executablePathOverride
	executablePathOverride = path

	executablePathMu.Unlock()

	return func() {
		executablePathMu.Lock()

		executablePathOverride = previous

		executablePathMu.Unlock()
	}
}

func executableDir() (string, error) {
	executablePathMu.RLock()

	override := executablePathOverride

	executablePathMu.RUnlock()

	if override != "" {
		return filepath.Dir(override), nil
	}

	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}

	return filepath.Dir(exe), nil
}

// Manager loads the studyctl configuration via Viper.
type Manager struct {
	Viper  *viper.Viper
	Writer io.Writer

	config *Config
}

// NewManager creates a configuration manager writing notifications to the given writer.
func NewManager(writer io.Writer) *Manager {
	viperInstance := viper.New()

	viperInstance.SetConfigName("studyctl")
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.AddConfigPath("$HOME/.config/studyctl")

	viperInstance.SetEnvPrefix("STUDYCTL")
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	// Legacy variable names from the original provisioning script.
	_ = viperInstance.BindEnv("deployKey.owner", "STUDYCTL_DEPLOYKEY_OWNER", EnvDeployKeyOwner)
	_ = viperInstance.BindEnv("deployKey.repo", "STUDYCTL_DEPLOYKEY_REPO", EnvDeployKeyRepo)
	_ = viperInstance.BindEnv("deployKey.name", "STUDYCTL_DEPLOYKEY_NAME", EnvDeployKeyName)

	viperInstance.SetDefault("cluster.name", DefaultClusterName)
	viperInstance.SetDefault("cluster.configPath", DefaultClusterConfigFile)
	viperInstance.SetDefault("cluster.kubeconfig", "~/.kube/config")
	viperInstance.SetDefault("deployKey.dir", "~/.ssh/study-deploy-keys")

	return &Manager{Viper: viperInstance, Writer: writer}
}

// Load reads configuration from file and environment and returns the resolved
// Config. The result is cached; subsequent calls return the same record.
func (m *Manager) Load() (*Config, error) {
	if m.config != nil {
		return m.config, nil
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		// A missing config file is fine; defaults and environment apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	err = m.Viper.Unmarshal(&cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	err = resolvePaths(&cfg)
	if err != nil {
		return nil, err
	}

	m.config = &cfg

	return m.config, nil
}

// resolvePaths expands home-relative paths and anchors the cluster config file
// to the binary's install directory when given as a relative path.
func resolvePaths(cfg *Config) error {
	kubeconfig, err := fsutil.ExpandHomePath(cfg.Cluster.Kubeconfig)
	if err != nil {
		return fmt.Errorf("resolve kubeconfig path: %w", err)
	}

	cfg.Cluster.Kubeconfig = kubeconfig

	keyDir, err := fsutil.ExpandHomePath(cfg.DeployKey.Dir)
	if err != nil {
		return fmt.Errorf("resolve deploy key directory: %w", err)
	}

	cfg.DeployKey.Dir = keyDir

	if !filepath.IsAbs(cfg.Cluster.ConfigPath) {
		baseDir, err := executableDir()
		if err != nil {
			return err
		}

		cfg.Cluster.ConfigPath = filepath.Join(baseDir, cfg.Cluster.ConfigPath)
	}

	return nil
}
