package deploykey_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/studytracker/studyctl/pkg/client/repohost"
	"github.com/studytracker/studyctl/pkg/io/configmanager"
	"github.com/studytracker/studyctl/pkg/svc/deploykey"
	"github.com/stretchr/testify/require"
)

var errListFailed = errors.New("list failed")

// fakeHost records deploy key operations without touching the network.
type fakeHost struct {
	authErr  error
	listErr  error
	titles   []string
	added    []repohost.DeployKey
	listSeen int
}

func (f *fakeHost) IsAuthenticated() error { return f.authErr }

func (f *fakeHost) AddDeployKey(_ context.Context, _, _ string, key repohost.DeployKey) error {
	f.added = append(f.added, key)

	return nil
}

func (f *fakeHost) ListDeployKeyTitles(_ context.Context, _, _ string) ([]string, error) {
	f.listSeen++

	return f.titles, f.listErr
}

func testConfig(t *testing.T) *configmanager.Config {
	t.Helper()

	cfg := &configmanager.Config{}
	cfg.DeployKey.Owner = "studytracker"
	cfg.DeployKey.Repo = "study-app"
	cfg.DeployKey.Name = "study-app-deploy"
	cfg.DeployKey.Dir = filepath.Join(t.TempDir(), "keys")

	return cfg
}

func TestRun_HappyPath(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	host := &fakeHost{}
	var buf bytes.Buffer

	provisioner := deploykey.NewProvisioner(cfg, host, &buf)

	require.NoError(t, provisioner.Run(t.Context()))

	privateKey, err := os.ReadFile(provisioner.PrivateKeyPath())
	require.NoError(t, err)
	require.Contains(t, string(privateKey), "OPENSSH PRIVATE KEY")

	publicKey, err := os.ReadFile(provisioner.PublicKeyPath())
	require.NoError(t, err)
	require.Contains(t, string(publicKey), "ssh-ed25519")

	info, err := os.Stat(provisioner.PrivateKeyPath())
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	require.Len(t, host.added, 1)
	require.Equal(t, "study-app-deploy (studyctl)", host.added[0].Title)
	require.Equal(t, string(publicKey), host.added[0].Key)
	require.False(t, host.added[0].ReadOnly, "deploy key must have write access")
}

func TestRun_MissingConfigurationFailsBeforeAnySideEffect(t *testing.T) {
	t.Parallel()

	cfg := &configmanager.Config{}
	cfg.DeployKey.Dir = filepath.Join(t.TempDir(), "keys")

	host := &fakeHost{}
	provisioner := deploykey.NewProvisioner(cfg, host, &bytes.Buffer{})

	err := provisioner.Run(t.Context())
	require.ErrorIs(t, err, configmanager.ErrMissingConfiguration)

	require.NoDirExists(t, cfg.DeployKey.Dir)
	require.Empty(t, host.added)
	require.Zero(t, host.listSeen)
}

func TestRun_NotAuthenticatedFailsBeforeAnySideEffect(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	host := &fakeHost{authErr: repohost.ErrNotAuthenticated}
	provisioner := deploykey.NewProvisioner(cfg, host, &bytes.Buffer{})

	err := provisioner.Run(t.Context())
	require.ErrorIs(t, err, repohost.ErrNotAuthenticated)
	require.NoDirExists(t, cfg.DeployKey.Dir)
	require.Empty(t, host.added)
}

func TestRun_ExistingKeyMaterialIsNeverOverwritten(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.DeployKey.Dir, 0o700))

	host := &fakeHost{}
	provisioner := deploykey.NewProvisioner(cfg, host, &bytes.Buffer{})

	privatePath := provisioner.PrivateKeyPath()
	publicPath := provisioner.PublicKeyPath()

	require.NoError(t, os.WriteFile(privatePath, []byte("existing private"), 0o600))
	require.NoError(t, os.WriteFile(publicPath, []byte("ssh-ed25519 AAAA existing"), 0o644))

	require.NoError(t, provisioner.Run(t.Context()))

	privateKey, err := os.ReadFile(privatePath)
	require.NoError(t, err)
	require.Equal(t, "existing private", string(privateKey))

	require.Len(t, host.added, 1)
	require.Equal(t, "ssh-ed25519 AAAA existing", host.added[0].Key)
}

func TestRun_PartialKeyMaterialSkipsGeneration(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	require.NoError(t, os.MkdirAll(cfg.DeployKey.Dir, 0o700))

	host := &fakeHost{}
	provisioner := deploykey.NewProvisioner(cfg, host, &bytes.Buffer{})

	// Only the private half exists: generation is skipped and registration
	// fails because there is no public key to upload.
	require.NoError(t, os.WriteFile(provisioner.PrivateKeyPath(), []byte("existing"), 0o600))

	err := provisioner.Run(t.Context())
	require.Error(t, err)
	require.ErrorContains(t, err, "read public key")

	privateKey, readErr := os.ReadFile(provisioner.PrivateKeyPath())
	require.NoError(t, readErr)
	require.Equal(t, "existing", string(privateKey))
	require.Empty(t, host.added)
}

func TestRun_DuplicateTitleWarnsButStillRegisters(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	host := &fakeHost{titles: []string{"study-app-deploy (studyctl)"}}
	var buf bytes.Buffer

	provisioner := deploykey.NewProvisioner(cfg, host, &buf)

	require.NoError(t, provisioner.Run(t.Context()))
	require.Len(t, host.added, 1)
	require.Contains(t, buf.String(), "already exists")
}

func TestRun_ListFailureDoesNotBlockRegistration(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	host := &fakeHost{listErr: errListFailed}
	var buf bytes.Buffer

	provisioner := deploykey.NewProvisioner(cfg, host, &buf)

	require.NoError(t, provisioner.Run(t.Context()))
	require.Len(t, host.added, 1)
	require.Contains(t, buf.String(), "could not check for existing deploy keys")
}
