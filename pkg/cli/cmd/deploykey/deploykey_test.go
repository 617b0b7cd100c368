package deploykey_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/samber/do/v2"
	deploykeypkg "github.com/studytracker/studyctl/pkg/cli/cmd/deploykey"
	"github.com/studytracker/studyctl/pkg/client/repohost"
	"github.com/studytracker/studyctl/pkg/di"
	"github.com/studytracker/studyctl/pkg/io/configmanager"
	"github.com/studytracker/studyctl/pkg/utils/timer"
	"github.com/stretchr/testify/require"
)

// fakeHost records deploy key registrations without touching the network.
type fakeHost struct {
	authErr error
	added   []repohost.DeployKey
}

func (f *fakeHost) IsAuthenticated() error { return f.authErr }

func (f *fakeHost) AddDeployKey(_ context.Context, _, _ string, key repohost.DeployKey) error {
	f.added = append(f.added, key)

	return nil
}

func (f *fakeHost) ListDeployKeyTitles(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func newTestRuntimeContainer(t *testing.T, host *fakeHost) *di.Runtime {
	t.Helper()

	return di.New(
		func(i di.Injector) error {
			do.Provide(i, func(di.Injector) (timer.Timer, error) {
				return timer.New(), nil
			})

			return nil
		},
		func(i di.Injector) error {
			do.Provide(i, func(di.Injector) (repohost.Host, error) {
				return host, nil
			})

			return nil
		},
	)
}

func setupDeployKeyEnvironment(t *testing.T) (keyDir string) {
	t.Helper()

	keyDir = filepath.Join(t.TempDir(), "keys")

	t.Setenv(configmanager.EnvDeployKeyOwner, "studytracker")
	t.Setenv(configmanager.EnvDeployKeyRepo, "study-app")
	t.Setenv(configmanager.EnvDeployKeyName, "study-app-deploy")
	t.Setenv("STUDYCTL_DEPLOYKEY_DIR", keyDir)

	return keyDir
}

//nolint:paralleltest // uses t.Setenv
func TestAdd_GeneratesKeyAndRegistersIt(t *testing.T) {
	keyDir := setupDeployKeyEnvironment(t)

	host := &fakeHost{}
	cmd := deploykeypkg.NewAddCmd(newTestRuntimeContainer(t, host))

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)

	require.NoError(t, cmd.ExecuteContext(t.Context()))

	publicKey, err := os.ReadFile(filepath.Join(keyDir, "study-app-deploy.pub"))
	require.NoError(t, err)
	require.Contains(t, string(publicKey), "ssh-ed25519")

	require.Len(t, host.added, 1)
	require.Equal(t, "study-app-deploy (studyctl)", host.added[0].Title)
	require.False(t, host.added[0].ReadOnly)
	require.Contains(t, out.String(), "deploy key provisioning complete")
}

//nolint:paralleltest // uses t.Setenv
func TestAdd_MissingConfigurationReportsAllNames(t *testing.T) {
	t.Setenv(configmanager.EnvDeployKeyOwner, "")
	t.Setenv(configmanager.EnvDeployKeyRepo, "")
	t.Setenv(configmanager.EnvDeployKeyName, "")
	t.Setenv("STUDYCTL_DEPLOYKEY_DIR", filepath.Join(t.TempDir(), "keys"))

	host := &fakeHost{}
	cmd := deploykeypkg.NewAddCmd(newTestRuntimeContainer(t, host))

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)

	err := cmd.ExecuteContext(t.Context())
	require.ErrorIs(t, err, configmanager.ErrMissingConfiguration)
	require.ErrorContains(t, err, configmanager.EnvDeployKeyOwner)
	require.ErrorContains(t, err, configmanager.EnvDeployKeyRepo)
	require.ErrorContains(t, err, configmanager.EnvDeployKeyName)
	require.Empty(t, host.added)
}

//nolint:paralleltest // uses t.Setenv
func TestAdd_NotAuthenticatedStopsBeforeAnySideEffect(t *testing.T) {
	keyDir := setupDeployKeyEnvironment(t)

	host := &fakeHost{authErr: repohost.ErrNotAuthenticated}
	cmd := deploykeypkg.NewAddCmd(newTestRuntimeContainer(t, host))

	var out bytes.Buffer

	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(nil)

	err := cmd.ExecuteContext(t.Context())
	require.ErrorIs(t, err, repohost.ErrNotAuthenticated)
	require.NoDirExists(t, keyDir)
	require.Empty(t, host.added)
}
