package depcheck_test

import (
	"context"
	"errors"
	"testing"

	"github.com/studytracker/studyctl/pkg/svc/depcheck"
	"github.com/stretchr/testify/require"
)

var (
	errNotFound    = errors.New("executable file not found in $PATH")
	errConnRefused = errors.New("connection refused")
)

func TestCheck_AllDependenciesPresent(t *testing.T) {
	t.Parallel()

	checker := depcheck.NewCheckerWithProbes(
		func(string) (string, error) { return "/usr/bin/docker", nil },
		func(context.Context) error { return nil },
	)

	verified, err := checker.Check(t.Context())
	require.NoError(t, err)
	require.Equal(t, []string{"docker", "docker daemon"}, verified)
}

func TestCheck_MissingBinaryFailsFast(t *testing.T) {
	t.Parallel()

	pinged := false

	checker := depcheck.NewCheckerWithProbes(
		func(string) (string, error) { return "", errNotFound },
		func(context.Context) error {
			pinged = true

			return nil
		},
	)

	_, err := checker.Check(t.Context())
	require.ErrorIs(t, err, depcheck.ErrMissingDependency)
	require.ErrorContains(t, err, "docker")
	require.False(t, pinged, "daemon ping must not run after a failed binary check")
}

func TestCheck_DaemonUnreachable(t *testing.T) {
	t.Parallel()

	checker := depcheck.NewCheckerWithProbes(
		func(string) (string, error) { return "/usr/bin/docker", nil },
		func(context.Context) error { return errConnRefused },
	)

	_, err := checker.Check(t.Context())
	require.ErrorIs(t, err, depcheck.ErrDaemonUnavailable)
	require.ErrorIs(t, err, errConnRefused)
}
