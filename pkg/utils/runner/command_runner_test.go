package runner_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/utils/runner"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestRun_CapturesAndStreamsOutput(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use: "echoer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("to stdout")
			cmd.PrintErrln("to stderr")

			return nil
		},
	}

	var stdout, stderr bytes.Buffer

	cmdRunner := runner.NewCobraCommandRunner(&stdout, &stderr)

	result, err := cmdRunner.Run(t.Context(), cmd, nil)
	require.NoError(t, err)

	require.Contains(t, result.Stdout, "to stdout")
	require.Contains(t, result.Stderr, "to stderr")
	require.Contains(t, stdout.String(), "to stdout")
	require.Contains(t, stderr.String(), "to stderr")
}

func TestRun_ReturnsOutputCollectedBeforeFailure(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{
		Use: "failer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Println("partial output")

			return errBoom
		},
	}

	cmdRunner := runner.NewCobraCommandRunner(&bytes.Buffer{}, &bytes.Buffer{})

	result, err := cmdRunner.Run(t.Context(), cmd, nil)
	require.ErrorIs(t, err, errBoom)
	require.Contains(t, result.Stdout, "partial output")
}

func TestRun_PassesArgs(t *testing.T) {
	t.Parallel()

	var got []string

	cmd := &cobra.Command{
		Use: "args",
		RunE: func(_ *cobra.Command, args []string) error {
			got = args

			return nil
		},
	}

	cmdRunner := runner.NewCobraCommandRunner(&bytes.Buffer{}, &bytes.Buffer{})

	_, err := cmdRunner.Run(t.Context(), cmd, []string{"a", "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got)
}
