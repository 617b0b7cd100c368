package helpers_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/cli/helpers"
	"github.com/studytracker/studyctl/pkg/utils/timer"
	"github.com/stretchr/testify/require"
)

func newTimingCmd(enabled bool) *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool(helpers.TimingFlagName, enabled, "")

	return cmd
}

func TestMaybeTimer_FlagSet(t *testing.T) {
	t.Parallel()

	tmr := timer.New()
	require.Equal(t, tmr, helpers.MaybeTimer(newTimingCmd(true), tmr))
}

func TestMaybeTimer_FlagUnset(t *testing.T) {
	t.Parallel()

	require.Nil(t, helpers.MaybeTimer(newTimingCmd(false), timer.New()))
}

func TestMaybeTimer_FlagMissing(t *testing.T) {
	t.Parallel()

	require.Nil(t, helpers.MaybeTimer(&cobra.Command{Use: "bare"}, timer.New()))
}
