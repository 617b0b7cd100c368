// Package helpers provides small shared utilities for command handlers.
package helpers

import (
	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/utils/timer"
)

// TimingFlagName is the persistent flag toggling timing output on success messages.
const TimingFlagName = "timing"

// MaybeTimer returns the timer when the timing flag is set, nil otherwise.
// Passing a nil timer to notify suppresses the timing block.
func MaybeTimer(cmd *cobra.Command, tmr timer.Timer) timer.Timer {
	enabled, err := cmd.Flags().GetBool(TimingFlagName)
	if err != nil || !enabled {
		return nil
	}

	return tmr
}
