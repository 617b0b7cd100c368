// Package cmd assembles the studyctl command tree.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/cli/cmd/cluster"
	"github.com/studytracker/studyctl/pkg/cli/cmd/deploykey"
	"github.com/studytracker/studyctl/pkg/cli/helpers"
	"github.com/studytracker/studyctl/pkg/cli/ui/errorhandler"
	"github.com/studytracker/studyctl/pkg/di"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string) *cobra.Command {
	runtimeContainer := di.NewRuntime()

	cmd := &cobra.Command{
		Use:          "studyctl",
		Short:        "studyctl bootstraps the study-tracker local development environment",
		Long: "studyctl bootstraps the study-tracker local development environment: " +
			"a k3d cluster for running the app and a GitHub deploy key for pulling it.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.PersistentFlags().Bool(
		helpers.TimingFlagName,
		false,
		"Show timing output on success messages",
	)

	cmd.AddCommand(cluster.NewClusterCmd(runtimeContainer))
	cmd.AddCommand(deploykey.NewDeployKeyCmd(runtimeContainer))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.Execute(cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// handleRootRunE handles the root command by printing help.
func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// The err can safely be ignored, as it can never fail at runtime.
	_ = cmd.Help()

	return nil
}
