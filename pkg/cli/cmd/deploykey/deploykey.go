// Package deploykey wires the deploy-key commands.
package deploykey

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/di"
)

// NewDeployKeyCmd creates the parent deploy-key command.
func NewDeployKeyCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "deploy-key",
		Short:        "Manage the study-app repository deploy key",
		Long:         `Manage the SSH deploy key that grants the deployment pipeline access to the study-app repository.`,
		Args:         cobra.NoArgs,
		RunE:         handleDeployKeyRunE,
		SilenceUsage: true,
	}

	cmd.AddCommand(NewAddCmd(runtimeContainer))

	return cmd
}

func handleDeployKeyRunE(cmd *cobra.Command, _ []string) error {
	err := cmd.Help()
	if err != nil {
		return fmt.Errorf("displaying deploy-key command help: %w", err)
	}

	return nil
}
