package cluster

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/di"
	"github.com/studytracker/studyctl/pkg/io/configmanager"
	"github.com/studytracker/studyctl/pkg/utils/notify"
)

// NewListCmd creates the cluster list command.
func NewListCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List k3d clusters on this machine",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return handleListRunE(cmd, runtimeContainer)
	}

	return cmd
}

func handleListRunE(cmd *cobra.Command, runtimeContainer *di.Runtime) error {
	out := cmd.OutOrStdout()

	cfg, err := configmanager.NewManager(out).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	provisioner, err := newProvisioner(runtimeContainer, cfg)
	if err != nil {
		return err
	}

	names, err := provisioner.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list clusters: %w", err)
	}

	if len(names) == 0 {
		notify.Infof(out, "no clusters found")

		return nil
	}

	for _, name := range names {
		fmt.Fprintln(out, name)
	}

	return nil
}
