package cluster

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/cli/helpers"
	"github.com/studytracker/studyctl/pkg/di"
	"github.com/studytracker/studyctl/pkg/io/configmanager"
	"github.com/studytracker/studyctl/pkg/utils/notify"
)

// NewDeleteCmd creates the cluster delete command.
func NewDeleteCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "delete",
		Short:        "Delete the study-app cluster",
		Long:         `Delete the local study-app k3d cluster. Confirmation is required unless --force is set.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("force", false, "Delete without confirmation")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return handleDeleteRunE(cmd, runtimeContainer)
	}

	return cmd
}

func handleDeleteRunE(cmd *cobra.Command, runtimeContainer *di.Runtime) error {
	out := cmd.OutOrStdout()

	tmr, err := di.ResolveTimer(runtimeContainer.Injector)
	if err != nil {
		return err
	}

	tmr.Start()

	cfg, err := configmanager.NewManager(out).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	provisioner, err := newProvisioner(runtimeContainer, cfg)
	if err != nil {
		return err
	}

	name := cfg.Cluster.Name

	exists, err := provisioner.Exists(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to query existing clusters: %w", err)
	}

	if !exists {
		notify.Infof(out, "cluster %q does not exist, nothing to delete", name)

		return nil
	}

	confirmed, err := confirmDeletion(cmd, runtimeContainer, name)
	if err != nil {
		return err
	}

	if !confirmed {
		notify.Infof(out, "keeping cluster %q", name)

		return nil
	}

	notify.Activityf(out, "deleting cluster %q", name)

	err = provisioner.Delete(cmd.Context(), name)
	if err != nil {
		return fmt.Errorf("failed to delete cluster: %w", err)
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr), "cluster %q deleted", name)

	return nil
}

func confirmDeletion(cmd *cobra.Command, runtimeContainer *di.Runtime, name string) (bool, error) {
	forced, err := cmd.Flags().GetBool("force")
	if err != nil {
		return false, fmt.Errorf("failed to read force flag: %w", err)
	}

	if forced {
		return true, nil
	}

	prompter, err := di.ResolvePrompter(runtimeContainer.Injector)
	if err != nil {
		return false, err
	}

	question := fmt.Sprintf("Delete cluster %q?", name)

	return prompter.Confirm(cmd.OutOrStdout(), question), nil
}
