package cluster

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/cli/helpers"
	"github.com/studytracker/studyctl/pkg/di"
	"github.com/studytracker/studyctl/pkg/io/configmanager"
	"github.com/studytracker/studyctl/pkg/utils/notify"
)

// NewImportCmd creates the cluster import command.
func NewImportCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import IMAGE [IMAGE...]",
		Short: "Import locally built images into the study-app cluster",
		Long: `Import container images from the local Docker daemon into the study-app ` +
			`k3d cluster so deployments can use them without a registry.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return handleImportRunE(cmd, runtimeContainer, args)
	}

	return cmd
}

func handleImportRunE(cmd *cobra.Command, runtimeContainer *di.Runtime, images []string) error {
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

	notify.Activityf(out, "importing %s into cluster %q", strings.Join(images, ", "), cfg.Cluster.Name)

	err = provisioner.ImportImages(cmd.Context(), cfg.Cluster.Name, images)
	if err != nil {
		return fmt.Errorf("failed to import images: %w", err)
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr), "imported %d image(s)", len(images))

	return nil
}
