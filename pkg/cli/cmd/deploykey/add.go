package deploykey

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/cli/helpers"
	"github.com/studytracker/studyctl/pkg/di"
	"github.com/studytracker/studyctl/pkg/io/configmanager"
	"github.com/studytracker/studyctl/pkg/svc/deploykey"
	"github.com/studytracker/studyctl/pkg/utils/notify"
)

// NewAddCmd creates the deploy-key add command.
func NewAddCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Generate an SSH key pair and register it as a deploy key",
		Long: `Generate an ed25519 SSH key pair (unless one already exists) and register ` +
			`the public half as a write-enabled deploy key on the configured repository. ` +
			`Requires GITHUB_OWNER, GITHUB_REPO and DEPLOY_KEY_NAME to be set.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return handleAddRunE(cmd, runtimeContainer)
	}

	return cmd
}

func handleAddRunE(cmd *cobra.Command, runtimeContainer *di.Runtime) error {
	out := cmd.OutOrStdout()

	tmr, err := di.ResolveTimer(runtimeContainer.Injector)
	if err != nil {
		return err
	}

	tmr.Start()

	notify.Titlef(out, "🔑", "Provision deploy key...")

	cfg, err := configmanager.NewManager(out).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	host, err := di.ResolveRepositoryHost(runtimeContainer.Injector)
	if err != nil {
		return err
	}

	provisioner := deploykey.NewProvisioner(cfg, host, out)

	err = provisioner.Run(cmd.Context())
	if err != nil {
		return err
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr), "deploy key provisioning complete")

	return nil
}
