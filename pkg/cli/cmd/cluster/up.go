package cluster

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/studytracker/studyctl/pkg/cli/helpers"
	"github.com/studytracker/studyctl/pkg/di"
	"github.com/studytracker/studyctl/pkg/io/configmanager"
	"github.com/studytracker/studyctl/pkg/k8s"
	"github.com/studytracker/studyctl/pkg/k8s/readiness"
	clusterprovisioner "github.com/studytracker/studyctl/pkg/svc/provisioner/cluster"
	"github.com/studytracker/studyctl/pkg/utils/notify"
)

const defaultWaitTimeout = 2 * time.Minute

// NewUpCmd creates the cluster up command, wired to the runtime container.
func NewUpCmd(runtimeContainer *di.Runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "up",
		Short: "Create the study-app cluster and point kubectl at it",
		Long: `Create the study-app k3d cluster from the bundled configuration and switch ` +
			`the kubeconfig current-context to it. An existing cluster is kept unless ` +
			`recreation is confirmed.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("recreate", false, "Delete an existing cluster and recreate it without prompting")
	cmd.Flags().Bool("wait", false, "Wait for a cluster node to become Ready")
	cmd.Flags().Duration("wait-timeout", defaultWaitTimeout, "How long to wait for node readiness")

	cmd.RunE = func(cmd *cobra.Command, _ []string) error {
		return handleUpRunE(cmd, runtimeContainer)
	}

	return cmd
}

// handleUpRunE runs the bootstrap sequence: dependency check, cluster
// reconciliation, context switch, optional readiness wait, follow-up hints.
// Any failing step aborts the run; external state already committed (for
// example a half-created cluster) is left for the next run to pick up.
func handleUpRunE(cmd *cobra.Command, runtimeContainer *di.Runtime) error {
	out := cmd.OutOrStdout()

	tmr, err := di.ResolveTimer(runtimeContainer.Injector)
	if err != nil {
		return err
	}

	tmr.Start()

	notify.Titlef(out, "🚀", "Bootstrap study-app cluster...")

	err = verifyDependencies(cmd.Context(), out, runtimeContainer)
	if err != nil {
		return err
	}

	cfg, err := configmanager.NewManager(out).Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	provisioner, err := newProvisioner(runtimeContainer, cfg)
	if err != nil {
		return err
	}

	err = reconcileCluster(cmd, runtimeContainer, provisioner, cfg)
	if err != nil {
		return err
	}

	err = switchContext(out, cfg)
	if err != nil {
		return err
	}

	err = maybeWaitForNode(cmd, cfg)
	if err != nil {
		return err
	}

	notify.SuccessWithTimerf(out, helpers.MaybeTimer(cmd, tmr), "cluster %q is ready", cfg.Cluster.Name)
	printFollowUpHints(out)

	return nil
}

// verifyDependencies ensures required host tools exist before anything else
// runs. A failure here stops the run before any prompt or cluster mutation.
func verifyDependencies(ctx context.Context, out io.Writer, runtimeContainer *di.Runtime) error {
	checker, err := di.ResolveDependencyChecker(runtimeContainer.Injector)
	if err != nil {
		return err
	}

	verified, err := checker.Check(ctx)
	if err != nil {
		return fmt.Errorf("dependency check failed: %w", err)
	}

	notify.Successf(out, "dependencies verified: %s", strings.Join(verified, ", "))

	return nil
}

func newProvisioner(
	runtimeContainer *di.Runtime,
	cfg *configmanager.Config,
) (clusterprovisioner.ClusterProvisioner, error) {
	factory, err := di.ResolveClusterProvisionerFactory(runtimeContainer.Injector)
	if err != nil {
		return nil, err
	}

	return factory.Create(cfg.Cluster.ConfigPath), nil
}

// reconcileCluster brings the named cluster into existence. An existing
// cluster is kept unless the user confirms recreation (or --recreate is set),
// in which case it is deleted and created again.
func reconcileCluster(
	cmd *cobra.Command,
	runtimeContainer *di.Runtime,
	provisioner clusterprovisioner.ClusterProvisioner,
	cfg *configmanager.Config,
) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	name := cfg.Cluster.Name

	exists, err := provisioner.Exists(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to query existing clusters: %w", err)
	}

	if exists {
		recreate, err := shouldRecreate(cmd, runtimeContainer, name)
		if err != nil {
			return err
		}

		if !recreate {
			notify.Infof(out, "keeping existing cluster %q", name)

			return nil
		}

		notify.Activityf(out, "deleting cluster %q", name)

		err = provisioner.Delete(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to delete cluster: %w", err)
		}
	}

	notify.Activityf(out, "creating cluster %q from %s", name, cfg.Cluster.ConfigPath)

	err = provisioner.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to create cluster: %w", err)
	}

	return nil
}

// shouldRecreate decides whether an existing cluster is torn down. The
// --recreate flag bypasses the interactive prompt; a declined or
// non-interactive prompt keeps the cluster.
func shouldRecreate(cmd *cobra.Command, runtimeContainer *di.Runtime, name string) (bool, error) {
	forced, err := cmd.Flags().GetBool("recreate")
	if err != nil {
		return false, fmt.Errorf("failed to read recreate flag: %w", err)
	}

	if forced {
		return true, nil
	}

	prompter, err := di.ResolvePrompter(runtimeContainer.Injector)
	if err != nil {
		return false, err
	}

	question := fmt.Sprintf("Cluster %q already exists. Delete and recreate it?", name)

	return prompter.Confirm(cmd.OutOrStdout(), question), nil
}

func switchContext(out io.Writer, cfg *configmanager.Config) error {
	err := k8s.SwitchContext(cfg.Cluster.Kubeconfig, cfg.ContextName())
	if err != nil {
		return fmt.Errorf("failed to switch kubectl context: %w", err)
	}

	notify.Infof(out, "kubectl context set to %q", cfg.ContextName())

	return nil
}

// maybeWaitForNode blocks until a node reports Ready when --wait is set.
func maybeWaitForNode(cmd *cobra.Command, cfg *configmanager.Config) error {
	wait, err := cmd.Flags().GetBool("wait")
	if err != nil || !wait {
		return nil
	}

	waitTimeout, err := cmd.Flags().GetDuration("wait-timeout")
	if err != nil {
		waitTimeout = defaultWaitTimeout
	}

	notify.Activityf(cmd.OutOrStdout(), "waiting for a node to become Ready")

	clientset, err := k8s.NewClientsetForContext(cfg.Cluster.Kubeconfig, cfg.ContextName())
	if err != nil {
		return fmt.Errorf("failed to build cluster client: %w", err)
	}

	err = readiness.WaitForNodeReady(cmd.Context(), clientset, waitTimeout)
	if err != nil {
		return fmt.Errorf("node did not become ready: %w", err)
	}

	return nil
}

// printFollowUpHints prints informational next steps. These are advisory
// only, not part of the command's contract.
func printFollowUpHints(out io.Writer) {
	notify.Infof(
		out,
		"next steps:\n"+
			"  kubectl get nodes\n"+
			"  studyctl cluster import backend:dev frontend:dev\n"+
			"  kubectl apply -k manifests/dev\n"+
			"  kubectl get pods -n study-app",
	)
}
