package di

import (
	"github.com/samber/do/v2"
	"github.com/studytracker/studyctl/pkg/cli/ui/confirm"
	"github.com/studytracker/studyctl/pkg/client/repohost"
	"github.com/studytracker/studyctl/pkg/svc/depcheck"
	clusterprovisioner "github.com/studytracker/studyctl/pkg/svc/provisioner/cluster"
	"github.com/studytracker/studyctl/pkg/utils/timer"
)

// NewRuntime constructs the shared runtime container used by the root command and tests.
// It registers default implementations for every dependency command handlers resolve.
func NewRuntime() *Runtime {
	return New(
		provideTimer,
		provideClusterProvisionerFactory,
		providePrompter,
		provideDependencyChecker,
		provideRepositoryHost,
	)
}

// provideTimer registers the timer dependency with the injector.
func provideTimer(i Injector) error {
	do.Provide(i, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// provideClusterProvisionerFactory registers the cluster provisioner factory dependency.
func provideClusterProvisionerFactory(i Injector) error {
	do.Provide(i, func(Injector) (clusterprovisioner.Factory, error) {
		return clusterprovisioner.DefaultFactory{}, nil
	})

	return nil
}

// providePrompter registers the interactive confirmation prompter dependency.
func providePrompter(i Injector) error {
	do.Provide(i, func(Injector) (confirm.Prompter, error) {
		return confirm.NewStdinPrompter(), nil
	})

	return nil
}

// provideDependencyChecker registers the host dependency checker.
func provideDependencyChecker(i Injector) error {
	do.Provide(i, func(Injector) (depcheck.Checker, error) {
		return depcheck.NewDockerChecker(), nil
	})

	return nil
}

// provideRepositoryHost registers the source-hosting service client.
func provideRepositoryHost(i Injector) error {
	do.Provide(i, func(Injector) (repohost.Host, error) {
		return repohost.NewGitHubHost(), nil
	})

	return nil
}
