package di

import (
	"fmt"

	"github.com/samber/do/v2"
	"github.com/studytracker/studyctl/pkg/cli/ui/confirm"
	"github.com/studytracker/studyctl/pkg/client/repohost"
	"github.com/studytracker/studyctl/pkg/svc/depcheck"
	clusterprovisioner "github.com/studytracker/studyctl/pkg/svc/provisioner/cluster"
	"github.com/studytracker/studyctl/pkg/utils/timer"
)

// ResolveTimer retrieves the timer dependency from the injector with consistent error handling.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveClusterProvisionerFactory retrieves the cluster provisioner factory dependency
// from the injector with consistent error handling.
func ResolveClusterProvisionerFactory(injector Injector) (clusterprovisioner.Factory, error) {
	factory, err := do.Invoke[clusterprovisioner.Factory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve provisioner factory dependency: %w", err)
	}

	return factory, nil
}

// ResolvePrompter retrieves the confirmation prompter dependency from the injector.
func ResolvePrompter(injector Injector) (confirm.Prompter, error) {
	prompter, err := do.Invoke[confirm.Prompter](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve prompter dependency: %w", err)
	}

	return prompter, nil
}

// ResolveDependencyChecker retrieves the host dependency checker from the injector.
func ResolveDependencyChecker(injector Injector) (depcheck.Checker, error) {
	checker, err := do.Invoke[depcheck.Checker](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve dependency checker: %w", err)
	}

	return checker, nil
}

// ResolveRepositoryHost retrieves the source-hosting service client from the injector.
func ResolveRepositoryHost(injector Injector) (repohost.Host, error) {
	host, err := do.Invoke[repohost.Host](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve repository host dependency: %w", err)
	}

	return host, nil
}
