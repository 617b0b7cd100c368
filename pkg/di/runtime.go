// Package di wires shared dependencies into a runtime container for command handlers.
package di

import (
	"fmt"

	"github.com/samber/do/v2"
)

// Injector is the dependency injector used throughout the CLI.
type Injector = do.Injector

// Runtime is the shared dependency container used by the root command and tests.
type Runtime struct {
	Injector Injector
}

// Provider registers one dependency with the injector.
type Provider func(Injector) error

// New constructs a Runtime and applies the given providers in order.
// A provider failure panics: registration errors are programming errors,
// not runtime conditions.
func New(providers ...Provider) *Runtime {
	injector := do.New()

	for _, provider := range providers {
		err := provider(injector)
		if err != nil {
			panic(fmt.Sprintf("di: register dependency: %v", err))
		}
	}

	return &Runtime{Injector: injector}
}
