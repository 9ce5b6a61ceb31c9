// Package di wires the shared runtime dependencies behind a samber/do
// injector so commands and tests can swap implementations.
package di

import (
	"github.com/samber/do/v2"
)

// Injector is the dependency injector used throughout the CLI.
type Injector = do.Injector

// Runtime is the shared dependency container used by the root command and
// tests.
type Runtime struct {
	injector do.Injector
}

// New constructs a Runtime from the given providers. Tests inject fakes by
// passing their own provider set instead of the defaults.
func New(providers ...func(Injector) error) *Runtime {
	injector := do.New()

	for _, provide := range providers {
		// Registration cannot fail at runtime; providers only bind constructors.
		_ = provide(injector)
	}

	return &Runtime{injector: injector}
}

// Injector exposes the underlying injector for resolution.
func (r *Runtime) Injector() Injector {
	return r.injector
}
