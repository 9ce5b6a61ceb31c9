package di

import (
	"github.com/Vakrehus/searxup/pkg/svc/provider"
	"github.com/Vakrehus/searxup/pkg/svc/provider/docker"
	"github.com/Vakrehus/searxup/pkg/svc/provisioner"
	"github.com/Vakrehus/searxup/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// ProviderFactory creates the target control backend for a run.
type ProviderFactory func() (provider.Provider, error)

// ProvisionerFactory creates the step sequencer for a run.
type ProvisionerFactory func() *provisioner.Provisioner

// NewRuntime constructs the shared runtime container with default
// implementations: wall-clock timer, Docker backend and the full step
// sequence.
func NewRuntime() *Runtime {
	return New(
		ProvideTimer,
		ProvideProviderFactory,
		ProvideProvisionerFactory,
	)
}

// ProvideTimer registers the timer dependency with the injector.
func ProvideTimer(injector Injector) error {
	do.Provide(injector, func(Injector) (timer.Timer, error) {
		return timer.New(), nil
	})

	return nil
}

// ProvideProviderFactory registers the Docker-backed provider factory.
func ProvideProviderFactory(injector Injector) error {
	do.Provide(injector, func(Injector) (ProviderFactory, error) {
		return func() (provider.Provider, error) {
			cli, err := docker.NewClient()
			if err != nil {
				return nil, err
			}

			return docker.NewProvider(cli), nil
		}, nil
	})

	return nil
}

// ProvideProvisionerFactory registers the full-sequence provisioner factory.
func ProvideProvisionerFactory(injector Injector) error {
	do.Provide(injector, func(Injector) (ProvisionerFactory, error) {
		return provisioner.New, nil
	})

	return nil
}
