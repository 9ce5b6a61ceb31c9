package di

import (
	"fmt"

	"github.com/Vakrehus/searxup/pkg/utils/timer"
	"github.com/samber/do/v2"
)

// ResolveTimer retrieves the timer dependency from the injector.
func ResolveTimer(injector Injector) (timer.Timer, error) {
	tmr, err := do.Invoke[timer.Timer](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve timer dependency: %w", err)
	}

	return tmr, nil
}

// ResolveProviderFactory retrieves the provider factory dependency from the
// injector.
func ResolveProviderFactory(injector Injector) (ProviderFactory, error) {
	factory, err := do.Invoke[ProviderFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve provider factory dependency: %w", err)
	}

	return factory, nil
}

// ResolveProvisionerFactory retrieves the provisioner factory dependency from
// the injector.
func ResolveProvisionerFactory(injector Injector) (ProvisionerFactory, error) {
	factory, err := do.Invoke[ProvisionerFactory](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve provisioner factory dependency: %w", err)
	}

	return factory, nil
}
