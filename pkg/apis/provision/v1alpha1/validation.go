package v1alpha1

import (
	"errors"
	"fmt"
)

// Validation error definitions.
var (
	// ErrTargetNameEmpty is returned when the target name is empty.
	ErrTargetNameEmpty = errors.New("target name must not be empty")
	// ErrTargetImageEmpty is returned when the target image is empty.
	ErrTargetImageEmpty = errors.New("target image must not be empty")
	// ErrInvalidSizing is returned when a sizing parameter is not positive.
	ErrInvalidSizing = errors.New("sizing parameter must be positive")
	// ErrInvalidPort is returned when the service port is outside the valid range.
	ErrInvalidPort = errors.New("service port must be between 1 and 65535")
	// ErrBindAddressEmpty is returned when the bind address is empty.
	ErrBindAddressEmpty = errors.New("service bind address must not be empty")
	// ErrCacheURLEmpty is returned when the cache connection URL is empty.
	ErrCacheURLEmpty = errors.New("service cache URL must not be empty")
	// ErrEngineIncomplete is returned when an engine entry misses a field.
	ErrEngineIncomplete = errors.New("engine entry requires name, driver and shortcut")
	// ErrDuplicateShortcut is returned when two engines share a shortcut.
	ErrDuplicateShortcut = errors.New("engine shortcuts must be unique")
)

const maxPort = 65535

// Validate checks the provisioning document for structural errors.
func (p *Provision) Validate() error {
	err := p.Spec.Target.Validate()
	if err != nil {
		return err
	}

	return p.Spec.Service.Validate()
}

// Validate checks the target spec for structural errors.
func (t *TargetSpec) Validate() error {
	if t.Name == "" {
		return ErrTargetNameEmpty
	}

	if t.Image == "" {
		return ErrTargetImageEmpty
	}

	return t.Sizing.Validate()
}

// Validate checks that all sizing parameters are positive.
func (s *Sizing) Validate() error {
	for name, value := range map[string]int{
		"cores":    s.Cores,
		"memoryMB": s.MemoryMB,
		"swapMB":   s.SwapMB,
		"diskGB":   s.DiskGB,
	} {
		if value <= 0 {
			return fmt.Errorf("%w: %s=%d", ErrInvalidSizing, name, value)
		}
	}

	return nil
}

// Validate checks the service spec for structural errors.
func (s *ServiceSpec) Validate() error {
	if s.BindAddress == "" {
		return ErrBindAddressEmpty
	}

	if s.Port < 1 || s.Port > maxPort {
		return fmt.Errorf("%w: got %d", ErrInvalidPort, s.Port)
	}

	if s.CacheURL == "" {
		return ErrCacheURLEmpty
	}

	seen := make(map[string]struct{}, len(s.Engines))

	for _, engine := range s.Engines {
		if engine.Name == "" || engine.Driver == "" || engine.Shortcut == "" {
			return fmt.Errorf("%w: %+v", ErrEngineIncomplete, engine)
		}

		if _, exists := seen[engine.Shortcut]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateShortcut, engine.Shortcut)
		}

		seen[engine.Shortcut] = struct{}{}
	}

	return nil
}
