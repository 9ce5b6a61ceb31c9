package provisioner

import (
	"context"
	"fmt"
)

// createTargetStep allocates the target with the requested sizing.
type createTargetStep struct{}

func (s *createTargetStep) Name() string { return "create_target" }

func (s *createTargetStep) Check(ctx context.Context, run *Run) (bool, error) {
	exists, err := run.Provider.TargetExists(ctx, run.TargetName())
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBackend, err)
	}

	return exists, nil
}

func (s *createTargetStep) Apply(ctx context.Context, run *Run) error {
	err := run.Provider.CreateTarget(
		ctx,
		run.Provision.Spec.Target,
		run.Provision.Spec.Service.Port,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}

	return nil
}

// startTargetStep starts the target and records its address once reachable.
type startTargetStep struct{}

func (s *startTargetStep) Name() string { return "start_target" }

// Check resolves the address when the target is already running, so the
// address is populated on re-runs that skip the start.
func (s *startTargetStep) Check(ctx context.Context, run *Run) (bool, error) {
	running, err := run.Provider.TargetRunning(ctx, run.TargetName())
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBackend, err)
	}

	if !running {
		return false, nil
	}

	err = s.resolveAddress(ctx, run)
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *startTargetStep) Apply(ctx context.Context, run *Run) error {
	err := run.Provider.StartTarget(ctx, run.TargetName())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}

	return s.resolveAddress(ctx, run)
}

func (s *startTargetStep) resolveAddress(ctx context.Context, run *Run) error {
	address, err := run.Provider.Address(ctx, run.TargetName())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBackend, err)
	}

	run.Address = address

	return nil
}
