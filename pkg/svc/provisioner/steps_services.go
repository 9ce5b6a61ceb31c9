package provisioner

import (
	"context"
	"fmt"
	"time"

	"github.com/siderolabs/go-retry/retry"
)

// enableAndStartServicesStep enables and starts the cache service, waits for
// it to answer, then enables and starts the application service. The cache
// must be running before the application comes up.
type enableAndStartServicesStep struct {
	// cacheTimeout and cacheInterval override the default wait window when set.
	cacheTimeout  time.Duration
	cacheInterval time.Duration
}

func (s *enableAndStartServicesStep) Name() string { return "enable_and_start_services" }

func (s *enableAndStartServicesStep) Check(ctx context.Context, run *Run) (bool, error) {
	condition := fmt.Sprintf(
		"systemctl is-active --quiet %s && systemctl is-active --quiet %s",
		CacheService, AppService)

	satisfied, err := probe(ctx, run, condition)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrService, err)
	}

	return satisfied, nil
}

func (s *enableAndStartServicesStep) Apply(ctx context.Context, run *Run) error {
	err := shell(ctx, run, "systemctl enable --now "+CacheService)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrService, err)
	}

	err = s.waitForCache(ctx, run)
	if err != nil {
		return fmt.Errorf("%w: cache did not become ready: %w", ErrService, err)
	}

	err = shell(ctx, run, "systemctl enable --now "+AppService)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrService, err)
	}

	return nil
}

// waitForCache polls the cache service until it answers, within a bounded
// window.
func (s *enableAndStartServicesStep) waitForCache(ctx context.Context, run *Run) error {
	timeout, interval := s.cacheTimeout, s.cacheInterval
	if timeout == 0 {
		timeout = cacheReadyTimeout
	}

	if interval == 0 {
		interval = cacheReadyInterval
	}

	return retry.Constant(timeout, retry.WithUnits(interval)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			satisfied, err := probe(ctx, run, "redis-cli ping | grep -q PONG")
			if err != nil {
				return retry.ExpectedError(err)
			}

			if !satisfied {
				return retry.ExpectedErrorf("cache is not answering yet")
			}

			return nil
		})
}
