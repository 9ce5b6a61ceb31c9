package provisioner

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/siderolabs/go-retry/retry"
	"golang.org/x/sync/errgroup"
)

// errServiceInactive is returned while a supervised service is not yet active.
var errServiceInactive = errors.New("service is not active")

// verifyStep converts "every command exited zero" into "the service is
// actually reachable": it polls, within a bounded window, that the cache and
// application processes are active and that the configured port accepts
// connections.
type verifyStep struct {
	// timeout and interval override the default bounded window when set.
	timeout     time.Duration
	interval    time.Duration
	dialTimeout time.Duration
}

func (s *verifyStep) window() (time.Duration, time.Duration, time.Duration) {
	timeout, interval, dial := s.timeout, s.interval, s.dialTimeout
	if timeout == 0 {
		timeout = verifyTimeout
	}

	if interval == 0 {
		interval = verifyInterval
	}

	if dial == 0 {
		dial = verifyDialTimeout
	}

	return timeout, interval, dial
}

func (s *verifyStep) Name() string { return "verify" }

func (s *verifyStep) Check(_ context.Context, _ *Run) (bool, error) {
	return false, nil
}

func (s *verifyStep) Apply(ctx context.Context, run *Run) error {
	timeout, interval, _ := s.window()

	err := retry.Constant(timeout, retry.WithUnits(interval)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			checkErr := s.checkOnce(ctx, run)
			if checkErr != nil {
				return retry.ExpectedError(checkErr)
			}

			return nil
		})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrVerification, err)
	}

	return nil
}

// checkOnce runs the three independent health checks concurrently.
func (s *verifyStep) checkOnce(ctx context.Context, run *Run) error {
	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return s.checkServiceActive(groupCtx, run, CacheService)
	})
	group.Go(func() error {
		return s.checkServiceActive(groupCtx, run, AppService)
	})
	group.Go(func() error {
		return s.checkPort(run)
	})

	return group.Wait()
}

func (s *verifyStep) checkServiceActive(ctx context.Context, run *Run, service string) error {
	active, err := probe(ctx, run, "systemctl is-active --quiet "+service)
	if err != nil {
		return err
	}

	if !active {
		return fmt.Errorf("%w: %s", errServiceInactive, service)
	}

	return nil
}

func (s *verifyStep) checkPort(run *Run) error {
	_, _, dialTimeout := s.window()
	address := net.JoinHostPort(run.Address, strconv.Itoa(run.Provision.Spec.Service.Port))

	conn, err := net.DialTimeout("tcp", address, dialTimeout)
	if err != nil {
		return fmt.Errorf("port is not accepting connections at %s: %w", address, err)
	}

	_ = conn.Close()

	return nil
}
