package provisioner

import (
	"errors"
	"fmt"
)

// Failure categories for provisioning steps.
var (
	// ErrBackend is returned when target creation or start fails.
	ErrBackend = errors.New("backend error")
	// ErrPackage is returned when dependency installation fails.
	ErrPackage = errors.New("package error")
	// ErrFilesystem is returned when a directory, account or permission mutation fails.
	ErrFilesystem = errors.New("filesystem error")
	// ErrNetwork is returned when fetching the application source fails.
	ErrNetwork = errors.New("network error")
	// ErrService is returned when installing or starting a service unit fails.
	ErrService = errors.New("service error")
	// ErrVerification is returned when the post-install health check fails.
	ErrVerification = errors.New("verification error")
)

// StepError reports which step failed and why. Step failures are fatal: the
// run halts immediately and the target is left in its partially provisioned
// state for inspection or re-run.
type StepError struct {
	// Step is the name of the failing step.
	Step string
	// Err is the underlying cause, wrapping one of the failure categories.
	Err error
}

// Error implements the error interface.
func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

// Unwrap returns the underlying cause.
func (e *StepError) Unwrap() error {
	return e.Err
}
