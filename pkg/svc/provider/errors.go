package provider

import "errors"

// Common errors for provider operations.
var (
	// ErrProviderUnavailable is returned when the backend is not available.
	ErrProviderUnavailable = errors.New("provider is not available")

	// ErrTargetNotFound is returned when the named target does not exist.
	ErrTargetNotFound = errors.New("target not found")

	// ErrExecFailed is returned when a command inside the target exits non-zero.
	ErrExecFailed = errors.New("command failed")

	// ErrNoAddress is returned when a running target has no resolvable address.
	ErrNoAddress = errors.New("target has no network address")

	// ErrStartTimeout is returned when a target does not become responsive in time.
	ErrStartTimeout = errors.New("target did not become responsive")
)
