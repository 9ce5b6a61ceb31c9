package provider

import (
	"context"

	"github.com/Vakrehus/searxup/pkg/apis/provision/v1alpha1"
)

// Provider is the target control interface consumed by the provisioner.
//
// The provisioner drives exactly four operations against a backend — create,
// start, execute-command-on and query-address-of a target — plus the two
// existence queries its idempotency guards need. Implementations must not
// leak backend-specific behavior beyond this surface.
type Provider interface {
	// TargetExists reports whether a target with the given name exists.
	TargetExists(ctx context.Context, name string) (bool, error)

	// TargetRunning reports whether the target is currently running.
	TargetRunning(ctx context.Context, name string) (bool, error)

	// CreateTarget allocates a target with the requested sizing. The ports
	// listed in publishPorts are exposed to the host.
	CreateTarget(ctx context.Context, spec v1alpha1.TargetSpec, publishPorts ...int) error

	// StartTarget starts the target and blocks until it is minimally
	// responsive (commands can be executed in it), within a bounded wait.
	StartTarget(ctx context.Context, name string) error

	// Exec executes a command inside the target and returns its stdout.
	// A non-zero exit status is reported as an error carrying stderr.
	Exec(ctx context.Context, name string, cmd []string) (string, error)

	// Address returns the network address of the running target.
	Address(ctx context.Context, name string) (string, error)
}
