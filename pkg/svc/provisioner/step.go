package provisioner

import (
	"context"
	"io"
	"strings"

	"github.com/Vakrehus/searxup/pkg/apis/provision/v1alpha1"
	"github.com/Vakrehus/searxup/pkg/svc/provider"
)

// Step is one guard-then-mutate unit of the provisioning sequence.
//
// Check reports whether the step's end state is already satisfied; Apply
// performs the mutation. Phrasing every step this way makes the whole
// sequence safe to re-invoke after a partial failure: re-running must not
// duplicate accounts, clone into a non-empty checkout, or regenerate state
// unless that is the explicit intent of the step.
type Step interface {
	// Name is the step identifier used in progress output and errors.
	Name() string
	// Check reports whether the step is already satisfied.
	Check(ctx context.Context, run *Run) (bool, error)
	// Apply brings the target into the step's end state.
	Apply(ctx context.Context, run *Run) error
}

// Run is the mutable state threaded through the step sequence. It replaces
// the ambient working-directory and environment state a shell implementation
// would rely on.
type Run struct {
	// Provision is the desired state driving the run.
	Provision *v1alpha1.Provision
	// Provider is the target control backend.
	Provider provider.Provider
	// Writer receives progress output. May be nil.
	Writer io.Writer

	// Address is populated once the target becomes reachable.
	Address string
	// Secret is the secret key generated by the config step.
	Secret string
	// Phase is the state the run has reached.
	Phase Phase
}

// TargetName returns the identifier of the target being provisioned.
func (r *Run) TargetName() string {
	return r.Provision.Spec.Target.Name
}

// probe runs a shell probe inside the target and reports whether it
// succeeded. The probe itself always exits zero so a failing condition can be
// distinguished from a failing backend.
func probe(ctx context.Context, run *Run, condition string) (bool, error) {
	script := condition + " && echo ok || echo missing"

	out, err := run.Provider.Exec(ctx, run.TargetName(), []string{"/bin/sh", "-c", script})
	if err != nil {
		return false, err
	}

	return strings.TrimSpace(out) == "ok", nil
}

// shell runs a shell script inside the target.
func shell(ctx context.Context, run *Run, script string) error {
	_, err := run.Provider.Exec(ctx, run.TargetName(), []string{"/bin/sh", "-ec", script})

	return err
}
