// Package provisioner implements the idempotent step sequence that brings a
// target from a bare OS image to a running, verified SearXNG instance.
package provisioner

import (
	"context"
	"fmt"
	"io"

	"github.com/Vakrehus/searxup/pkg/apis/provision/v1alpha1"
	"github.com/Vakrehus/searxup/pkg/svc/provider"
	"github.com/Vakrehus/searxup/pkg/utils/notify"
	"github.com/sirupsen/logrus"
)

// stepEntry pairs a step with the phase a run reaches once it completes.
type stepEntry struct {
	step  Step
	phase Phase
}

// Provisioner executes the ordered step sequence against exactly one target.
// Control flow is strictly sequential with abort on first failure; idempotent
// re-runs substitute for transactional rollback.
type Provisioner struct {
	steps []stepEntry
}

// New creates a Provisioner with the full provisioning sequence.
func New() *Provisioner {
	return &Provisioner{steps: defaultSequence()}
}

// NewWithSteps creates a Provisioner with a custom sequence. Used by tests
// and by the standalone verification command.
func NewWithSteps(steps ...Step) *Provisioner {
	entries := make([]stepEntry, 0, len(steps))
	for _, step := range steps {
		entries = append(entries, stepEntry{step: step, phase: ""})
	}

	return &Provisioner{steps: entries}
}

// VerifyOnly creates a Provisioner that resolves the target address (starting
// the target if it is stopped) and runs only the verification step.
func VerifyOnly() *Provisioner {
	return &Provisioner{steps: []stepEntry{
		{&startTargetStep{}, PhaseTargetRunning},
		{&verifyStep{}, PhaseVerified},
	}}
}

// defaultSequence is the fixed, ordered step list. No step is skipped and
// their order never varies.
func defaultSequence() []stepEntry {
	return []stepEntry{
		{&createTargetStep{}, PhaseTargetCreated},
		{&startTargetStep{}, PhaseTargetRunning},
		{&bootstrapOSStep{}, PhaseTargetRunning},
		{&installDependenciesStep{}, PhaseOSProvisioned},
		{&ensureServiceAccountStep{}, PhaseOSProvisioned},
		{&ensureDirectoriesStep{}, PhaseOSProvisioned},
		{&fetchApplicationSourceStep{}, PhaseOSProvisioned},
		{&buildPythonEnvStep{}, PhaseAppInstalled},
		{&generateConfigStep{}, PhaseConfigWritten},
		{&installServiceDefinitionStep{}, PhaseConfigWritten},
		{&enableAndStartServicesStep{}, PhaseServiceEnabled},
		{&verifyStep{}, PhaseVerified},
	}
}

// Run executes the sequence against the given provision document. It returns
// the run state, which on failure records the phase reached; the error is a
// *StepError naming the failing step.
func (p *Provisioner) Run(
	ctx context.Context,
	doc *v1alpha1.Provision,
	backend provider.Provider,
	writer io.Writer,
) (*Run, error) {
	run := &Run{
		Provision: doc,
		Provider:  backend,
		Writer:    writer,
		Phase:     PhasePending,
	}

	for _, entry := range p.steps {
		err := p.runStep(ctx, run, entry.step)
		if err != nil {
			run.Phase = PhaseFailed

			return run, err
		}

		if entry.phase != "" {
			run.Phase = entry.phase
		}
	}

	return run, nil
}

// runStep executes one guard-then-mutate pair.
func (p *Provisioner) runStep(ctx context.Context, run *Run, step Step) error {
	logrus.WithField("step", step.Name()).Debug("running step")

	satisfied, err := step.Check(ctx, run)
	if err != nil {
		return &StepError{Step: step.Name(), Err: fmt.Errorf("precondition check: %w", err)}
	}

	if satisfied {
		notify.Skipf(run.Writer, "%s already satisfied", step.Name())

		return nil
	}

	notify.Activityf(run.Writer, "%s", step.Name())

	err = step.Apply(ctx, run)
	if err != nil {
		return &StepError{Step: step.Name(), Err: err}
	}

	return nil
}
