package provisioner

// Phase is the state a provisioning run has reached.
type Phase string

// Run phases, in order. A run advances through every phase; no phase is
// skipped and none is reversible within a single run.
const (
	PhasePending        Phase = "Pending"
	PhaseTargetCreated  Phase = "TargetCreated"
	PhaseTargetRunning  Phase = "TargetRunning"
	PhaseOSProvisioned  Phase = "OSProvisioned"
	PhaseAppInstalled   Phase = "AppInstalled"
	PhaseConfigWritten  Phase = "ConfigWritten"
	PhaseServiceEnabled Phase = "ServiceEnabled"
	PhaseVerified       Phase = "Verified"
	PhaseFailed         Phase = "Failed"
)
