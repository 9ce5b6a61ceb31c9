package provisioner

import (
	"context"
	"fmt"
)

// fetchApplicationSourceStep clones the application source, or fast-forwards
// an existing checkout. Both paths are non-destructive, so the step always
// runs and decides inside the target.
type fetchApplicationSourceStep struct{}

func (s *fetchApplicationSourceStep) Name() string { return "fetch_application_source" }

func (s *fetchApplicationSourceStep) Check(_ context.Context, _ *Run) (bool, error) {
	return false, nil
}

func (s *fetchApplicationSourceStep) Apply(ctx context.Context, run *Run) error {
	err := shell(ctx, run, fmt.Sprintf(
		"if [ -d %[1]s/.git ]; then\n"+
			"  git -C %[1]s pull --ff-only\n"+
			"else\n"+
			"  git clone %[2]s %[1]s\n"+
			"fi\n"+
			"chown -R %[3]s:%[3]s %[1]s",
		SourceDir, SourceURL, ServiceAccount))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	return nil
}

// buildPythonEnvStep creates the isolated Python environment and installs the
// application into it.
type buildPythonEnvStep struct{}

func (s *buildPythonEnvStep) Name() string { return "build_python_env" }

func (s *buildPythonEnvStep) Check(ctx context.Context, run *Run) (bool, error) {
	satisfied, err := probe(ctx, run, "[ -x "+VenvDir+"/bin/python ]")
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrPackage, err)
	}

	return satisfied, nil
}

func (s *buildPythonEnvStep) Apply(ctx context.Context, run *Run) error {
	err := shell(ctx, run, fmt.Sprintf(
		"python3 -m venv %[1]s\n"+
			"%[1]s/bin/pip install --upgrade pip setuptools wheel pyyaml\n"+
			"%[1]s/bin/pip install --use-pep517 --no-build-isolation -e %[2]s\n"+
			"chown -R %[3]s:%[3]s %[1]s",
		VenvDir, SourceDir, ServiceAccount))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPackage, err)
	}

	return nil
}
