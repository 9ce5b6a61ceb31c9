package provisioner

import (
	"context"
	"fmt"
	"strings"
)

// dependencyPackages is the full dependency set: the language runtime, the
// build toolchain for native wheels, crypto libraries and the cache service.
//
//nolint:gochecknoglobals
var dependencyPackages = []string{
	"python3",
	"python3-dev",
	"python3-venv",
	"python3-pip",
	"git",
	"build-essential",
	"libffi-dev",
	"libssl-dev",
	"libxml2-dev",
	"libxslt1-dev",
	"zlib1g-dev",
	"redis-server",
}

// bootstrapOSStep refreshes the package index and upgrades base packages.
// The index freshness is unknowable from outside, so the step always runs;
// the refresh itself is idempotent.
type bootstrapOSStep struct{}

func (s *bootstrapOSStep) Name() string { return "bootstrap_os" }

func (s *bootstrapOSStep) Check(_ context.Context, _ *Run) (bool, error) {
	return false, nil
}

func (s *bootstrapOSStep) Apply(ctx context.Context, run *Run) error {
	err := shell(ctx, run,
		"export DEBIAN_FRONTEND=noninteractive\n"+
			"apt-get update -q\n"+
			"apt-get upgrade -y -q")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPackage, err)
	}

	return nil
}

// installDependenciesStep installs the dependency set if any package is missing.
type installDependenciesStep struct{}

func (s *installDependenciesStep) Name() string { return "install_dependencies" }

func (s *installDependenciesStep) Check(ctx context.Context, run *Run) (bool, error) {
	condition := "dpkg -s " + strings.Join(dependencyPackages, " ") + " >/dev/null 2>&1"

	satisfied, err := probe(ctx, run, condition)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrPackage, err)
	}

	return satisfied, nil
}

func (s *installDependenciesStep) Apply(ctx context.Context, run *Run) error {
	err := shell(ctx, run,
		"export DEBIAN_FRONTEND=noninteractive\n"+
			"apt-get install -y -q --no-install-recommends "+
			strings.Join(dependencyPackages, " "))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPackage, err)
	}

	return nil
}

// ensureServiceAccountStep creates the dedicated unprivileged account.
type ensureServiceAccountStep struct{}

func (s *ensureServiceAccountStep) Name() string { return "ensure_service_account" }

func (s *ensureServiceAccountStep) Check(ctx context.Context, run *Run) (bool, error) {
	satisfied, err := probe(ctx, run, "id -u "+ServiceAccount+" >/dev/null 2>&1")
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	return satisfied, nil
}

func (s *ensureServiceAccountStep) Apply(ctx context.Context, run *Run) error {
	err := shell(ctx, run, fmt.Sprintf(
		"useradd --system --home-dir %s --shell /usr/sbin/nologin %s",
		InstallDir, ServiceAccount))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	return nil
}

// ensureDirectoriesStep creates the install and config directories with the
// correct ownership.
type ensureDirectoriesStep struct{}

func (s *ensureDirectoriesStep) Name() string { return "ensure_directories" }

func (s *ensureDirectoriesStep) Check(ctx context.Context, run *Run) (bool, error) {
	condition := fmt.Sprintf(
		"[ -d %[1]s ] && [ -d %[2]s ]"+
			" && [ \"$(stat -c %%U %[1]s)\" = %[3]s ]"+
			" && [ \"$(stat -c %%U %[2]s)\" = %[3]s ]",
		InstallDir, ConfigDir, ServiceAccount)

	satisfied, err := probe(ctx, run, condition)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	return satisfied, nil
}

func (s *ensureDirectoriesStep) Apply(ctx context.Context, run *Run) error {
	err := shell(ctx, run, fmt.Sprintf(
		"mkdir -p %[1]s %[2]s\n"+
			"chown %[3]s:%[3]s %[1]s %[2]s",
		InstallDir, ConfigDir, ServiceAccount))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	return nil
}
