package provisioner

import (
	"context"
	"fmt"
	"strings"

	searxnggenerator "github.com/Vakrehus/searxup/pkg/io/generator/searxng"
	systemdgenerator "github.com/Vakrehus/searxup/pkg/io/generator/systemd"
	"github.com/Vakrehus/searxup/pkg/svc/secret"
)

// heredocMarker delimits file content piped into the target. The rendered
// artifacts never contain this token.
const heredocMarker = "SEARXUP_EOF"

// writeFileScript builds a script that writes content to path with the given
// owner and mode before any content lands on disk.
func writeFileScript(path, content, owner, mode string) string {
	return fmt.Sprintf(
		"install -o %[1]s -g %[1]s -m %[2]s /dev/null %[3]s\n"+
			"cat > %[3]s << '%[4]s'\n%[5]s%[4]s\n",
		owner, mode, path, heredocMarker, ensureTrailingNewline(content))
}

func ensureTrailingNewline(content string) string {
	if strings.HasSuffix(content, "\n") {
		return content
	}

	return content + "\n"
}

// generateConfigStep synthesizes the service configuration with a fresh
// secret and writes it with restrictive permissions.
//
// The secret is regenerated on every run by design: the configuration is
// one-way and the fresh-per-run secret is an invariant of the data model.
// The step therefore never reports itself satisfied.
type generateConfigStep struct{}

func (s *generateConfigStep) Name() string { return "generate_config" }

func (s *generateConfigStep) Check(_ context.Context, _ *Run) (bool, error) {
	return false, nil
}

func (s *generateConfigStep) Apply(ctx context.Context, run *Run) error {
	key, err := secret.GenerateKey()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	settings := searxnggenerator.Build(
		run.Provision.Spec.Service,
		run.Provision.Spec.Target.Hostname,
		key,
	)

	content, err := searxnggenerator.NewGenerator().Generate(settings)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	// Owner and group read-write only; no world access.
	err = shell(ctx, run, writeFileScript(SettingsPath, content, ServiceAccount, "660"))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFilesystem, err)
	}

	run.Secret = key

	return nil
}

// installServiceDefinitionStep writes the service unit when absent or when
// its content differs from the desired definition.
type installServiceDefinitionStep struct{}

func (s *installServiceDefinitionStep) Name() string { return "install_service_definition" }

func (s *installServiceDefinitionStep) renderUnit() (string, error) {
	return systemdgenerator.NewGenerator().Generate(systemdgenerator.Unit{
		Description:      "SearXNG metasearch engine",
		After:            []string{"network.target", CacheService + ".service"},
		Wants:            []string{CacheService + ".service"},
		User:             ServiceAccount,
		WorkingDirectory: SourceDir,
		Environment:      []string{"SEARXNG_SETTINGS_PATH=" + SettingsPath},
		ExecStart:        VenvDir + "/bin/python -m searx.webapp",
	})
}

func (s *installServiceDefinitionStep) Check(ctx context.Context, run *Run) (bool, error) {
	desired, err := s.renderUnit()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrService, err)
	}

	current, err := run.Provider.Exec(ctx, run.TargetName(),
		[]string{"/bin/sh", "-c", "cat " + UnitPath + " 2>/dev/null || true"})
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrService, err)
	}

	return current == desired, nil
}

func (s *installServiceDefinitionStep) Apply(ctx context.Context, run *Run) error {
	content, err := s.renderUnit()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrService, err)
	}

	err = shell(ctx, run,
		writeFileScript(UnitPath, content, "root", "644")+
			"systemctl daemon-reload")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrService, err)
	}

	return nil
}
