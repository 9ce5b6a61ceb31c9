package docker

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Vakrehus/searxup/pkg/svc/provider"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/pkg/stdcopy"
	"github.com/sirupsen/logrus"
)

// Exec executes a command inside the target container and returns stdout.
// A non-zero exit status is reported as ErrExecFailed carrying stderr.
func (p *Provider) Exec(ctx context.Context, name string, cmd []string) (string, error) {
	if p.client == nil {
		return "", provider.ErrProviderUnavailable
	}

	logrus.WithFields(logrus.Fields{"target": name, "cmd": cmd}).Debug("exec in target")

	execConfig := container.ExecOptions{
		Cmd:          cmd,
		AttachStdout: true,
		AttachStderr: true,
	}

	execID, err := p.client.ContainerExecCreate(ctx, name, execConfig)
	if err != nil {
		return "", fmt.Errorf("failed to create exec: %w", err)
	}

	resp, err := p.client.ContainerExecAttach(ctx, execID.ID, container.ExecStartOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to attach to exec: %w", err)
	}
	defer resp.Close()

	var stdout, stderr bytes.Buffer

	_, _ = stdcopy.StdCopy(&stdout, &stderr, resp.Reader)

	inspectResp, err := p.client.ContainerExecInspect(ctx, execID.ID)
	if err != nil {
		return "", fmt.Errorf("failed to inspect exec: %w", err)
	}

	if inspectResp.ExitCode != 0 {
		return "", fmt.Errorf(
			"%w with exit code %d: %s",
			provider.ErrExecFailed,
			inspectResp.ExitCode,
			stderr.String(),
		)
	}

	return stdout.String(), nil
}
