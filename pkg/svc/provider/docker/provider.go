// Package docker implements the target control interface on top of the
// Docker Engine API.
package docker

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Vakrehus/searxup/pkg/apis/provision/v1alpha1"
	"github.com/Vakrehus/searxup/pkg/svc/provider"
	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	"github.com/siderolabs/go-retry/retry"
	"github.com/sirupsen/logrus"
)

// TargetLabelKey is the label identifying containers managed by searxup.
const TargetLabelKey = "searxup.target"

// Timeouts for Docker operations.
const (
	// DefaultStartTimeout bounds the wait for a started target to become
	// responsive to commands.
	DefaultStartTimeout = 60 * time.Second
	// readinessInterval is the poll interval while waiting for responsiveness.
	readinessInterval = 2 * time.Second
)

// Provider implements provider.Provider for Docker containers.
type Provider struct {
	client client.APIClient
}

// Compile-time interface compliance verification.
var _ provider.Provider = (*Provider)(nil)

// NewProvider creates a new Docker-backed target provider.
func NewProvider(cli client.APIClient) *Provider {
	return &Provider{client: cli}
}

// TargetExists reports whether a container labeled with the target name exists.
func (p *Provider) TargetExists(ctx context.Context, name string) (bool, error) {
	if p.client == nil {
		return false, provider.ErrProviderUnavailable
	}

	containers, err := p.listTargetContainers(ctx, name)
	if err != nil {
		return false, err
	}

	return len(containers) > 0, nil
}

// TargetRunning reports whether the target container is running.
func (p *Provider) TargetRunning(ctx context.Context, name string) (bool, error) {
	if p.client == nil {
		return false, provider.ErrProviderUnavailable
	}

	inspect, err := p.client.ContainerInspect(ctx, name)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("failed to inspect target %s: %w", name, err)
	}

	return inspect.State != nil && inspect.State.Running, nil
}

// CreateTarget allocates a container with the requested sizing. The sizing
// maps to CPU, memory and swap limits; disk size cannot be enforced on this
// backend and is ignored.
func (p *Provider) CreateTarget(
	ctx context.Context,
	spec v1alpha1.TargetSpec,
	publishPorts ...int,
) error {
	if p.client == nil {
		return provider.ErrProviderUnavailable
	}

	err := p.ensureImage(ctx, spec.Image)
	if err != nil {
		return err
	}

	exposed, bindings, err := portBindings(publishPorts)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"target": spec.Name,
		"image":  spec.Image,
		"cores":  spec.Sizing.Cores,
		"memory": spec.Sizing.MemoryMB,
	}).Debug("creating target container")

	_, err = p.client.ContainerCreate(
		ctx,
		&container.Config{
			Image:        spec.Image,
			Hostname:     spec.Hostname,
			ExposedPorts: exposed,
			Labels:       map[string]string{TargetLabelKey: spec.Name},
			// The service steps drive the target's process supervisor, so
			// the init system must be PID 1.
			Cmd: []string{"/sbin/init"},
		},
		&container.HostConfig{
			Resources:    sizingToResources(spec.Sizing),
			PortBindings: bindings,
		},
		nil,
		nil,
		spec.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to create target %s: %w", spec.Name, err)
	}

	return nil
}

// StartTarget starts the container and waits, within a bounded window, until
// it responds to commands.
func (p *Provider) StartTarget(ctx context.Context, name string) error {
	if p.client == nil {
		return provider.ErrProviderUnavailable
	}

	err := p.client.ContainerStart(ctx, name, container.StartOptions{})
	if err != nil {
		return fmt.Errorf("failed to start target %s: %w", name, err)
	}

	logrus.WithField("target", name).Debug("waiting for target to become responsive")

	err = retry.Constant(DefaultStartTimeout, retry.WithUnits(readinessInterval)).
		RetryWithContext(ctx, func(ctx context.Context) error {
			_, execErr := p.Exec(ctx, name, []string{"/bin/true"})
			if execErr != nil {
				return retry.ExpectedError(execErr)
			}

			return nil
		})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", provider.ErrStartTimeout, name, err)
	}

	return nil
}

// Address returns the IP address of the target on its first attached network.
func (p *Provider) Address(ctx context.Context, name string) (string, error) {
	if p.client == nil {
		return "", provider.ErrProviderUnavailable
	}

	inspect, err := p.client.ContainerInspect(ctx, name)
	if err != nil {
		if cerrdefs.IsNotFound(err) {
			return "", fmt.Errorf("%w: %s", provider.ErrTargetNotFound, name)
		}

		return "", fmt.Errorf("failed to inspect target %s: %w", name, err)
	}

	if inspect.NetworkSettings == nil {
		return "", fmt.Errorf("%w: %s", provider.ErrNoAddress, name)
	}

	for _, network := range inspect.NetworkSettings.Networks {
		if network.IPAddress != "" {
			return network.IPAddress, nil
		}
	}

	return "", fmt.Errorf("%w: %s", provider.ErrNoAddress, name)
}

// ensureImage pulls the target image if it is not already present.
func (p *Provider) ensureImage(ctx context.Context, ref string) error {
	_, err := p.client.ImageInspect(ctx, ref)
	if err == nil {
		return nil
	}

	reader, err := p.client.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", ref, err)
	}
	defer func() { _ = reader.Close() }()

	// The pull completes only once the response stream is drained.
	_, err = io.Copy(io.Discard, reader)
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", ref, err)
	}

	return nil
}

// listTargetContainers lists containers carrying the searxup target label.
func (p *Provider) listTargetContainers(
	ctx context.Context,
	name string,
) ([]container.Summary, error) {
	filterArgs := filters.NewArgs()
	filterArgs.Add("label", TargetLabelKey+"="+name)

	containers, err := p.client.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filterArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list target containers: %w", err)
	}

	return containers, nil
}

// portBindings builds the exposed-port set and host bindings for the ports
// the target publishes.
func portBindings(ports []int) (nat.PortSet, nat.PortMap, error) {
	exposed := make(nat.PortSet, len(ports))
	bindings := make(nat.PortMap, len(ports))

	for _, portNumber := range ports {
		port, err := nat.NewPort("tcp", strconv.Itoa(portNumber))
		if err != nil {
			return nil, nil, fmt.Errorf("invalid port %d: %w", portNumber, err)
		}

		exposed[port] = struct{}{}
		bindings[port] = []nat.PortBinding{{HostPort: strconv.Itoa(portNumber)}}
	}

	return exposed, bindings, nil
}
