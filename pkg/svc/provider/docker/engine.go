package docker

import (
	"fmt"

	"github.com/docker/docker/client"
)

// NewClient creates a Docker client using environment configuration.
func NewClient() (client.APIClient, error) {
	dockerClient, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return dockerClient, nil
}
