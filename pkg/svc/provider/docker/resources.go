package docker

import (
	"github.com/Vakrehus/searxup/pkg/apis/provision/v1alpha1"
	"github.com/docker/docker/api/types/container"
)

const (
	bytesPerMiB     = int64(1024 * 1024)
	nanoCPUsPerCore = int64(1_000_000_000)
)

// sizingToResources maps target sizing to Docker container resources.
//
// MemorySwap is the total of memory and swap, following the Docker
// convention. DiskGB has no per-container equivalent on this backend and is
// intentionally not mapped.
func sizingToResources(sizing v1alpha1.Sizing) container.Resources {
	memory := int64(sizing.MemoryMB) * bytesPerMiB

	return container.Resources{
		NanoCPUs:   int64(sizing.Cores) * nanoCPUsPerCore,
		Memory:     memory,
		MemorySwap: memory + int64(sizing.SwapMB)*bytesPerMiB,
	}
}
