package v1alpha1

const (
	// Group is the API group for searxup.
	Group = "searxup.dev"
	// Version is the API version for searxup.
	Version = "v1alpha1"
	// Kind is the kind for searxup provisioning documents.
	Kind = "Provision"
	// APIVersion is the full API version for searxup.
	APIVersion = Group + "/" + Version
)

// --- Core Types ---

// Provision represents a searxup provisioning document including API metadata
// and the desired state of the target and the installed service.
type Provision struct {
	APIVersion string `json:"apiVersion,omitempty" mapstructure:"apiVersion"`
	Kind       string `json:"kind,omitempty"       mapstructure:"kind"`

	Spec Spec `json:"spec,omitempty" mapstructure:"spec"`
}

// Spec defines the desired state of a provisioned SearXNG instance.
type Spec struct {
	Target  TargetSpec  `json:"target,omitempty"  mapstructure:"target"`
	Service ServiceSpec `json:"service,omitempty" mapstructure:"service"`
}

// TargetSpec describes the container being provisioned.
//
// The address is not part of the spec: it is resolved by the backend once the
// target is running and threaded through the run context.
type TargetSpec struct {
	// Name identifies the target on the backend. It doubles as the container name.
	Name string `json:"name,omitempty" mapstructure:"name"`
	// Hostname is the hostname assigned inside the target.
	Hostname string `json:"hostname,omitempty" mapstructure:"hostname"`
	// Image is the OS image the target is created from.
	Image string `json:"image,omitempty" mapstructure:"image"`

	Sizing Sizing `json:"sizing,omitempty" mapstructure:"sizing"`
}

// Sizing holds the resource sizing parameters for a target.
type Sizing struct {
	Cores    int `json:"cores,omitempty"    mapstructure:"cores"`
	MemoryMB int `json:"memoryMB,omitempty" mapstructure:"memoryMB"`
	SwapMB   int `json:"swapMB,omitempty"   mapstructure:"swapMB"`
	// DiskGB is recorded for backends that support per-target disks.
	// The Docker backend cannot enforce it and ignores it.
	DiskGB int `json:"diskGB,omitempty" mapstructure:"diskGB"`
}

// ServiceSpec describes the desired configuration of the installed service.
// The secret key is deliberately absent: it is generated fresh on every run
// and never stored in the provisioning document.
type ServiceSpec struct {
	BindAddress string `json:"bindAddress,omitempty" mapstructure:"bindAddress"`
	Port        int    `json:"port,omitempty"        mapstructure:"port"`
	// CacheURL is the connection string for the cache/store the service
	// depends on at runtime.
	CacheURL string `json:"cacheURL,omitempty" mapstructure:"cacheURL"`
	// Features is the list of enabled feature names.
	Features []string `json:"features,omitempty" mapstructure:"features"`
	// Engines is the list of enabled data sources.
	Engines []Engine `json:"engines,omitempty" mapstructure:"engines"`
}

// Engine describes one enabled data source of the service.
type Engine struct {
	// Name is the display name of the data source.
	Name string `json:"name" mapstructure:"name"`
	// Driver is the identifier of the driver implementing the data source.
	Driver string `json:"driver" mapstructure:"driver"`
	// Shortcut is the bang-style alias for the data source.
	Shortcut string `json:"shortcut" mapstructure:"shortcut"`
}
