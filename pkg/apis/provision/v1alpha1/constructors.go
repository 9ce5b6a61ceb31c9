package v1alpha1

// NewProvision creates a new Provision document with default values.
func NewProvision() *Provision {
	return &Provision{
		APIVersion: APIVersion,
		Kind:       Kind,
		Spec:       NewSpec(),
	}
}

// NewSpec creates a new Spec with default values.
func NewSpec() Spec {
	return Spec{
		Target:  NewTargetSpec(),
		Service: NewServiceSpec(),
	}
}

// NewTargetSpec creates a new TargetSpec with default values.
func NewTargetSpec() TargetSpec {
	return TargetSpec{
		Name:     "searxng",
		Hostname: "searxng-server",
		Image:    "debian:12",
		Sizing:   NewSizing(),
	}
}

// NewSizing creates a new Sizing with default values.
func NewSizing() Sizing {
	return Sizing{
		Cores:    2,
		MemoryMB: 2048,
		SwapMB:   512,
		DiskGB:   8,
	}
}

// NewServiceSpec creates a new ServiceSpec with default values.
//
// The defaults mirror a stock SearXNG deployment: all interfaces on port
// 8888, a local Valkey/Redis cache, and four enabled engines.
func NewServiceSpec() ServiceSpec {
	return ServiceSpec{
		BindAddress: "0.0.0.0",
		Port:        8888,
		CacheURL:    "redis://127.0.0.1:6379/0",
		Features:    []string{"search_on_category_select", "image_proxy"},
		Engines: []Engine{
			{Name: "google", Driver: "google", Shortcut: "gg"},
			{Name: "duckduckgo", Driver: "duckduckgo", Shortcut: "ddg"},
			{Name: "wikipedia", Driver: "wikipedia", Shortcut: "wp"},
			{Name: "github", Driver: "github", Shortcut: "gh"},
		},
	}
}
