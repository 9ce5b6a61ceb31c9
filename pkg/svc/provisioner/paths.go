package provisioner

import "time"

// Installation layout inside the target.
const (
	// ServiceAccount is the unprivileged account the service runs as.
	ServiceAccount = "searxng"
	// InstallDir is the root of the installation.
	InstallDir = "/usr/local/searxng"
	// SourceDir is the application source checkout.
	SourceDir = InstallDir + "/searxng-src"
	// VenvDir is the isolated Python environment.
	VenvDir = InstallDir + "/searx-pyenv"
	// ConfigDir holds the service configuration.
	ConfigDir = "/etc/searxng"
	// SettingsPath is the rendered configuration artifact.
	SettingsPath = ConfigDir + "/settings.yml"
	// UnitPath is the installed service unit.
	UnitPath = "/etc/systemd/system/searxng.service"
	// SourceURL is the upstream application repository.
	SourceURL = "https://github.com/searxng/searxng"
	// CacheService is the cache/store unit the application depends on.
	CacheService = "redis-server"
	// AppService is the application unit.
	AppService = "searxng"
)

// Bounded wait windows for readiness polls. Waits are always a poll loop with
// a fixed interval and a deadline, never unbounded.
const (
	cacheReadyTimeout  = 30 * time.Second
	cacheReadyInterval = 2 * time.Second
	verifyTimeout      = 90 * time.Second
	verifyInterval     = 3 * time.Second
	verifyDialTimeout  = 2 * time.Second
)
