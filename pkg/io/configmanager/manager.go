// Package configmanager loads searxup provisioning documents from
// searxup.yaml, environment variables and command-line flags.
package configmanager

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Vakrehus/searxup/pkg/apis/provision/v1alpha1"
	"github.com/Vakrehus/searxup/pkg/utils/notify"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// ConfigFileName is the base name of the provisioning document.
const ConfigFileName = "searxup"

// envPrefix is the prefix for environment variable overrides.
const envPrefix = "SEARXUP"

// ConfigManager loads v1alpha1.Provision documents.
//
// Configuration priority: defaults < config file < environment variables <
// flags.
type ConfigManager struct {
	// Viper is the underlying configuration engine, exposed for tests.
	Viper *viper.Viper
	// Config is the loaded document, cached after the first Load.
	Config *v1alpha1.Provision
	// Writer receives loading notifications.
	Writer io.Writer

	configLoaded bool
}

// NewConfigManager creates a configuration manager writing notifications to
// the given writer.
func NewConfigManager(writer io.Writer) *ConfigManager {
	viperInstance := viper.New()
	viperInstance.SetConfigName(ConfigFileName)
	viperInstance.SetConfigType("yaml")
	viperInstance.AddConfigPath(".")
	viperInstance.SetEnvPrefix(envPrefix)
	viperInstance.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperInstance.AutomaticEnv()

	return &ConfigManager{
		Viper:  viperInstance,
		Config: v1alpha1.NewProvision(),
		Writer: writer,
	}
}

// NewCommandConfigManager constructs a ConfigManager bound to the provided
// Cobra command: spec fields become flags and flag values override the
// config file.
func NewCommandConfigManager(cmd *cobra.Command) *ConfigManager {
	manager := NewConfigManager(cmd.OutOrStdout())
	manager.bindFlags(cmd)

	return manager
}

// Load reads the configuration. The loaded document is cached; subsequent
// calls return the cached copy.
func (m *ConfigManager) Load() (*v1alpha1.Provision, error) {
	if m.configLoaded {
		return m.Config, nil
	}

	err := m.Viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine: defaults, env and flags apply.
	} else {
		notify.Infof(m.Writer, "using config file %s", m.Viper.ConfigFileUsed())
	}

	// Comma-separated env values decode into list fields (e.g. features).
	err = m.Viper.Unmarshal(m.Config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	err = m.Config.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	m.configLoaded = true

	return m.Config, nil
}

// bindFlags registers spec flags on the command and binds them into viper.
// Flag defaults come from the document defaults, so flag defaults sit below
// the config file in priority while set flags override it.
func (m *ConfigManager) bindFlags(cmd *cobra.Command) {
	defaults := v1alpha1.NewProvision()
	flags := cmd.Flags()

	flags.String("name", defaults.Spec.Target.Name, "Target identifier")
	flags.String("hostname", defaults.Spec.Target.Hostname, "Hostname assigned to the target")
	flags.String("image", defaults.Spec.Target.Image, "OS image the target is created from")
	flags.Int("cores", defaults.Spec.Target.Sizing.Cores, "CPU cores for the target")
	flags.Int("memory", defaults.Spec.Target.Sizing.MemoryMB, "Memory in MiB for the target")
	flags.Int("swap", defaults.Spec.Target.Sizing.SwapMB, "Swap in MiB for the target")
	flags.Int("disk", defaults.Spec.Target.Sizing.DiskGB, "Disk size in GiB for the target")
	flags.String("bind-address", defaults.Spec.Service.BindAddress, "Service bind address")
	flags.Int("port", defaults.Spec.Service.Port, "Service port")
	flags.String("cache-url", defaults.Spec.Service.CacheURL, "Cache/store connection URL")

	bindings := map[string]string{
		"spec.target.name":            "name",
		"spec.target.hostname":        "hostname",
		"spec.target.image":           "image",
		"spec.target.sizing.cores":    "cores",
		"spec.target.sizing.memoryMB": "memory",
		"spec.target.sizing.swapMB":   "swap",
		"spec.target.sizing.diskGB":   "disk",
		"spec.service.bindAddress":    "bind-address",
		"spec.service.port":           "port",
		"spec.service.cacheURL":       "cache-url",
	}

	for key, flagName := range bindings {
		_ = m.Viper.BindPFlag(key, flags.Lookup(flagName))
	}
}
