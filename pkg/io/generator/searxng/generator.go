// Package searxnggenerator renders the SearXNG settings.yml artifact from a
// service spec and a per-run secret key.
package searxnggenerator

import (
	"fmt"

	"github.com/Vakrehus/searxup/pkg/apis/provision/v1alpha1"
	"github.com/Vakrehus/searxup/pkg/io/generator"
	"gopkg.in/yaml.v3"
)

// Settings models the rendered settings.yml document. Field order is fixed by
// the struct so the artifact stays byte-stable across runs except for the
// secret key.
type Settings struct {
	UseDefaultSettings bool            `yaml:"use_default_settings"`
	General            GeneralSection  `yaml:"general"`
	Server             ServerSection   `yaml:"server"`
	Redis              RedisSection    `yaml:"redis"`
	EnabledPlugins     []string        `yaml:"enabled_plugins,omitempty"`
	Engines            []EngineSection `yaml:"engines"`
}

// GeneralSection holds instance-wide settings.
type GeneralSection struct {
	InstanceName string `yaml:"instance_name"`
	Debug        bool   `yaml:"debug"`
}

// ServerSection holds the listener and secret configuration.
type ServerSection struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
	SecretKey   string `yaml:"secret_key"`
	Limiter     bool   `yaml:"limiter"`
}

// RedisSection holds the cache/store connection settings.
type RedisSection struct {
	URL string `yaml:"url"`
}

// EngineSection holds one enabled data source.
type EngineSection struct {
	Name     string `yaml:"name"`
	Engine   string `yaml:"engine"`
	Shortcut string `yaml:"shortcut"`
	Disabled bool   `yaml:"disabled"`
}

// Generator renders settings.yml documents.
type Generator struct{}

// Compile-time interface compliance verification.
var _ generator.Generator[Settings] = (*Generator)(nil)

// NewGenerator creates and returns a new Generator instance.
func NewGenerator() *Generator {
	return &Generator{}
}

// Build assembles the settings model from the service spec, the instance name
// and a freshly generated secret key.
func Build(spec v1alpha1.ServiceSpec, instanceName, secretKey string) Settings {
	engines := make([]EngineSection, 0, len(spec.Engines))
	for _, engine := range spec.Engines {
		engines = append(engines, EngineSection{
			Name:     engine.Name,
			Engine:   engine.Driver,
			Shortcut: engine.Shortcut,
			Disabled: false,
		})
	}

	return Settings{
		UseDefaultSettings: true,
		General: GeneralSection{
			InstanceName: instanceName,
			Debug:        false,
		},
		Server: ServerSection{
			BindAddress: spec.BindAddress,
			Port:        spec.Port,
			SecretKey:   secretKey,
			Limiter:     false,
		},
		Redis: RedisSection{
			URL: spec.CacheURL,
		},
		EnabledPlugins: spec.Features,
		Engines:        engines,
	}
}

// Generate marshals the settings model to YAML.
func (g *Generator) Generate(settings Settings) (string, error) {
	out, err := yaml.Marshal(settings)
	if err != nil {
		return "", fmt.Errorf("marshal settings: %w", err)
	}

	return string(out), nil
}
