// Package systemdgenerator renders the systemd service unit artifact for the
// installed application.
package systemdgenerator

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/Vakrehus/searxup/pkg/io/generator"
)

// Unit describes the service unit to render.
type Unit struct {
	// Description is the human-readable unit description.
	Description string
	// After lists units that must be started before this one.
	After []string
	// Wants lists units this one pulls in.
	Wants []string
	// User is the account the service runs as.
	User string
	// WorkingDirectory is the directory the service starts in.
	WorkingDirectory string
	// ExecStart is the full run command.
	ExecStart string
	// Environment lists KEY=value pairs exported to the service.
	Environment []string
}

const unitTemplate = `[Unit]
Description={{ .Description }}
{{- if .After }}
After={{ join .After " " }}
{{- end }}
{{- if .Wants }}
Wants={{ join .Wants " " }}
{{- end }}

[Service]
User={{ .User }}
Group={{ .User }}
WorkingDirectory={{ .WorkingDirectory }}
{{- range .Environment }}
Environment={{ . }}
{{- end }}
ExecStart={{ .ExecStart }}
Restart=always
RestartSec=5

[Install]
WantedBy=multi-user.target
`

// Generator renders systemd unit files.
type Generator struct {
	tmpl *template.Template
}

// Compile-time interface compliance verification.
var _ generator.Generator[Unit] = (*Generator)(nil)

// NewGenerator creates and returns a new Generator instance.
func NewGenerator() *Generator {
	tmpl := template.Must(
		template.New("unit").
			Funcs(template.FuncMap{"join": strings.Join}).
			Parse(unitTemplate),
	)

	return &Generator{tmpl: tmpl}
}

// Generate renders the unit file content.
func (g *Generator) Generate(unit Unit) (string, error) {
	var builder strings.Builder

	err := g.tmpl.Execute(&builder, unit)
	if err != nil {
		return "", fmt.Errorf("render unit: %w", err)
	}

	return builder.String(), nil
}
