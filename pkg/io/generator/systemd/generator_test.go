package systemdgenerator_test

import (
	"os"
	"strings"
	"testing"

	systemdgenerator "github.com/Vakrehus/searxup/pkg/io/generator/systemd"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	exitCode := m.Run()

	_, err := snaps.Clean(m, snaps.CleanOpts{Sort: true})
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to clean snapshots: " + err.Error() + "\n")

		os.Exit(1)
	}

	os.Exit(exitCode)
}

func testUnit() systemdgenerator.Unit {
	return systemdgenerator.Unit{
		Description:      "SearXNG metasearch engine",
		After:            []string{"network.target", "redis-server.service"},
		Wants:            []string{"redis-server.service"},
		User:             "searxng",
		WorkingDirectory: "/usr/local/searxng/searxng-src",
		Environment:      []string{"SEARXNG_SETTINGS_PATH=/etc/searxng/settings.yml"},
		ExecStart:        "/usr/local/searxng/searx-pyenv/bin/python -m searx.webapp",
	}
}

func TestGenerate(t *testing.T) {
	t.Parallel()

	content, err := systemdgenerator.NewGenerator().Generate(testUnit())
	require.NoError(t, err)

	snaps.MatchSnapshot(t, content)
}

func TestGenerateSections(t *testing.T) {
	t.Parallel()

	content, err := systemdgenerator.NewGenerator().Generate(testUnit())
	require.NoError(t, err)

	assert.Contains(t, content, "[Unit]\n")
	assert.Contains(t, content, "[Service]\n")
	assert.Contains(t, content, "[Install]\n")
	assert.Contains(t, content, "After=network.target redis-server.service\n")
	assert.Contains(t, content, "Wants=redis-server.service\n")
	assert.Contains(t, content, "User=searxng\nGroup=searxng\n")
	assert.Contains(t, content, "Environment=SEARXNG_SETTINGS_PATH=/etc/searxng/settings.yml\n")
	assert.Contains(t, content, "Restart=always\nRestartSec=5\n")
	assert.Contains(t, content, "WantedBy=multi-user.target\n")
	assert.True(t, strings.HasSuffix(content, "\n"))
}

func TestGenerateOmitsEmptyDependencies(t *testing.T) {
	t.Parallel()

	unit := testUnit()
	unit.After = nil
	unit.Wants = nil
	unit.Environment = nil

	content, err := systemdgenerator.NewGenerator().Generate(unit)
	require.NoError(t, err)

	assert.NotContains(t, content, "After=")
	assert.NotContains(t, content, "Wants=")
	assert.NotContains(t, content, "Environment=")
}
