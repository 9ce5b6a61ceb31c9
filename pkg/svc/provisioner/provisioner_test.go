package provisioner

import (
	"bytes"
	"errors"
	"net"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Vakrehus/searxup/pkg/apis/provision/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenerPort opens a TCP listener and returns its port, so the verification
// step's port check has something real to dial.
func listenerPort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	t.Cleanup(func() { _ = listener.Close() })

	return listener.Addr().(*net.TCPAddr).Port
}

// closedPort returns a port nothing is listening on.
func closedPort(t *testing.T) int {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	return port
}

func testProvision(port int) *v1alpha1.Provision {
	doc := v1alpha1.NewProvision()
	doc.Spec.Service.Port = port

	return doc
}

func TestRunProvisionsFreshTarget(t *testing.T) {
	t.Parallel()

	fake := newFakeTarget()
	doc := testProvision(listenerPort(t))

	run, err := New().Run(t.Context(), doc, fake, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, PhaseVerified, run.Phase)
	assert.Equal(t, "127.0.0.1", run.Address)
	assert.Regexp(t, regexp.MustCompile("^[0-9a-f]{64}$"), run.Secret)

	assert.Equal(t, 1, fake.createCalls)
	assert.Equal(t, 1, fake.startCalls)
	assert.Equal(t, 1, fake.settingsWrites)
}

func TestRunRendersConfiguredService(t *testing.T) {
	t.Parallel()

	fake := newFakeTarget()
	port := listenerPort(t)
	doc := testProvision(port)

	run, err := New().Run(t.Context(), doc, fake, &bytes.Buffer{})
	require.NoError(t, err)

	settings := fake.settingsContent
	assert.Contains(t, settings, "port: "+strconv.Itoa(port))
	assert.Contains(t, settings, "bind_address: 0.0.0.0")
	assert.Contains(t, settings, "secret_key: "+run.Secret)
	assert.Equal(t, 4, strings.Count(settings, "shortcut:"))

	for _, shortcut := range []string{"gg", "ddg", "wp", "gh"} {
		assert.Contains(t, settings, "shortcut: "+shortcut)
	}

	unit := fake.unitContent
	assert.Contains(t, unit, "User="+ServiceAccount)
	assert.Contains(t, unit, "Environment=SEARXNG_SETTINGS_PATH="+SettingsPath)
	assert.Contains(t, unit, "ExecStart="+VenvDir+"/bin/python -m searx.webapp")
	assert.Contains(t, unit, "Wants="+CacheService+".service")
}

func TestRunSetsRestrictiveConfigPermissions(t *testing.T) {
	t.Parallel()

	fake := newFakeTarget()
	doc := testProvision(listenerPort(t))

	_, err := New().Run(t.Context(), doc, fake, &bytes.Buffer{})
	require.NoError(t, err)

	var settingsScript string

	for _, script := range fake.execLog {
		if strings.Contains(script, "cat > "+SettingsPath) {
			settingsScript = script
		}
	}

	require.NotEmpty(t, settingsScript)

	// The permissions are fixed before any content lands on disk.
	installLine := "install -o " + ServiceAccount + " -g " + ServiceAccount +
		" -m 660 /dev/null " + SettingsPath
	assert.Contains(t, settingsScript, installLine)
	assert.Less(t,
		strings.Index(settingsScript, installLine),
		strings.Index(settingsScript, "cat > "+SettingsPath))
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	fake := newFakeTarget()
	doc := testProvision(listenerPort(t))

	first, err := New().Run(t.Context(), doc, fake, &bytes.Buffer{})
	require.NoError(t, err)

	second, err := New().Run(t.Context(), doc, fake, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, PhaseVerified, second.Phase)

	// Guarded mutations happen exactly once across both runs.
	assert.Equal(t, 1, fake.createCalls)
	assert.Equal(t, 1, fake.startCalls)
	assert.Equal(t, 1, fake.mutationCount("install_packages"))
	assert.Equal(t, 1, fake.mutationCount("create_account"))
	assert.Equal(t, 1, fake.mutationCount("create_directories"))
	assert.Equal(t, 1, fake.mutationCount("build_venv"))
	assert.Equal(t, 1, fake.mutationCount("enable_cache"))
	assert.Equal(t, 1, fake.mutationCount("enable_app"))

	// The configuration is regenerated with a fresh secret on every run.
	assert.Equal(t, 2, fake.settingsWrites)
	assert.NotEqual(t, first.Secret, second.Secret)
}

func TestRunHaltsOnFirstFailure(t *testing.T) {
	t.Parallel()

	errInstall := errors.New("exit status 100")

	fake := newFakeTarget()
	fake.failWhen = func(script string) error {
		if strings.Contains(script, "apt-get install") {
			return errInstall
		}

		return nil
	}

	doc := testProvision(listenerPort(t))

	run, err := New().Run(t.Context(), doc, fake, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, PhaseFailed, run.Phase)
	assert.ErrorIs(t, err, ErrPackage)
	assert.ErrorIs(t, err, errInstall)

	var stepErr *StepError

	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "install_dependencies", stepErr.Step)

	// Nothing past the failing step ran.
	assert.False(t, fake.accountExists)
	assert.False(t, fake.venvBuilt)
	assert.Zero(t, fake.settingsWrites)

	for _, script := range fake.execLog {
		assert.NotContains(t, script, "useradd")
	}
}

func TestRunReportsFailedPreconditionCheck(t *testing.T) {
	t.Parallel()

	errProbe := errors.New("backend unreachable")

	fake := newFakeTarget()
	fake.failWhen = func(script string) error {
		if strings.Contains(script, "dpkg -s") {
			return errProbe
		}

		return nil
	}

	doc := testProvision(listenerPort(t))

	run, err := New().Run(t.Context(), doc, fake, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, PhaseFailed, run.Phase)
	assert.ErrorIs(t, err, ErrPackage)
	assert.ErrorIs(t, err, errProbe)

	var stepErr *StepError

	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "install_dependencies", stepErr.Step)
	assert.Contains(t, stepErr.Error(), "precondition check")
}

func TestRunFailsVerificationWhenPortStaysClosed(t *testing.T) {
	t.Parallel()

	fake := newFakeTarget()
	fake.running = true
	fake.exists = true
	fake.cacheActive = true
	fake.appActive = true

	doc := testProvision(closedPort(t))

	sequence := NewWithSteps(
		&startTargetStep{},
		&verifyStep{
			timeout:     300 * time.Millisecond,
			interval:    100 * time.Millisecond,
			dialTimeout: 100 * time.Millisecond,
		},
	)

	run, err := sequence.Run(t.Context(), doc, fake, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, PhaseFailed, run.Phase)
	assert.ErrorIs(t, err, ErrVerification)

	var stepErr *StepError

	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "verify", stepErr.Step)
}

func TestVerifyOnlyChecksWithoutMutating(t *testing.T) {
	t.Parallel()

	fake := newFakeTarget()
	fake.exists = true
	fake.running = true
	fake.cacheActive = true
	fake.appActive = true

	doc := testProvision(listenerPort(t))

	run, err := VerifyOnly().Run(t.Context(), doc, fake, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, PhaseVerified, run.Phase)
	assert.Equal(t, "127.0.0.1", run.Address)
	assert.Zero(t, fake.createCalls)
	assert.Zero(t, fake.startCalls)
	assert.Empty(t, fake.mutations)
}

func TestWriteFileScript(t *testing.T) {
	t.Parallel()

	script := writeFileScript("/etc/example/file.yml", "key: value", "svc", "660")

	assert.Contains(t, script, "install -o svc -g svc -m 660 /dev/null /etc/example/file.yml")
	assert.Contains(t, script, "cat > /etc/example/file.yml << '"+heredocMarker+"'\n")
	assert.Contains(t, script, "key: value\n"+heredocMarker+"\n")
}

func TestStepErrorUnwrapsCategory(t *testing.T) {
	t.Parallel()

	cause := errors.New("boom")
	err := &StepError{Step: "bootstrap_os", Err: errors.Join(ErrPackage, cause)}

	assert.ErrorIs(t, err, ErrPackage)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bootstrap_os", err.Step)
	assert.Contains(t, err.Error(), "step bootstrap_os failed")
}
