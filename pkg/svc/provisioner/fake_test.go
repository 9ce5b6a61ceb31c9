package provisioner

import (
	"context"
	"strings"
	"sync"

	"github.com/Vakrehus/searxup/pkg/apis/provision/v1alpha1"
)

// fakeTarget emulates a target container in memory. Exec dispatches on the
// scripts the steps issue and mutates the emulated machine state, so a full
// sequence can run against it without a real backend.
type fakeTarget struct {
	mu sync.Mutex

	exists  bool
	running bool
	address string

	packagesInstalled bool
	accountExists     bool
	dirsExist         bool
	sourceFetched     bool
	venvBuilt         bool
	cacheActive       bool
	appActive         bool

	settingsContent string
	settingsWrites  int
	unitContent     string

	createCalls int
	startCalls  int

	execLog   []string
	mutations []string

	// failWhen, when set, fails any exec whose script matches.
	failWhen func(script string) error
}

func newFakeTarget() *fakeTarget {
	return &fakeTarget{address: "127.0.0.1"}
}

func (f *fakeTarget) TargetExists(_ context.Context, _ string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.exists, nil
}

func (f *fakeTarget) TargetRunning(_ context.Context, _ string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.running, nil
}

func (f *fakeTarget) CreateTarget(_ context.Context, _ v1alpha1.TargetSpec, _ ...int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.exists = true
	f.createCalls++
	f.mutations = append(f.mutations, "create_target")

	return nil
}

func (f *fakeTarget) StartTarget(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.running = true
	f.startCalls++
	f.mutations = append(f.mutations, "start_target")

	return nil
}

func (f *fakeTarget) Address(_ context.Context, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.address, nil
}

func (f *fakeTarget) Exec(_ context.Context, _ string, cmd []string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	script := cmd[len(cmd)-1]
	f.execLog = append(f.execLog, script)

	if f.failWhen != nil {
		if err := f.failWhen(script); err != nil {
			return "", err
		}
	}

	const probeSuffix = " && echo ok || echo missing"
	if strings.HasSuffix(script, probeSuffix) {
		if f.probeSatisfied(strings.TrimSuffix(script, probeSuffix)) {
			return "ok\n", nil
		}

		return "missing\n", nil
	}

	return f.apply(script)
}

// probeSatisfied answers the guard conditions the steps issue. The combined
// service condition must be matched before the individual ones.
func (f *fakeTarget) probeSatisfied(condition string) bool {
	switch {
	case strings.Contains(condition, "dpkg -s"):
		return f.packagesInstalled
	case strings.Contains(condition, "id -u"):
		return f.accountExists
	case strings.Contains(condition, "stat -c"):
		return f.dirsExist
	case strings.Contains(condition, VenvDir+"/bin/python"):
		return f.venvBuilt
	case strings.Contains(condition, "redis-cli ping"):
		return f.cacheActive
	case strings.Contains(condition, "is-active --quiet "+CacheService+" && "):
		return f.cacheActive && f.appActive
	case strings.Contains(condition, "is-active --quiet "+CacheService):
		return f.cacheActive
	case strings.Contains(condition, "is-active --quiet "+AppService):
		return f.appActive
	default:
		return false
	}
}

// apply mutates the emulated machine the way the real scripts would.
func (f *fakeTarget) apply(script string) (string, error) {
	switch {
	case strings.Contains(script, "apt-get install"):
		f.packagesInstalled = true
		f.mutations = append(f.mutations, "install_packages")
	case strings.Contains(script, "apt-get update"):
		// Index refresh only.
	case strings.Contains(script, "useradd"):
		f.accountExists = true
		f.mutations = append(f.mutations, "create_account")
	case strings.Contains(script, "mkdir -p"):
		f.dirsExist = true
		f.mutations = append(f.mutations, "create_directories")
	case strings.Contains(script, "git clone"), strings.Contains(script, "git -C"):
		f.sourceFetched = true
	case strings.Contains(script, "python3 -m venv"):
		f.venvBuilt = true
		f.mutations = append(f.mutations, "build_venv")
	case strings.Contains(script, "cat > "+SettingsPath):
		f.settingsContent = heredocBody(script)
		f.settingsWrites++
	case strings.Contains(script, "cat > "+UnitPath):
		f.unitContent = heredocBody(script)
	case strings.Contains(script, "cat "+UnitPath):
		return f.unitContent, nil
	case strings.Contains(script, "enable --now "+CacheService):
		f.cacheActive = true
		f.mutations = append(f.mutations, "enable_cache")
	case strings.Contains(script, "enable --now "+AppService):
		f.appActive = true
		f.mutations = append(f.mutations, "enable_app")
	}

	return "", nil
}

func (f *fakeTarget) mutationCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0

	for _, mutation := range f.mutations {
		if mutation == name {
			count++
		}
	}

	return count
}

// heredocBody extracts the content piped into a file write script.
func heredocBody(script string) string {
	open := "<< '" + heredocMarker + "'\n"

	start := strings.Index(script, open)
	if start < 0 {
		return ""
	}

	rest := script[start+len(open):]

	end := strings.Index(rest, heredocMarker)
	if end < 0 {
		return ""
	}

	return rest[:end]
}
