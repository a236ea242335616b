package app_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"go.trai.ch/mason/internal/adapters/config"
	"go.trai.ch/mason/internal/adapters/events"
	"go.trai.ch/mason/internal/adapters/fs"
	"go.trai.ch/mason/internal/adapters/shell"
	"go.trai.ch/mason/internal/app"
	"go.trai.ch/mason/internal/core/domain"
)

const workspaceConfig = `
cache:
  dir:
    enabled: true
    path: .cache
rules:
  "//lib:core":
    srcs: [lib.txt]
    cmd:
      - [sh, -c, "mkdir -p out && cat lib.txt > out/lib.txt"]
    out: out/lib.txt
  "//app:bin":
    deps: ["//lib:core"]
    srcs: [main.txt]
    cmd:
      - [sh, -c, "mkdir -p out && cat out/lib.txt main.txt > out/bin.txt"]
    out: out/bin.txt
  "//tools:aux":
    srcs: [aux.txt]
    cmd:
      - [sh, -c, "mkdir -p out && cat aux.txt > out/aux.txt"]
    out: out/aux.txt
`

type collector struct {
	mu     sync.Mutex
	events []domain.Event
}

func (c *collector) HandleEvent(event domain.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
}

func (c *collector) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.events {
		if e.EventName() == name {
			n++
		}
	}
	return n
}

func (c *collector) cachedFinishes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, e := range c.events {
		if fin, ok := e.(domain.RuleFinishedEvent); ok && fin.Cached {
			n++
		}
	}
	return n
}

func newWorkspace(t *testing.T, masonfile string) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"mason.yaml": masonfile,
		"lib.txt":    "library\n",
		"main.txt":   "main\n",
		"aux.txt":    "aux\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0o644))
	}
	return root
}

// runBuild assembles a fresh process stack, runs one invocation and flushes
// the bus so the collector holds every event.
func runBuild(t *testing.T, root string, targets []string, opts app.Options) (*collector, error) {
	t.Helper()
	col := &collector{}
	bus := events.NewBus()
	bus.Subscribe(col)

	a := app.New(config.NewLoader(), bus, shell.NewExecutor(bus), fs.NewFilesystem())
	err := a.Run(context.Background(), root, targets, opts)
	require.NoError(t, bus.Close())
	return col, err
}

func TestApp_BuildsRequestedTargetsOnly(t *testing.T) {
	root := newWorkspace(t, workspaceConfig)

	col, err := runBuild(t, root, []string{"//app:bin"}, app.Options{})
	require.NoError(t, err)

	content, readErr := os.ReadFile(filepath.Join(root, "out", "bin.txt"))
	require.NoError(t, readErr)
	require.Equal(t, "library\nmain\n", string(content))

	_, statErr := os.Stat(filepath.Join(root, "out", "aux.txt"))
	require.ErrorIs(t, statErr, os.ErrNotExist, "unrequested rule must not build")

	require.Equal(t, 2, col.count("rule.finished"))
}

func TestApp_SecondRunRestoresFromCache(t *testing.T) {
	root := newWorkspace(t, workspaceConfig)

	_, err := runBuild(t, root, []string{"//app:bin"}, app.Options{})
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(filepath.Join(root, "out")))

	col, err := runBuild(t, root, []string{"//app:bin"}, app.Options{})
	require.NoError(t, err)

	content, readErr := os.ReadFile(filepath.Join(root, "out", "bin.txt"))
	require.NoError(t, readErr)
	require.Equal(t, "library\nmain\n", string(content))

	require.Equal(t, 2, col.cachedFinishes())
	require.Equal(t, 2, col.count("cache.hit"))
}

func TestApp_NoTargets(t *testing.T) {
	root := newWorkspace(t, workspaceConfig)
	_, err := runBuild(t, root, nil, app.Options{})
	require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestApp_UnknownTarget(t *testing.T) {
	root := newWorkspace(t, workspaceConfig)
	_, err := runBuild(t, root, []string{"//app:missing"}, app.Options{})
	require.ErrorIs(t, err, domain.ErrRuleNotFound)
}

func TestApp_InvalidTargetName(t *testing.T) {
	root := newWorkspace(t, workspaceConfig)
	_, err := runBuild(t, root, []string{"not-a-target"}, app.Options{})
	require.ErrorIs(t, err, domain.ErrInvalidTarget)
}

func TestApp_FailingRule(t *testing.T) {
	const failingConfig = `
rules:
  "//app:bad":
    cmd:
      - [sh, -c, "exit 3"]
    out: out/never.txt
`
	root := newWorkspace(t, failingConfig)
	_, err := runBuild(t, root, []string{"//app:bad"}, app.Options{})
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	require.ErrorIs(t, err, domain.ErrStepFailed)
}

func TestApp_NoRemoteDisablesSQLTier(t *testing.T) {
	const remoteConfig = `
cache:
  sql:
    enabled: true
    dsn: "file:unreachable.db?mode=memory"
    timeout: 100ms
rules:
  "//lib:core":
    srcs: [lib.txt]
    cmd:
      - [sh, -c, "mkdir -p out && cat lib.txt > out/lib.txt"]
    out: out/lib.txt
`
	root := newWorkspace(t, remoteConfig)

	col, err := runBuild(t, root, []string{"//lib:core"}, app.Options{NoRemote: true})
	require.NoError(t, err)
	require.Zero(t, col.count("cache.connection_failure"))
}

func TestApp_Targets(t *testing.T) {
	root := newWorkspace(t, workspaceConfig)

	bus := events.NewBus()
	t.Cleanup(func() { _ = bus.Close() })
	a := app.New(config.NewLoader(), bus, shell.NewExecutor(bus), fs.NewFilesystem())

	names, err := a.Targets(root)
	require.NoError(t, err)
	require.Equal(t, []string{"//app:bin", "//lib:core", "//tools:aux"}, names)
}
