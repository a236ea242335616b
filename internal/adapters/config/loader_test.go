package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.trai.ch/mason/internal/adapters/config"
	"go.trai.ch/mason/internal/core/domain"
)

func writeMasonfile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFilename), []byte(content), 0o644))
	return dir
}

func load(t *testing.T, content string) (*domain.Graph, domain.Settings, error) {
	t.Helper()
	return config.NewLoader().Load(writeMasonfile(t, content))
}

const fullConfig = `
parallelism: 4
cache:
  dir:
    enabled: true
    path: .mason-cache
  sql:
    enabled: true
    dsn: file:cache.db
    read_only: true
    timeout: 2s
    refresh_fraction: 0.25
    grace_period: 1s
rules:
  "//lib:core":
    srcs: [lib/core.c]
    cmd:
      - [cc, -c, lib/core.c, -o, out/core.o]
    out: out/core.o
  "//app:bin":
    srcs: [app/main.c]
    cmd:
      - [cc, app/main.c, out/core.o, -o, out/bin]
    out: out/bin
    deps: ["//lib:core"]
    extra_deps: ["//tools:gen"]
  "//tools:gen":
    cmd:
      - [touch, out/gen]
    out: out/gen
  "//app:all":
    deps: ["//app:bin"]
`

func TestLoader_FullConfig(t *testing.T) {
	graph, settings, err := load(t, fullConfig)
	require.NoError(t, err)
	require.Equal(t, 4, graph.RuleCount())

	require.Equal(t, 4, settings.Parallelism)
	require.True(t, settings.Cache.Dir.Enabled)
	require.Equal(t, ".mason-cache", settings.Cache.Dir.Path)
	require.True(t, settings.Cache.SQL.Enabled)
	require.True(t, settings.Cache.SQL.ReadOnly)
	require.Equal(t, 2*time.Second, settings.Cache.SQL.Timeout)
	require.Equal(t, 0.25, settings.Cache.SQL.RefreshFraction)
	require.Equal(t, time.Second, settings.Cache.SQL.GracePeriod)

	binTarget, err := domain.ParseTarget("//app:bin")
	require.NoError(t, err)
	bin, ok := graph.GetRule(binTarget)
	require.True(t, ok)
	require.Len(t, bin.Dependencies(), 1)
	require.Len(t, bin.ExtraDependencies(), 1)
	require.Equal(t, "//lib:core", bin.Dependencies()[0].Target().FullName())
	require.Equal(t, "//tools:gen", bin.ExtraDependencies()[0].Target().FullName())

	out, ok := bin.OutputPath()
	require.True(t, ok)
	require.Equal(t, "out/bin", out)

	allTarget, err := domain.ParseTarget("//app:all")
	require.NoError(t, err)
	all, ok := graph.GetRule(allTarget)
	require.True(t, ok)
	require.IsType(t, (*domain.AliasRule)(nil), all)
	_, hasOut := all.OutputPath()
	require.False(t, hasOut)
}

func TestLoader_UnsetSQLKnobsGetDefaults(t *testing.T) {
	_, settings, err := load(t, `
rules:
  "//a:a":
    cmd: [[touch, out/a]]
    out: out/a
`)
	require.NoError(t, err)
	require.Equal(t, domain.DefaultSQLTimeout, settings.Cache.SQL.Timeout)
	require.Equal(t, domain.DefaultRefreshFraction, settings.Cache.SQL.RefreshFraction)
	require.Equal(t, domain.DefaultGracePeriod, settings.Cache.SQL.GracePeriod)
	require.False(t, settings.Cache.SQL.Enabled)
}

func TestLoader_MissingDependency(t *testing.T) {
	_, _, err := load(t, `
rules:
  "//a:a":
    cmd: [[touch, out/a]]
    out: out/a
    deps: ["//b:missing"]
`)
	require.ErrorIs(t, err, domain.ErrMissingDependency)
}

func TestLoader_DependencyCycle(t *testing.T) {
	_, _, err := load(t, `
rules:
  "//a:a":
    cmd: [[touch, out/a]]
    out: out/a
    deps: ["//b:b"]
  "//b:b":
    cmd: [[touch, out/b]]
    out: out/b
    deps: ["//a:a"]
`)
	require.ErrorIs(t, err, domain.ErrCycleDetected)
}

func TestLoader_CommandsRequireOutput(t *testing.T) {
	_, _, err := load(t, `
rules:
  "//a:a":
    cmd: [[touch, somewhere]]
`)
	require.ErrorIs(t, err, domain.ErrMissingOutput)
}

func TestLoader_InvalidTargetName(t *testing.T) {
	_, _, err := load(t, `
rules:
  "not-a-target":
    cmd: [[touch, out/a]]
    out: out/a
`)
	require.ErrorIs(t, err, domain.ErrInvalidTarget)
}

func TestLoader_NoRules(t *testing.T) {
	_, _, err := load(t, `parallelism: 2`)
	require.ErrorIs(t, err, domain.ErrNoRulesDefined)
}

func TestLoader_MissingFile(t *testing.T) {
	_, _, err := config.NewLoader().Load(t.TempDir())
	require.Error(t, err)
}

func TestLoader_MalformedYAML(t *testing.T) {
	_, _, err := load(t, "rules: [not: a, map")
	require.Error(t, err)
}

func TestLoader_MalformedDuration(t *testing.T) {
	_, _, err := load(t, `
cache:
  sql:
    timeout: soon
rules:
  "//a:a":
    cmd: [[touch, out/a]]
    out: out/a
`)
	require.ErrorIs(t, err, domain.ErrConfigParseFailed)
}
