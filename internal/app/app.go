// Package app implements the application layer for mason: it assembles the
// per-invocation build pipeline from the process-level collaborators and
// drives the engine.
package app

import (
	"context"
	"errors"
	"path/filepath"
	"slices"

	"go.trai.ch/mason/internal/adapters/cache"
	"go.trai.ch/mason/internal/adapters/fs"
	"go.trai.ch/mason/internal/adapters/keys"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/mason/internal/engine"
	"go.trai.ch/zerr"
)

// defaultDirCachePath is used when the dir tier is enabled without a path.
const defaultDirCachePath = ".mason-cache"

// App drives build invocations. The injected collaborators live for the
// process; the graph, key builder and cache tiers are assembled fresh for
// every invocation.
type App struct {
	loader   ports.ConfigLoader
	bus      ports.EventBus
	executor ports.StepExecutor
	fs       ports.Filesystem
}

// New creates an App from the process-level collaborators.
func New(loader ports.ConfigLoader, bus ports.EventBus, executor ports.StepExecutor, filesystem ports.Filesystem) *App {
	return &App{
		loader:   loader,
		bus:      bus,
		executor: executor,
		fs:       filesystem,
	}
}

// Options are per-invocation flag overrides layered over the file settings.
type Options struct {
	// NoRemote disables the SQL tier regardless of configuration.
	NoRemote bool
	// TraceKeys records per-rule key contribution traces.
	TraceKeys bool
	// Parallelism overrides the worker pool size when positive.
	Parallelism int
}

// Run builds the named targets in the workspace rooted at root, including
// their transitive dependencies and nothing else.
func (a *App) Run(ctx context.Context, root string, targetNames []string, opts Options) error {
	if len(targetNames) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	graph, settings, err := a.loader.Load(root)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	applyOverrides(&settings, opts)

	targets := make([]domain.BuildTarget, 0, len(targetNames))
	for _, name := range targetNames {
		target, err := domain.ParseTarget(name)
		if err != nil {
			return err
		}
		targets = append(targets, target)
	}

	sub, err := graph.Subgraph(targets...)
	if err != nil {
		return err
	}

	artifacts := cache.NewMultiCache(a.cacheTiers(root, settings)...)
	builder := keys.NewBuilder(fs.NewHashCache(a.fs), settings.TraceKeys)
	eng := engine.New(sub, builder, artifacts, a.executor, a.fs, a.bus, settings.Parallelism)

	runErr := eng.Run(ctx, root)
	if closeErr := artifacts.Close(); closeErr != nil {
		runErr = errors.Join(runErr, closeErr)
	}
	return runErr
}

// Targets returns the full names of all configured rules, sorted.
func (a *App) Targets(root string) ([]string, error) {
	graph, _, err := a.loader.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	names := make([]string, 0, graph.RuleCount())
	for rule := range graph.Walk() {
		names = append(names, rule.Target().FullName())
	}
	slices.Sort(names)
	return names, nil
}

func applyOverrides(settings *domain.Settings, opts Options) {
	if opts.TraceKeys {
		settings.TraceKeys = true
	}
	if opts.Parallelism > 0 {
		settings.Parallelism = opts.Parallelism
	}
	if opts.NoRemote {
		settings.Cache.SQL.Enabled = false
	}
}

// cacheTiers assembles the enabled tiers in fetch order: local first, remote
// second. With no tier enabled the multi cache degrades to all-miss.
func (a *App) cacheTiers(root string, settings domain.Settings) []ports.ArtifactCache {
	var tiers []ports.ArtifactCache

	if settings.Cache.Dir.Enabled {
		path := settings.Cache.Dir.Path
		if path == "" {
			path = defaultDirCachePath
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		tiers = append(tiers, cache.NewDirCache(path, a.fs, a.bus))
	}

	if settings.Cache.SQL.Enabled {
		tiers = append(tiers, cache.NewSQLCache(settings.Cache.SQL, a.bus))
	}

	return tiers
}
