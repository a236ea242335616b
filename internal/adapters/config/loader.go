// Package config implements the mason.yaml configuration loader.
package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/mason/internal/adapters/shell"
	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultFilename is the configuration file looked up in the workspace root.
const DefaultFilename = "mason.yaml"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader over a YAML file.
type Loader struct {
	Filename string
}

// NewLoader creates a Loader reading the default filename.
func NewLoader() *Loader {
	return &Loader{Filename: DefaultFilename}
}

// Load implements ports.ConfigLoader.
func (l *Loader) Load(cwd string) (*domain.Graph, domain.Settings, error) {
	path := filepath.Join(cwd, l.Filename)
	data, err := os.ReadFile(path) //nolint:gosec // path is workspace-relative, provided by user
	if err != nil {
		return nil, domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrConfigReadFailed, err.Error()), "path", path)
	}

	var file Masonfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domain.Settings{}, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "path", path)
	}
	if len(file.Rules) == 0 {
		return nil, domain.Settings{}, zerr.With(domain.ErrNoRulesDefined, "path", path)
	}

	settings, err := file.settings()
	if err != nil {
		return nil, domain.Settings{}, err
	}

	graph, err := buildGraph(file.Rules)
	if err != nil {
		return nil, domain.Settings{}, err
	}
	return graph, settings, nil
}

func (f *Masonfile) settings() (domain.Settings, error) {
	s := domain.Settings{Parallelism: f.Parallelism}
	s.Cache.Dir = domain.DirCacheSettings{
		Enabled: f.Cache.Dir.Enabled,
		Path:    f.Cache.Dir.Path,
	}

	sqlCfg := domain.SQLCacheSettings{
		Enabled:         f.Cache.SQL.Enabled,
		DSN:             f.Cache.SQL.DSN,
		ReadOnly:        f.Cache.SQL.ReadOnly,
		RefreshFraction: f.Cache.SQL.RefreshFraction,
	}
	var err error
	if sqlCfg.Timeout, err = parseDuration(f.Cache.SQL.Timeout); err != nil {
		return domain.Settings{}, zerr.With(err, "field", "cache.sql.timeout")
	}
	if sqlCfg.GracePeriod, err = parseDuration(f.Cache.SQL.GracePeriod); err != nil {
		return domain.Settings{}, zerr.With(err, "field", "cache.sql.grace_period")
	}
	s.Cache.SQL = sqlCfg

	s.Normalize()
	return s, nil
}

func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, err.Error()), "duration", s)
	}
	return d, nil
}

// buildGraph parses every target name, then resolves dependency references
// into rule values depth-first. Resolution rejects unknown names; a reference
// cycle surfaces here as well since a rule cannot be constructed before its
// dependencies.
func buildGraph(dtos map[string]RuleDTO) (*domain.Graph, error) {
	r := &resolver{
		dtos:  make(map[domain.BuildTarget]RuleDTO, len(dtos)),
		rules: make(map[domain.BuildTarget]domain.Rule, len(dtos)),
		state: make(map[domain.BuildTarget]resolveState, len(dtos)),
	}

	targets := make([]domain.BuildTarget, 0, len(dtos))
	for name, dto := range dtos {
		target, err := domain.ParseTarget(name)
		if err != nil {
			return nil, err
		}
		if _, dup := r.dtos[target]; dup {
			return nil, zerr.With(domain.ErrDuplicateRule, "target", target.FullName())
		}
		r.dtos[target] = dto
		targets = append(targets, target)
	}

	// Deterministic construction order regardless of map iteration.
	slices.SortFunc(targets, func(a, b domain.BuildTarget) int {
		return strings.Compare(a.FullName(), b.FullName())
	})

	graph := domain.NewGraph()
	for _, target := range targets {
		rule, err := r.resolve(target)
		if err != nil {
			return nil, err
		}
		if err := graph.AddRule(rule); err != nil {
			return nil, err
		}
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

type resolveState uint8

const (
	unresolved resolveState = iota
	resolving
	resolved
)

type resolver struct {
	dtos  map[domain.BuildTarget]RuleDTO
	rules map[domain.BuildTarget]domain.Rule
	state map[domain.BuildTarget]resolveState
}

func (r *resolver) resolve(target domain.BuildTarget) (domain.Rule, error) {
	if r.state[target] == resolved {
		return r.rules[target], nil
	}
	if r.state[target] == resolving {
		return nil, zerr.With(domain.ErrCycleDetected, "target", target.FullName())
	}
	dto, ok := r.dtos[target]
	if !ok {
		return nil, zerr.With(domain.ErrMissingDependency, "target", target.FullName())
	}
	r.state[target] = resolving

	deps, err := r.resolveAll(dto.Deps)
	if err != nil {
		return nil, zerr.With(err, "referenced_by", target.FullName())
	}
	extraDeps, err := r.resolveAll(dto.ExtraDeps)
	if err != nil {
		return nil, zerr.With(err, "referenced_by", target.FullName())
	}

	var rule domain.Rule
	switch {
	case len(dto.Cmd) == 0 && dto.Out == "":
		rule = domain.NewAliasRule(target, append(deps, extraDeps...))
	case dto.Out == "":
		return nil, zerr.With(domain.ErrMissingOutput, "target", target.FullName())
	default:
		rule = domain.NewGenRule(target, dto.Srcs, dto.Cmd, dto.Out, deps, extraDeps, shell.MakeSteps(dto.Env))
	}

	r.state[target] = resolved
	r.rules[target] = rule
	return rule, nil
}

func (r *resolver) resolveAll(names []string) ([]domain.Rule, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rules := make([]domain.Rule, 0, len(names))
	for _, name := range names {
		target, err := domain.ParseTarget(name)
		if err != nil {
			return nil, err
		}
		rule, err := r.resolve(target)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}
