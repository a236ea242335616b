package domain

import "strings"

// GenRule is the general-purpose rule kind: it runs a sequence of commands
// over declared source files to produce one output file. The step
// construction is injected by the graph builder so the domain stays free of
// process-execution concerns.
type GenRule struct {
	target    BuildTarget
	srcs      []string
	commands  [][]string
	out       string
	deps      []Rule
	extraDeps []Rule

	// makeSteps turns the command list into executable steps. Set by the
	// graph builder.
	makeSteps func(bctx BuildContext, commands [][]string) []Step
}

// NewGenRule constructs a GenRule. srcs and out are workspace-relative paths;
// commands is a list of argv vectors executed in order.
func NewGenRule(
	target BuildTarget,
	srcs []string,
	commands [][]string,
	out string,
	deps []Rule,
	extraDeps []Rule,
	makeSteps func(bctx BuildContext, commands [][]string) []Step,
) *GenRule {
	return &GenRule{
		target:    target,
		srcs:      srcs,
		commands:  commands,
		out:       out,
		deps:      deps,
		extraDeps: extraDeps,
		makeSteps: makeSteps,
	}
}

// Target implements Rule.
func (r *GenRule) Target() BuildTarget { return r.target }

// Dependencies implements Rule.
func (r *GenRule) Dependencies() []Rule { return r.deps }

// ExtraDependencies implements Rule.
func (r *GenRule) ExtraDependencies() []Rule { return r.extraDeps }

// OutputPath implements Rule.
func (r *GenRule) OutputPath() (string, bool) {
	if r.out == "" {
		return "", false
	}
	return r.out, true
}

// Sources returns the declared source paths.
func (r *GenRule) Sources() []string { return r.srcs }

// Steps implements Rule.
func (r *GenRule) Steps(bctx BuildContext) []Step {
	if r.makeSteps == nil || len(r.commands) == 0 {
		return nil
	}
	return r.makeSteps(bctx, r.commands)
}

// AppendToKey implements Rule. The contribution order is fixed: rule kind,
// target identity, flavors, commands, output path, then source contents.
func (r *GenRule) AppendToKey(sink KeySink) {
	sink.String("kind", "genrule")
	sink.String("target", r.target.BasePath()+":"+r.target.ShortName())
	sink.Strings("flavors", r.target.Flavors().Slice())
	for _, argv := range r.commands {
		sink.String("cmd", strings.Join(argv, "\x1f"))
	}
	sink.Path("out", r.out)
	for _, src := range r.srcs {
		sink.File("src", src)
	}
}

// AliasRule groups other rules under one target. It has no output and no
// steps; building it means building its dependencies.
type AliasRule struct {
	target BuildTarget
	deps   []Rule
}

// NewAliasRule constructs an AliasRule over the given dependencies.
func NewAliasRule(target BuildTarget, deps []Rule) *AliasRule {
	return &AliasRule{target: target, deps: deps}
}

// Target implements Rule.
func (r *AliasRule) Target() BuildTarget { return r.target }

// Dependencies implements Rule.
func (r *AliasRule) Dependencies() []Rule { return r.deps }

// ExtraDependencies implements Rule.
func (r *AliasRule) ExtraDependencies() []Rule { return nil }

// OutputPath implements Rule.
func (r *AliasRule) OutputPath() (string, bool) { return "", false }

// Steps implements Rule.
func (r *AliasRule) Steps(BuildContext) []Step { return nil }

// AppendToKey implements Rule.
func (r *AliasRule) AppendToKey(sink KeySink) {
	sink.String("kind", "alias")
	sink.String("target", r.target.BasePath()+":"+r.target.ShortName())
	sink.Strings("flavors", r.target.Flavors().Slice())
}
