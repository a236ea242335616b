package domain

import (
	"context"
	"io"
)

// KeySink receives the ordered, labelled contributions that make up a rule
// key. The sink is order-sensitive: permuting contributions changes the
// resulting digest, so callers must normalize any map-derived data before
// feeding it.
type KeySink interface {
	// String folds a labelled string value.
	String(label, value string)
	// Strings folds a labelled string list in the given order.
	Strings(label string, values []string)
	// Bool folds a labelled boolean.
	Bool(label string, value bool)
	// Path folds a path as a string, for fields where the path itself is
	// part of the rule's identity (e.g. output naming).
	Path(label, path string)
	// File folds the content digest of the file at path, never the path
	// string, so moving an unchanged file does not perturb the key.
	File(label, path string)
	// Digest folds a nested rule key.
	Digest(label string, key RuleKey)
}

// BuildContext carries the per-invocation facts a step needs to run: the
// workspace root and the writers that capture step output.
type BuildContext struct {
	// Root is the absolute workspace root all rule paths are relative to.
	Root string
	// Stdout and Stderr capture step output for reporting.
	Stdout io.Writer
	Stderr io.Writer
}

// Step is one executable unit of a rule's build. The engine treats a non-zero
// exit code as failure and does not interpret step internals.
type Step interface {
	// Description is a short human-readable label for reporting.
	Description() string
	// Execute runs the step and returns its exit code.
	Execute(ctx context.Context, bctx BuildContext) (int, error)
}

// Rule is the capability interface every rule kind implements. Dependencies
// are already-resolved rule references; the graph builder rejects unresolved
// names and cycles before the engine runs.
type Rule interface {
	// Target identifies the rule.
	Target() BuildTarget

	// Dependencies returns the declared dependency rules, in order.
	Dependencies() []Rule

	// ExtraDependencies returns non-declared dependencies such as tool
	// rules, in order.
	ExtraDependencies() []Rule

	// OutputPath returns the rule's single output path relative to the
	// workspace root, and whether the rule has one. Rules without an
	// output (grouping rules) only gate ordering and are never cached.
	OutputPath() (string, bool)

	// Steps produces the rule's build steps in execution order.
	Steps(bctx BuildContext) []Step

	// AppendToKey feeds the rule's own identity contributions to the sink
	// in a fixed order. Dependency keys are folded by the key builder, not
	// here.
	AppendToKey(sink KeySink)
}
