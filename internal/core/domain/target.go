// Package domain contains the core domain models for the build rule graph.
package domain

import (
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// FlavorSet is an ordered, deduplicated set of flavor tags attached to a
// build target. Flavors select among a rule's behaviors (e.g. producing a
// compilation database instead of a binary) without changing the target's
// base identity. The zero value is the empty set.
type FlavorSet struct {
	canonical InternedString
}

// NewFlavorSet builds a FlavorSet from the given tags, preserving first
// occurrence order and dropping duplicates.
func NewFlavorSet(flavors ...string) FlavorSet {
	if len(flavors) == 0 {
		return FlavorSet{}
	}
	seen := make(map[string]bool, len(flavors))
	ordered := make([]string, 0, len(flavors))
	for _, f := range flavors {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		ordered = append(ordered, f)
	}
	return FlavorSet{canonical: NewInternedString(strings.Join(ordered, ","))}
}

// IsEmpty reports whether the set contains no flavors.
func (fs FlavorSet) IsEmpty() bool {
	return fs.canonical.String() == ""
}

// Contains reports whether the set contains the given flavor.
func (fs FlavorSet) Contains(flavor string) bool {
	return slices.Contains(fs.Slice(), flavor)
}

// Slice returns the flavors in declaration order.
func (fs FlavorSet) Slice() []string {
	s := fs.canonical.String()
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

// String returns the canonical comma-joined form.
func (fs FlavorSet) String() string {
	return fs.canonical.String()
}

// BuildTarget is the immutable identifier of a build rule: a base path, a
// short name and a flavor set. Targets are comparable and are used as map
// keys throughout the engine. Construct once when the graph is built; never
// mutate.
type BuildTarget struct {
	basePath  InternedString
	shortName InternedString
	flavors   FlavorSet
}

// NewBuildTarget creates a BuildTarget from its parts. The base path uses
// forward slashes and no leading "//".
func NewBuildTarget(basePath, shortName string, flavors FlavorSet) BuildTarget {
	return BuildTarget{
		basePath:  NewInternedString(basePath),
		shortName: NewInternedString(shortName),
		flavors:   flavors,
	}
}

// ParseTarget parses a full target name of the form
// "//base/path:name#flavor1,flavor2". The "//" prefix and the flavor suffix
// are optional.
func ParseTarget(s string) (BuildTarget, error) {
	rest := strings.TrimPrefix(s, "//")

	var flavors FlavorSet
	if idx := strings.IndexByte(rest, '#'); idx >= 0 {
		flavors = NewFlavorSet(strings.Split(rest[idx+1:], ",")...)
		rest = rest[:idx]
	}

	base, name, found := strings.Cut(rest, ":")
	if !found || name == "" {
		return BuildTarget{}, zerr.With(ErrInvalidTarget, "target", s)
	}
	if strings.Contains(name, ":") {
		return BuildTarget{}, zerr.With(ErrInvalidTarget, "target", s)
	}
	return NewBuildTarget(base, name, flavors), nil
}

// BasePath returns the target's base path.
func (t BuildTarget) BasePath() string {
	return t.basePath.String()
}

// ShortName returns the target's short name.
func (t BuildTarget) ShortName() string {
	return t.shortName.String()
}

// Flavors returns the target's flavor set.
func (t BuildTarget) Flavors() FlavorSet {
	return t.flavors
}

// FullName renders the canonical "//base:name#flavors" form.
func (t BuildTarget) FullName() string {
	var b strings.Builder
	b.WriteString("//")
	b.WriteString(t.basePath.String())
	b.WriteString(":")
	b.WriteString(t.shortName.String())
	if !t.flavors.IsEmpty() {
		b.WriteString("#")
		b.WriteString(t.flavors.String())
	}
	return b.String()
}

// String implements fmt.Stringer.
func (t BuildTarget) String() string {
	return t.FullName()
}
