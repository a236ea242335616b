package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// Graph is the directed acyclic graph of build rules for one invocation. It
// exclusively owns the rule nodes; the engine holds references into it. All
// dependency references are resolved at construction, so validation only has
// to reject cycles.
type Graph struct {
	rules map[BuildTarget]Rule

	// populated by Validate
	executionOrder []BuildTarget
	dependents     map[BuildTarget][]BuildTarget
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		rules: make(map[BuildTarget]Rule),
	}
}

// AddRule adds a rule to the graph. It returns an error if a rule with the
// same target already exists.
func (g *Graph) AddRule(r Rule) error {
	if _, exists := g.rules[r.Target()]; exists {
		return zerr.With(ErrDuplicateRule, "target", r.Target().FullName())
	}
	g.rules[r.Target()] = r
	return nil
}

// GetRule looks up a rule by target.
func (g *Graph) GetRule(t BuildTarget) (Rule, bool) {
	r, ok := g.rules[t]
	return r, ok
}

// RuleCount returns the number of rules in the graph.
func (g *Graph) RuleCount() int {
	return len(g.rules)
}

// AllDeps yields a rule's declared dependencies followed by its extra
// dependencies. Both kinds participate equally in ordering and key
// computation.
func AllDeps(r Rule) []Rule {
	deps := r.Dependencies()
	extra := r.ExtraDependencies()
	if len(extra) == 0 {
		return deps
	}
	out := make([]Rule, 0, len(deps)+len(extra))
	out = append(out, deps...)
	return append(out, extra...)
}

// Validate checks for cycles using a depth-first topological sort and
// populates the execution order and the reverse dependency index. A cycle is
// a fatal construction-time error; the engine never runs on an unvalidated
// graph.
func (g *Graph) Validate() error {
	g.executionOrder = make([]BuildTarget, 0, len(g.rules))
	g.dependents = make(map[BuildTarget][]BuildTarget, len(g.rules))

	visited := make(map[BuildTarget]int, len(g.rules)) // 0 unvisited, 1 visiting, 2 done
	var path []BuildTarget

	var visit func(r Rule) error
	visit = func(r Rule) error {
		t := r.Target()
		visited[t] = 1
		path = append(path, t)

		for _, dep := range AllDeps(r) {
			dt := dep.Target()
			g.dependents[dt] = append(g.dependents[dt], t)
			switch visited[dt] {
			case 1:
				return g.buildCycleError(path, dt)
			case 0:
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[t] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, t)
		return nil
	}

	for _, r := range g.rules {
		if visited[r.Target()] == 0 {
			if err := visit(r); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError renders the offending cycle path into error metadata.
func (g *Graph) buildCycleError(path []BuildTarget, dep BuildTarget) error {
	cyclePath := ""
	startIdx := 0
	for i, node := range path {
		if node == dep {
			startIdx = i
			break
		}
	}
	for i := startIdx; i < len(path); i++ {
		cyclePath += path[i].FullName() + " -> "
	}
	cyclePath += dep.FullName()
	return zerr.With(ErrCycleDetected, "cycle", cyclePath)
}

// Subgraph returns a new validated graph holding only the given roots and
// their transitive dependencies. Unknown roots are errors.
func (g *Graph) Subgraph(roots ...BuildTarget) (*Graph, error) {
	sub := NewGraph()

	var add func(r Rule)
	add = func(r Rule) {
		if _, ok := sub.rules[r.Target()]; ok {
			return
		}
		sub.rules[r.Target()] = r
		for _, dep := range AllDeps(r) {
			add(dep)
		}
	}

	for _, t := range roots {
		r, ok := g.rules[t]
		if !ok {
			return nil, zerr.With(ErrRuleNotFound, "target", t.FullName())
		}
		add(r)
	}

	if err := sub.Validate(); err != nil {
		return nil, err
	}
	return sub, nil
}

// Walk returns an iterator yielding rules in execution order (dependencies
// before dependents). Validate must have succeeded first.
func (g *Graph) Walk() iter.Seq[Rule] {
	return func(yield func(Rule) bool) {
		for _, t := range g.executionOrder {
			if !yield(g.rules[t]) {
				return
			}
		}
	}
}

// Dependents returns the targets that directly depend on the given target.
// Validate must have succeeded first.
func (g *Graph) Dependents(t BuildTarget) []BuildTarget {
	return g.dependents[t]
}
