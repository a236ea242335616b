package keys

import (
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.KeyBuilder = (*Builder)(nil)

// Builder computes rule keys, memoized per build invocation. The memo map is
// per-key append-only: concurrent computations of the same never-seen rule
// may both run, but they produce the same key and the second store is
// idempotent, so no lock is held around the computation itself.
type Builder struct {
	files  ports.FileHashCache
	traced bool
	memo   sync.Map // domain.BuildTarget -> domain.RuleKey
}

// NewBuilder creates a Builder over the given file hash cache. Both are
// scoped to one invocation and discarded with it.
func NewBuilder(files ports.FileHashCache, traced bool) *Builder {
	return &Builder{files: files, traced: traced}
}

// ComputeKey implements ports.KeyBuilder. The contribution order is fixed:
// the rule's own declared contributions first, then the keys of its declared
// dependencies, then its extra dependencies. Dependency keys are folded in
// full, making the key transitively sensitive to the whole subgraph.
func (b *Builder) ComputeKey(rule domain.Rule) (domain.RuleKey, error) {
	target := rule.Target()
	if cached, ok := b.memo.Load(target); ok {
		return cached.(domain.RuleKey), nil
	}

	sink := NewSink(b.files, b.traced)
	rule.AppendToKey(sink)

	for _, dep := range rule.Dependencies() {
		depKey, err := b.ComputeKey(dep)
		if err != nil {
			return domain.RuleKey{}, err
		}
		sink.Digest("dep", depKey)
	}
	for _, dep := range rule.ExtraDependencies() {
		depKey, err := b.ComputeKey(dep)
		if err != nil {
			return domain.RuleKey{}, err
		}
		sink.Digest("extra_dep", depKey)
	}

	key, err := sink.Finish()
	if err != nil {
		return domain.RuleKey{}, zerr.With(err, "target", target.FullName())
	}

	actual, _ := b.memo.LoadOrStore(target, key)
	return actual.(domain.RuleKey), nil
}
