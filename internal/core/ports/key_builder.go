package ports

import "go.trai.ch/mason/internal/core/domain"

// KeyBuilder computes rule keys. Implementations memoize per rule per build
// invocation and fold dependency keys recursively, so a key is transitively
// sensitive to the whole dependency subgraph.
//
//go:generate go run go.uber.org/mock/mockgen -source=key_builder.go -destination=mocks/mock_key_builder.go -package=mocks
type KeyBuilder interface {
	// ComputeKey returns the rule's key, computing it at most once per
	// invocation. Dependency keys must be computable, which the engine
	// guarantees by evaluating in post-order.
	ComputeKey(rule domain.Rule) (domain.RuleKey, error)
}
