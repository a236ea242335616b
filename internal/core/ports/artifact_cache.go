package ports

import (
	"context"

	"go.trai.ch/mason/internal/core/domain"
)

// ArtifactCache stores and retrieves build artifacts keyed by rule key. A
// cache may be one tier or a composite of several. Tier-local failures never
// escape as Go errors from Fetch; they surface as result kinds and bus
// events, and the build proceeds as if the key were absent.
//
//go:generate go run go.uber.org/mock/mockgen -source=artifact_cache.go -destination=mocks/mock_artifact_cache.go -package=mocks
type ArtifactCache interface {
	// Name identifies the cache tier in events and hit attribution.
	Name() string

	// Fetch looks up key. On a verified hit it returns the artifact
	// content; on a miss or a degraded error it returns nil content.
	Fetch(ctx context.Context, key domain.RuleKey) (domain.CacheResult, []byte)

	// Store records the artifact under key, best effort. Implementations
	// must not block the caller past their configured timeout; long
	// stores run in the background and are drained by Close.
	Store(ctx context.Context, key domain.RuleKey, artifact domain.Artifact)

	// StoreSupported reports whether this cache accepts stores.
	StoreSupported() bool

	// Close blocks until in-flight stores complete or are cancelled,
	// bounded by the tier's shutdown grace period.
	Close() error
}
