package cache

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.ArtifactCache = (*MultiCache)(nil)

// MultiCache composes tiers in priority order. Fetch walks the tiers and
// returns the first hit; Store fans out to every writable tier in parallel.
type MultiCache struct {
	tiers []ports.ArtifactCache
}

// NewMultiCache composes the given tiers. Fetch priority follows slice order.
func NewMultiCache(tiers ...ports.ArtifactCache) *MultiCache {
	return &MultiCache{tiers: tiers}
}

// Name implements ports.ArtifactCache.
func (c *MultiCache) Name() string { return "multi" }

// Fetch implements ports.ArtifactCache. A tier that errors is treated as a
// miss for dispatch purposes; the tier itself reports the failure. A hit
// served by a lower tier is copied into the writable tiers searched before
// it, so the next invocation finds it closer.
func (c *MultiCache) Fetch(ctx context.Context, key domain.RuleKey) (domain.CacheResult, []byte) {
	for i, tier := range c.tiers {
		result, content := tier.Fetch(ctx, key)
		if result.Kind() != domain.CacheResultHit {
			continue
		}
		if i > 0 {
			artifact := domain.NewArtifact(content)
			for _, upper := range c.tiers[:i] {
				if upper.StoreSupported() {
					upper.Store(ctx, key, artifact)
				}
			}
		}
		return result, content
	}
	return domain.CacheMiss(), nil
}

// Store implements ports.ArtifactCache, fanning out to every writable tier.
// Tiers report their own failures, so the fan-out never surfaces an error.
func (c *MultiCache) Store(ctx context.Context, key domain.RuleKey, artifact domain.Artifact) {
	g, ctx := errgroup.WithContext(ctx)
	for _, tier := range c.tiers {
		if !tier.StoreSupported() {
			continue
		}
		g.Go(func() error {
			tier.Store(ctx, key, artifact)
			return nil
		})
	}
	_ = g.Wait()
}

// StoreSupported implements ports.ArtifactCache.
func (c *MultiCache) StoreSupported() bool {
	for _, tier := range c.tiers {
		if tier.StoreSupported() {
			return true
		}
	}
	return false
}

// Close implements ports.ArtifactCache, closing every tier and joining
// their errors.
func (c *MultiCache) Close() error {
	var errs []error
	for _, tier := range c.tiers {
		if err := tier.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
