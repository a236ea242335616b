// Package cache implements the artifact cache tiers and their composition:
// a content-addressed local directory tier, a SQL-backed remote tier and an
// ordered multi-tier dispatcher.
package cache

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.ArtifactCache = (*DirCache)(nil)

// DirCache is the local directory tier. The layout is content-addressed by
// the rule key's textual digest, sharded on its first two characters:
// <root>/ab/abcdef.... Each entry is the checksum-prefixed artifact blob.
type DirCache struct {
	name string
	root string
	fs   ports.Filesystem
	bus  ports.EventBus
}

// NewDirCache creates a DirCache rooted at root.
func NewDirCache(root string, filesystem ports.Filesystem, bus ports.EventBus) *DirCache {
	return &DirCache{
		name: "dir",
		root: root,
		fs:   filesystem,
		bus:  bus,
	}
}

// Name implements ports.ArtifactCache.
func (c *DirCache) Name() string { return c.name }

func (c *DirCache) entryPath(key domain.RuleKey) string {
	hex := key.Hex()
	return filepath.Join(c.root, hex[:2], hex)
}

// Fetch implements ports.ArtifactCache. A corrupt entry is evicted and
// reported, never handed to the caller.
func (c *DirCache) Fetch(_ context.Context, key domain.RuleKey) (domain.CacheResult, []byte) {
	path := c.entryPath(key)
	blob, err := c.fs.Read(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.CacheMiss(), nil
		}
		return domain.CacheError(err), nil
	}

	artifact, err := domain.DecodeArtifact(blob)
	if err != nil {
		c.evictCorrupt(key, path, 0, 0)
		return domain.CacheMiss(), nil
	}
	if !artifact.Verify() {
		c.evictCorrupt(key, path, artifact.Checksum, artifact.ActualChecksum())
		return domain.CacheMiss(), nil
	}

	return domain.CacheHit(c.name), artifact.Content
}

func (c *DirCache) evictCorrupt(key domain.RuleKey, path string, expected, actual uint64) {
	_ = c.fs.DeleteRecursive(path)
	c.bus.Post(domain.ChecksumMismatchEvent{
		Key:      key,
		Source:   c.name,
		Expected: expected,
		Actual:   actual,
	})
}

// Store implements ports.ArtifactCache. The blob lands in a temp file first
// and is promoted with an atomic rename, so a concurrent fetch never sees a
// partial entry. Failures are reported, never returned; a failed store must
// not fail a build that already has a valid local output.
func (c *DirCache) Store(_ context.Context, key domain.RuleKey, artifact domain.Artifact) {
	path := c.entryPath(key)
	if err := c.fs.MakeDirs(filepath.Dir(path)); err != nil {
		c.reportStoreFailure(key, err)
		return
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		c.reportStoreFailure(key, err)
		return
	}
	if _, err := tmp.Write(artifact.Encode()); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		c.reportStoreFailure(key, err)
		return
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		c.reportStoreFailure(key, err)
		return
	}
	if err := c.fs.Move(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		c.reportStoreFailure(key, err)
	}
}

func (c *DirCache) reportStoreFailure(key domain.RuleKey, err error) {
	c.bus.Post(domain.StoreFailureEvent{Key: key, Source: c.name, Err: err})
}

// StoreSupported implements ports.ArtifactCache.
func (c *DirCache) StoreSupported() bool { return true }

// Close implements ports.ArtifactCache. Dir stores are synchronous, so there
// is nothing to drain.
func (c *DirCache) Close() error { return nil }
