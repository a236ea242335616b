package fs

import (
	"crypto/sha256"
	"io"
	"os"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileHashCache = (*HashCache)(nil)

type hashEntry struct {
	sig    ports.Signature
	digest [domain.RuleKeySize]byte
}

// HashCache implements ports.FileHashCache. Entries are keyed by path and
// guarded only by the map's own atomicity: a signature mismatch replaces the
// entry, and two concurrent computations of the same unseen path write the
// same value. Create one per build invocation and discard it; signatures are
// only meaningful relative to one observed point in time.
type HashCache struct {
	fs      ports.Filesystem
	entries sync.Map // string -> hashEntry
}

// NewHashCache creates a HashCache over the given filesystem.
func NewHashCache(filesystem ports.Filesystem) *HashCache {
	return &HashCache{fs: filesystem}
}

// Get implements ports.FileHashCache.
func (c *HashCache) Get(path string) ([domain.RuleKeySize]byte, error) {
	sig, err := c.fs.Signature(path)
	if err != nil {
		return [domain.RuleKeySize]byte{}, err
	}

	if v, ok := c.entries.Load(path); ok {
		entry := v.(hashEntry)
		if entry.sig == sig {
			return entry.digest, nil
		}
	}

	digest, err := hashFile(path)
	if err != nil {
		return [domain.RuleKeySize]byte{}, err
	}

	c.entries.Store(path, hashEntry{sig: sig, digest: digest})
	return digest, nil
}

func hashFile(path string) ([domain.RuleKeySize]byte, error) {
	var digest [domain.RuleKeySize]byte

	f, err := os.Open(path) //nolint:gosec // path is workspace-relative, provided by trusted caller
	if err != nil {
		return digest, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // best effort close in defer

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return digest, zerr.With(zerr.Wrap(domain.ErrFileHashFailed, err.Error()), "path", path)
	}
	copy(digest[:], h.Sum(nil))
	return digest, nil
}
