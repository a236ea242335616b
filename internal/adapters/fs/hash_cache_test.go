package fs_test

import (
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.trai.ch/mason/internal/adapters/fs"
)

func TestHashCache_DigestMatchesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	cache := fs.NewHashCache(fs.NewFilesystem())
	digest, err := cache.Get(path)
	require.NoError(t, err)
	require.Equal(t, sha256.Sum256([]byte("hello")), digest)
}

func TestHashCache_MemoizesUnchangedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	cache := fs.NewHashCache(fs.NewFilesystem())
	first, err := cache.Get(path)
	require.NoError(t, err)
	second, err := cache.Get(path)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestHashCache_InvalidatesOnSignatureChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	cache := fs.NewHashCache(fs.NewFilesystem())
	before, err := cache.Get(path)
	require.NoError(t, err)

	// Different length guarantees a different signature even on coarse
	// mtime filesystems.
	require.NoError(t, os.WriteFile(path, []byte("hello, changed"), 0o644))
	after, err := cache.Get(path)
	require.NoError(t, err)

	require.NotEqual(t, before, after)
	require.Equal(t, sha256.Sum256([]byte("hello, changed")), after)
}

func TestHashCache_InvalidatesOnTouchWithSameSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("aaaa"), 0o644))

	cache := fs.NewHashCache(fs.NewFilesystem())
	_, err := cache.Get(path)
	require.NoError(t, err)

	// Same size, different content and mtime.
	require.NoError(t, os.WriteFile(path, []byte("bbbb"), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	after, err := cache.Get(path)
	require.NoError(t, err)
	require.Equal(t, sha256.Sum256([]byte("bbbb")), after)
}

func TestHashCache_MissingFile(t *testing.T) {
	cache := fs.NewHashCache(fs.NewFilesystem())
	_, err := cache.Get(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}
