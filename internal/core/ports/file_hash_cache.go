package ports

import "go.trai.ch/mason/internal/core/domain"

// FileHashCache memoizes content digests by path, invalidated when the
// path's filesystem signature changes. It never returns a stale digest for a
// changed file; ambiguous signatures cost a recomputation. Scoped to one
// build invocation.
//
//go:generate go run go.uber.org/mock/mockgen -source=file_hash_cache.go -destination=mocks/mock_file_hash_cache.go -package=mocks
type FileHashCache interface {
	// Get returns the content digest of the file at path. Concurrent calls
	// on the same unseen path may each compute once; the second write is
	// idempotent.
	Get(path string) ([domain.RuleKeySize]byte, error)
}
