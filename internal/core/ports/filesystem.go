// Package ports defines the core interfaces for the application.
package ports

// Signature is a cheap-to-compute proxy for file content change: size plus
// modification time. A matching signature lets the file hash cache skip
// re-hashing; a mismatch forces recomputation. Signatures are only valid
// relative to one observed point in time and must never outlive an
// invocation.
type Signature struct {
	Size    int64
	ModTime int64 // UnixNano
}

// Filesystem is the filesystem collaborator boundary. The core never talks
// to raw OS calls directly.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type Filesystem interface {
	// Read returns the file content at path.
	Read(path string) ([]byte, error)

	// Write writes content to path with default permissions, creating
	// parent directories as needed.
	Write(path string, content []byte) error

	// Signature returns the change signature for path.
	Signature(path string) (Signature, error)

	// Move renames src to dst with atomic-replace semantics.
	Move(src, dst string) error

	// MakeDirs creates path and all missing parents.
	MakeDirs(path string) error

	// DeleteRecursive removes path and everything under it. Missing paths
	// are not an error.
	DeleteRecursive(path string) error
}
