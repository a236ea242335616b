// Package fs implements the filesystem collaborator and the file hash cache.
package fs

import (
	"errors"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Filesystem = (*Filesystem)(nil)

// Filesystem implements ports.Filesystem over the local OS.
type Filesystem struct{}

// NewFilesystem creates a Filesystem.
func NewFilesystem() *Filesystem {
	return &Filesystem{}
}

// Read implements ports.Filesystem.
func (f *Filesystem) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is workspace-relative, provided by trusted caller
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return data, nil
}

// Write implements ports.Filesystem, creating parent directories as needed.
// Content lands through a sibling temp file and a rename, so a reader never
// observes a partially written file.
func (f *Filesystem) Write(path string, content []byte) error {
	if err := f.MakeDirs(filepath.Dir(path)); err != nil {
		return err
	}
	if err := writeViaTemp(path, content); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write file"), "path", path)
	}
	return nil
}

func writeViaTemp(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	// CreateTemp opens 0600; match the permissions WriteFile would give.
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Signature implements ports.Filesystem.
func (f *Filesystem) Signature(path string) (ports.Signature, error) {
	info, err := os.Stat(path)
	if err != nil {
		return ports.Signature{}, zerr.With(zerr.Wrap(err, "failed to stat path"), "path", path)
	}
	return ports.Signature{
		Size:    info.Size(),
		ModTime: info.ModTime().UnixNano(),
	}, nil
}

// Move implements ports.Filesystem. os.Rename replaces atomically on the
// same filesystem; a cross-device rename falls back to copy-then-rename
// through a temp file next to the destination so the replace stays atomic.
func (f *Filesystem) Move(src, dst string) error {
	if err := f.MakeDirs(filepath.Dir(dst)); err != nil {
		return err
	}
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if !errors.As(err, &linkErr) {
		return zerr.With(zerr.Wrap(err, "failed to move file"), "src", src)
	}

	if copyErr := copyToTempAndRename(src, dst); copyErr != nil {
		return zerr.With(zerr.Wrap(copyErr, "failed to move file across devices"), "src", src)
	}
	return os.Remove(src)
}

func copyToTempAndRename(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // path provided by trusted caller
	if err != nil {
		return err
	}
	defer in.Close() //nolint:errcheck // best effort close in defer

	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".tmp*")
	if err != nil {
		return err
	}
	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), dst)
}

// MakeDirs implements ports.Filesystem.
func (f *Filesystem) MakeDirs(path string) error {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directories"), "path", path)
	}
	return nil
}

// DeleteRecursive implements ports.Filesystem.
func (f *Filesystem) DeleteRecursive(path string) error {
	if err := os.RemoveAll(path); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to delete recursively"), "path", path)
	}
	return nil
}
