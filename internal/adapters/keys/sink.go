// Package keys implements rule key construction: an order-sensitive
// contribution hasher and a memoizing per-invocation key builder.
package keys

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"strconv"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
	"go.trai.ch/zerr"
)

// Contribution type tags. Each contribution folds its tag, its label and its
// value with explicit separators so that neither permutations nor boundary
// ambiguities ("ab"+"c" vs "a"+"bc") can collide.
const (
	tagString byte = iota + 1
	tagStrings
	tagBool
	tagPath
	tagFile
	tagDigest
)

var _ domain.KeySink = (*Sink)(nil)

// Sink folds typed, labelled contributions into a SHA-256 digest. SHA-256
// keeps the key collision-resistant and byte-identical across machines,
// which cross-machine cache sharing depends on. A Sink is single-use.
type Sink struct {
	h     hash.Hash
	files ports.FileHashCache
	trace []string
	err   error
}

// NewSink creates a Sink. The file hash cache backs File contributions;
// traced enables human-readable contribution recording.
func NewSink(files ports.FileHashCache, traced bool) *Sink {
	s := &Sink{
		h:     sha256.New(),
		files: files,
	}
	if traced {
		s.trace = make([]string, 0, 8)
	}
	return s
}

func (s *Sink) fold(tag byte, label string, value []byte) {
	// hash.Hash writes never fail
	_, _ = s.h.Write([]byte{tag})
	_, _ = s.h.Write([]byte(label))
	_, _ = s.h.Write([]byte{0})
	_, _ = s.h.Write(value)
	_, _ = s.h.Write([]byte{0})
}

func (s *Sink) record(format string, args ...any) {
	if s.trace != nil {
		s.trace = append(s.trace, fmt.Sprintf(format, args...))
	}
}

// String implements domain.KeySink.
func (s *Sink) String(label, value string) {
	s.fold(tagString, label, []byte(value))
	s.record("string:%s=%q", label, value)
}

// Strings implements domain.KeySink. The list length is folded first so that
// adjacent lists cannot be confused.
func (s *Sink) Strings(label string, values []string) {
	s.fold(tagStrings, label, []byte(strconv.Itoa(len(values))))
	for _, v := range values {
		s.fold(tagStrings, label, []byte(v))
	}
	s.record("strings:%s=%q", label, values)
}

// Bool implements domain.KeySink.
func (s *Sink) Bool(label string, value bool) {
	s.fold(tagBool, label, []byte(strconv.FormatBool(value)))
	s.record("bool:%s=%t", label, value)
}

// Path implements domain.KeySink. The path string itself is identity here.
func (s *Sink) Path(label, path string) {
	s.fold(tagPath, label, []byte(path))
	s.record("path:%s=%q", label, path)
}

// File implements domain.KeySink. It folds the file's content digest, never
// the path, so renaming an unchanged file leaves the key alone.
func (s *Sink) File(label, path string) {
	if s.err != nil {
		return
	}
	digest, err := s.files.Get(path)
	if err != nil {
		s.err = zerr.With(zerr.Wrap(domain.ErrFileHashFailed, err.Error()), "path", path)
		return
	}
	s.fold(tagFile, label, digest[:])
	s.record("file:%s=%s", label, hex.EncodeToString(digest[:8]))
}

// Digest implements domain.KeySink.
func (s *Sink) Digest(label string, key domain.RuleKey) {
	d := key.Digest()
	s.fold(tagDigest, label, d[:])
	s.record("digest:%s=%s", label, key.Hex()[:16])
}

// Finish seals the sink and returns the rule key, or the first File error.
func (s *Sink) Finish() (domain.RuleKey, error) {
	if s.err != nil {
		return domain.RuleKey{}, s.err
	}
	var digest [domain.RuleKeySize]byte
	copy(digest[:], s.h.Sum(nil))
	if s.trace != nil {
		return domain.NewTracedRuleKey(digest, s.trace), nil
	}
	return domain.NewRuleKey(digest), nil
}
