package domain

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// artifactHeaderSize is the length of the checksum prefix in an encoded blob.
const artifactHeaderSize = 8

// Artifact is the built output of a rule as stored in the cache: the raw
// content plus the content checksum expected for it. The checksum is a
// transport integrity check, not an identity; identity is the RuleKey the
// artifact is stored under.
type Artifact struct {
	// Checksum is the xxhash64 digest of Content at store time.
	Checksum uint64
	// Content is the raw artifact bytes.
	Content []byte
}

// NewArtifact wraps content with its freshly computed checksum.
func NewArtifact(content []byte) Artifact {
	return Artifact{
		Checksum: xxhash.Sum64(content),
		Content:  content,
	}
}

// Encode renders the storable blob: an 8-byte big-endian checksum followed by
// the raw content. All cache tiers share this layout.
func (a Artifact) Encode() []byte {
	blob := make([]byte, artifactHeaderSize+len(a.Content))
	binary.BigEndian.PutUint64(blob[:artifactHeaderSize], a.Checksum)
	copy(blob[artifactHeaderSize:], a.Content)
	return blob
}

// DecodeArtifact splits a stored blob back into checksum and content. It does
// not verify the checksum; callers do that with Verify so a mismatch can be
// reported as a distinct event.
func DecodeArtifact(blob []byte) (Artifact, error) {
	if len(blob) < artifactHeaderSize {
		return Artifact{}, ErrArtifactTruncated
	}
	return Artifact{
		Checksum: binary.BigEndian.Uint64(blob[:artifactHeaderSize]),
		Content:  blob[artifactHeaderSize:],
	}, nil
}

// Verify re-hashes the content and compares it against the embedded checksum.
func (a Artifact) Verify() bool {
	return xxhash.Sum64(a.Content) == a.Checksum
}

// ActualChecksum returns the checksum of the content as it is now.
func (a Artifact) ActualChecksum() uint64 {
	return xxhash.Sum64(a.Content)
}
