package domain

import (
	"bytes"
	"encoding/hex"
)

// RuleKeySize is the width in bytes of a rule key digest.
const RuleKeySize = 32

// RuleKey is the deterministic content fingerprint of a build rule and its
// transitive dependencies. Two rules with equal keys are assumed to produce
// byte-identical, cacheable outputs; this is the engine's central invariant.
//
// The optional trace records the contributions that went into the digest for
// debugging. It is never part of equality.
type RuleKey struct {
	digest [RuleKeySize]byte
	trace  []string
}

// NewRuleKey wraps a raw digest.
func NewRuleKey(digest [RuleKeySize]byte) RuleKey {
	return RuleKey{digest: digest}
}

// NewTracedRuleKey wraps a raw digest together with its contribution trace.
func NewTracedRuleKey(digest [RuleKeySize]byte, trace []string) RuleKey {
	return RuleKey{digest: digest, trace: trace}
}

// ParseRuleKey parses the hex form produced by Hex.
func ParseRuleKey(s string) (RuleKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != RuleKeySize {
		return RuleKey{}, ErrInvalidRuleKey
	}
	var k RuleKey
	copy(k.digest[:], raw)
	return k, nil
}

// Digest returns the raw digest bytes.
func (k RuleKey) Digest() [RuleKeySize]byte {
	return k.digest
}

// Hex returns the lowercase hex rendering of the digest. This is the textual
// form used for cache storage layouts.
func (k RuleKey) Hex() string {
	return hex.EncodeToString(k.digest[:])
}

// Equal compares digests only; traces are ignored.
func (k RuleKey) Equal(other RuleKey) bool {
	return bytes.Equal(k.digest[:], other.digest[:])
}

// Trace returns the recorded contributions, or nil if tracing was disabled.
func (k RuleKey) Trace() []string {
	return k.trace
}

// String implements fmt.Stringer.
func (k RuleKey) String() string {
	return k.Hex()
}
