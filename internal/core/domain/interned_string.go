package domain

import "unique"

// InternedString wraps a unique.Handle[string]. Target path and name
// components repeat heavily across a large rule graph; interning keeps one
// canonical copy and makes comparisons pointer-cheap, which matters because
// BuildTarget is a map key throughout the engine.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns s and returns its handle.
func NewInternedString(s string) InternedString {
	return InternedString{
		h: unique.Make(s),
	}
}

// String returns the underlying string value. The zero InternedString
// renders as "".
func (is InternedString) String() string {
	var zero unique.Handle[string]
	if is.h == zero {
		return ""
	}
	return is.h.Value()
}
