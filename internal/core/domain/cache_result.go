package domain

// CacheResultKind discriminates the outcome of a cache fetch. Callers must
// branch on the kind; a fetch result is deliberately not a boolean.
type CacheResultKind uint8

const (
	// CacheResultMiss indicates the key was not present.
	CacheResultMiss CacheResultKind = iota
	// CacheResultHit indicates the artifact was found and verified.
	CacheResultHit
	// CacheResultError indicates the lookup itself failed.
	CacheResultError
)

// String returns the lowercase name of the kind.
func (k CacheResultKind) String() string {
	switch k {
	case CacheResultHit:
		return "hit"
	case CacheResultError:
		return "error"
	default:
		return "miss"
	}
}

// CacheResult is the outcome of an artifact cache fetch: a hit carrying the
// name of the tier that served it, a miss, or an error with its cause.
type CacheResult struct {
	kind   CacheResultKind
	source string
	err    error
}

// CacheHit builds a hit result attributed to the named tier.
func CacheHit(source string) CacheResult {
	return CacheResult{kind: CacheResultHit, source: source}
}

// CacheMiss builds a miss result.
func CacheMiss() CacheResult {
	return CacheResult{kind: CacheResultMiss}
}

// CacheError builds an error result.
func CacheError(err error) CacheResult {
	return CacheResult{kind: CacheResultError, err: err}
}

// Kind returns the result kind.
func (r CacheResult) Kind() CacheResultKind {
	return r.kind
}

// Source returns the name of the tier that served a hit, or "".
func (r CacheResult) Source() string {
	return r.source
}

// Err returns the cause of an error result, or nil.
func (r CacheResult) Err() error {
	return r.err
}

// String renders "hit(tier)", "miss" or "error: cause".
func (r CacheResult) String() string {
	switch r.kind {
	case CacheResultHit:
		return "hit(" + r.source + ")"
	case CacheResultError:
		return "error: " + r.err.Error()
	default:
		return "miss"
	}
}
