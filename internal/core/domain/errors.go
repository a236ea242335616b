package domain

import "go.trai.ch/zerr"

var (
	// ErrDuplicateRule is returned when adding a rule whose target already exists in the graph.
	ErrDuplicateRule = zerr.New("rule already exists")

	// ErrCycleDetected is returned when a cycle is detected in the rule dependency graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrRuleNotFound is returned when a requested rule is not in the graph.
	ErrRuleNotFound = zerr.New("rule not found")

	// ErrMissingDependency is returned when a rule definition references a dependency that does not exist.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrInvalidTarget is returned when a target name cannot be parsed.
	ErrInvalidTarget = zerr.New("invalid target name, expected //base/path:name[#flavors]")

	// ErrInvalidRuleKey is returned when a rule key cannot be parsed from its hex form.
	ErrInvalidRuleKey = zerr.New("invalid rule key")

	// ErrArtifactTruncated is returned when a stored blob is too short to hold its checksum header.
	ErrArtifactTruncated = zerr.New("artifact blob truncated")

	// ErrChecksumMismatch is returned when a fetched artifact fails content verification.
	ErrChecksumMismatch = zerr.New("artifact checksum mismatch")

	// ErrCacheSchemaMismatch is returned when a remote tier's configuration magic does not match.
	// The tier is unusable for the whole invocation.
	ErrCacheSchemaMismatch = zerr.New("artifact cache schema mismatch")

	// ErrCacheTTLMalformed is returned when a remote tier's ttl configuration row is missing or not a number.
	ErrCacheTTLMalformed = zerr.New("artifact cache ttl malformation")

	// ErrCacheUnavailable is returned when a remote tier's connection could not be established in time.
	ErrCacheUnavailable = zerr.New("artifact cache unavailable")

	// ErrStepFailed is returned when a build step exits non-zero.
	ErrStepFailed = zerr.New("build step failed")

	// ErrMissingOutput is returned when a rule's steps succeeded but its declared output does not exist.
	ErrMissingOutput = zerr.New("declared output missing after build")

	// ErrFileHashFailed is returned when hashing a file's content fails.
	ErrFileHashFailed = zerr.New("failed to hash file content")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrNoRulesDefined is returned when the config file defines no rules.
	ErrNoRulesDefined = zerr.New("no rules defined")

	// ErrBuildFailed is returned when one or more rules failed during an invocation.
	ErrBuildFailed = zerr.New("build failed")

	// ErrNoTargetsSpecified is returned when an invocation names no targets to build.
	ErrNoTargetsSpecified = zerr.New("no build targets specified")
)
