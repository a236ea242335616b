package domain

// LogLevel represents the severity of a log message, mirroring the standard
// slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Event is a structured diagnostic or telemetry event posted on the build
// event bus. The bus is the engine's sole channel for logging and reporting;
// the core never writes to the console directly.
type Event interface {
	// EventName is a stable identifier for the event type.
	EventName() string
}

// RuleStartedEvent signals that a rule left the pending state.
type RuleStartedEvent struct {
	Target BuildTarget
}

// EventName implements Event.
func (RuleStartedEvent) EventName() string { return "rule.started" }

// RuleFinishedEvent signals that a rule reached a terminal state.
type RuleFinishedEvent struct {
	Target BuildTarget
	Status string
	Key    RuleKey
	Cached bool
	Err    error
}

// EventName implements Event.
func (RuleFinishedEvent) EventName() string { return "rule.finished" }

// RuleSkippedEvent signals that a rule was not evaluated because a transitive
// dependency failed.
type RuleSkippedEvent struct {
	Target BuildTarget
	Cause  BuildTarget
}

// EventName implements Event.
func (RuleSkippedEvent) EventName() string { return "rule.skipped" }

// StepFailedEvent signals that a build step exited non-zero or errored.
type StepFailedEvent struct {
	Target   BuildTarget
	Step     string
	ExitCode int
	Err      error
}

// EventName implements Event.
func (StepFailedEvent) EventName() string { return "step.failed" }

// CacheHitEvent signals a verified artifact cache hit.
type CacheHitEvent struct {
	Key    RuleKey
	Source string
}

// EventName implements Event.
func (CacheHitEvent) EventName() string { return "cache.hit" }

// CacheMissEvent signals that no tier held the key.
type CacheMissEvent struct {
	Key RuleKey
}

// EventName implements Event.
func (CacheMissEvent) EventName() string { return "cache.miss" }

// ChecksumMismatchEvent signals that a fetched artifact failed verification.
// It is reported distinctly from a plain miss because it may indicate cache
// corruption or poisoning.
type ChecksumMismatchEvent struct {
	Key      RuleKey
	Source   string
	Expected uint64
	Actual   uint64
}

// EventName implements Event.
func (ChecksumMismatchEvent) EventName() string { return "cache.checksum_mismatch" }

// ConnectionFailureEvent signals a failed operation against a remote tier.
// Tiers rate-limit how many of these they post per invocation.
type ConnectionFailureEvent struct {
	Source  string
	Context string
	Err     error
}

// EventName implements Event.
func (ConnectionFailureEvent) EventName() string { return "cache.connection_failure" }

// StoreFailureEvent signals a failed best-effort artifact store. Stores never
// fail the build that produced the artifact.
type StoreFailureEvent struct {
	Key    RuleKey
	Source string
	Err    error
}

// EventName implements Event.
func (StoreFailureEvent) EventName() string { return "cache.store_failure" }

// LogEvent carries free-form diagnostic output, including captured step
// stdout/stderr.
type LogEvent struct {
	Level   LogLevel
	Target  BuildTarget
	Message string
}

// EventName implements Event.
func (LogEvent) EventName() string { return "log" }
