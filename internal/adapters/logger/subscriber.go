package logger

import (
	"fmt"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.EventSubscriber = (*Subscriber)(nil)

// Subscriber renders build events as log lines. It is the plain-console
// reporting surface; the engine itself never logs directly.
type Subscriber struct {
	log ports.Logger
}

// NewSubscriber creates a Subscriber writing through the given logger.
func NewSubscriber(log ports.Logger) *Subscriber {
	return &Subscriber{log: log}
}

// HandleEvent implements ports.EventSubscriber.
func (s *Subscriber) HandleEvent(event domain.Event) {
	switch e := event.(type) {
	case domain.RuleFinishedEvent:
		if e.Err != nil {
			s.log.Error(e.Err)
			return
		}
		if e.Cached {
			s.log.Info(fmt.Sprintf("%s finished (cached)", e.Target.FullName()))
		} else {
			s.log.Info(fmt.Sprintf("%s finished", e.Target.FullName()))
		}
		s.renderTrace(e)
	case domain.RuleSkippedEvent:
		s.log.Warn(fmt.Sprintf("%s skipped: dependency %s failed", e.Target.FullName(), e.Cause.FullName()))
	case domain.StepFailedEvent:
		s.log.Warn(fmt.Sprintf("%s: step %q exited with code %d", e.Target.FullName(), e.Step, e.ExitCode))
	case domain.ChecksumMismatchEvent:
		s.log.Warn(fmt.Sprintf("cache tier %s returned corrupt artifact for %s (expected %016x, got %016x), evicted",
			e.Source, e.Key.Hex(), e.Expected, e.Actual))
	case domain.ConnectionFailureEvent:
		s.log.Warn(fmt.Sprintf("cache tier %s unavailable while %s: %v", e.Source, e.Context, e.Err))
	case domain.StoreFailureEvent:
		s.log.Warn(fmt.Sprintf("cache tier %s failed to store %s: %v", e.Source, e.Key.Hex(), e.Err))
	case domain.LogEvent:
		switch e.Level {
		case domain.LogLevelWarn:
			s.log.Warn(e.Message)
		case domain.LogLevelError:
			s.log.Error(fmt.Errorf("%s", e.Message))
		default:
			s.log.Info(e.Message)
		}
	}
}

// renderTrace prints the key contribution trace recorded for the rule, one
// line per contribution. Traces are only present when key tracing is on.
func (s *Subscriber) renderTrace(e domain.RuleFinishedEvent) {
	trace := e.Key.Trace()
	if len(trace) == 0 {
		return
	}
	s.log.Info(fmt.Sprintf("key %s <- %s", e.Key.Hex()[:16], e.Target.FullName()))
	for _, line := range trace {
		s.log.Info("  " + line)
	}
}
