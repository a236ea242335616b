package logger_test

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"go.trai.ch/mason/internal/adapters/logger"
	"go.trai.ch/mason/internal/core/domain"
)

func TestLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	lg := logger.New()
	lg.SetOutput(&buf)

	lg.Info("some message")
	lg.Warn("some warning")
	lg.Error(errors.New("some failure"))

	out := buf.String()
	require.Contains(t, out, "INFO")
	require.Contains(t, out, "some message")
	require.Contains(t, out, "WARN")
	require.Contains(t, out, "some warning")
	require.Contains(t, out, "ERROR")
	require.Contains(t, out, "some failure")
}

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) Info(msg string) { l.record("info: " + msg) }
func (l *fakeLogger) Warn(msg string) { l.record("warn: " + msg) }
func (l *fakeLogger) Error(err error) { l.record("error: " + err.Error()) }

func (l *fakeLogger) record(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

func (l *fakeLogger) joined() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := ""
	for _, line := range l.lines {
		out += line + "\n"
	}
	return out
}

func mustTarget(t *testing.T, s string) domain.BuildTarget {
	t.Helper()
	target, err := domain.ParseTarget(s)
	require.NoError(t, err)
	return target
}

func TestSubscriber_RendersEvents(t *testing.T) {
	fake := &fakeLogger{}
	sub := logger.NewSubscriber(fake)
	target := mustTarget(t, "//lib:a")
	dep := mustTarget(t, "//lib:b")

	sub.HandleEvent(domain.RuleFinishedEvent{Target: target, Status: "done", Cached: true})
	sub.HandleEvent(domain.RuleSkippedEvent{Target: target, Cause: dep})
	sub.HandleEvent(domain.StepFailedEvent{Target: target, Step: "genrule", ExitCode: 2})
	sub.HandleEvent(domain.ConnectionFailureEvent{Source: "sql", Context: "fetching", Err: errors.New("timeout")})
	sub.HandleEvent(domain.LogEvent{Level: domain.LogLevelWarn, Message: "loose output"})

	out := fake.joined()
	require.Contains(t, out, "info: //lib:a finished (cached)")
	require.Contains(t, out, "warn: //lib:a skipped: dependency //lib:b failed")
	require.Contains(t, out, fmt.Sprintf("step %q exited with code 2", "genrule"))
	require.Contains(t, out, "cache tier sql unavailable while fetching: timeout")
	require.Contains(t, out, "warn: loose output")
}

func TestSubscriber_FailureRendersError(t *testing.T) {
	fake := &fakeLogger{}
	sub := logger.NewSubscriber(fake)

	sub.HandleEvent(domain.RuleFinishedEvent{
		Target: mustTarget(t, "//lib:broken"),
		Status: "failed",
		Err:    errors.New("step exited non-zero"),
	})
	require.Contains(t, fake.joined(), "error: step exited non-zero")
}

func TestSubscriber_RendersKeyTrace(t *testing.T) {
	fake := &fakeLogger{}
	sub := logger.NewSubscriber(fake)

	var digest [domain.RuleKeySize]byte
	digest[0] = 0xab
	key := domain.NewTracedRuleKey(digest, []string{`string:kind="genrule"`})

	sub.HandleEvent(domain.RuleFinishedEvent{Target: mustTarget(t, "//lib:a"), Status: "done", Key: key})

	out := fake.joined()
	require.Contains(t, out, "info: //lib:a finished")
	require.Contains(t, out, fmt.Sprintf("info: key %s <- //lib:a", key.Hex()[:16]))
	require.Contains(t, out, `info:   string:kind="genrule"`)
}

func TestSubscriber_IgnoresUnrenderedEvents(t *testing.T) {
	fake := &fakeLogger{}
	sub := logger.NewSubscriber(fake)

	sub.HandleEvent(domain.RuleStartedEvent{Target: mustTarget(t, "//lib:a")})
	sub.HandleEvent(domain.CacheMissEvent{})
	require.Empty(t, fake.joined())
}
