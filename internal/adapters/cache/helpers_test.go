package cache_test

import (
	"context"
	"crypto/sha256"
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

// recordingBus captures posted events for assertions.
type recordingBus struct {
	mu     sync.Mutex
	events []domain.Event
}

func (b *recordingBus) Post(event domain.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) Subscribe(ports.EventSubscriber) {}

func (b *recordingBus) Close() error { return nil }

func (b *recordingBus) snapshot() []domain.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]domain.Event(nil), b.events...)
}

func (b *recordingBus) countByName(name string) int {
	n := 0
	for _, e := range b.snapshot() {
		if e.EventName() == name {
			n++
		}
	}
	return n
}

func keyFor(s string) domain.RuleKey {
	return domain.NewRuleKey(sha256.Sum256([]byte(s)))
}

// fakeTier is a scriptable in-memory tier for dispatcher tests.
type fakeTier struct {
	name     string
	readOnly bool
	closeErr error

	mu      sync.Mutex
	entries map[string][]byte
	fetches int
	stores  int
}

func newFakeTier(name string) *fakeTier {
	return &fakeTier{name: name, entries: map[string][]byte{}}
}

func (t *fakeTier) Name() string { return t.name }

func (t *fakeTier) Fetch(_ context.Context, key domain.RuleKey) (domain.CacheResult, []byte) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.fetches++
	if content, ok := t.entries[key.Hex()]; ok {
		return domain.CacheHit(t.name), content
	}
	return domain.CacheMiss(), nil
}

func (t *fakeTier) Store(_ context.Context, key domain.RuleKey, artifact domain.Artifact) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stores++
	t.entries[key.Hex()] = artifact.Content
}

func (t *fakeTier) StoreSupported() bool { return !t.readOnly }

func (t *fakeTier) Close() error { return t.closeErr }

func (t *fakeTier) storeCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stores
}
