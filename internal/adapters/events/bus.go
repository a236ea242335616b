// Package events implements the build event bus.
package events

import (
	"sync"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

// bufferSize bounds how far posting can run ahead of delivery before Post
// starts applying backpressure.
const bufferSize = 1024

var _ ports.EventBus = (*Bus)(nil)

// Bus implements ports.EventBus with a single dispatch goroutine reading a
// buffered channel. Subscribers are invoked sequentially in registration
// order, so an individual subscriber never needs its own locking against
// other deliveries.
type Bus struct {
	ch   chan domain.Event
	done chan struct{}

	mu     sync.RWMutex
	subs   []ports.EventSubscriber
	closed bool
}

// NewBus creates a Bus and starts its dispatch goroutine.
func NewBus() *Bus {
	b := &Bus{
		ch:   make(chan domain.Event, bufferSize),
		done: make(chan struct{}),
	}
	go b.dispatch()
	return b
}

func (b *Bus) dispatch() {
	defer close(b.done)
	for event := range b.ch {
		b.mu.RLock()
		subs := b.subs
		b.mu.RUnlock()
		for _, sub := range subs {
			sub.HandleEvent(event)
		}
	}
}

// Post implements ports.EventBus. Events posted after Close are dropped.
func (b *Bus) Post(event domain.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	b.ch <- event
}

// Subscribe implements ports.EventBus.
func (b *Bus) Subscribe(sub ports.EventSubscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(append([]ports.EventSubscriber(nil), b.subs...), sub)
}

// Close implements ports.EventBus. It stops intake, then waits until every
// already-posted event has been delivered.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.ch)
	b.mu.Unlock()

	<-b.done
	return nil
}
