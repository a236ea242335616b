// Package progress mirrors build events onto a progrock vertex stream so a
// terminal UI can render rule lifecycles live.
package progress

import (
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"go.trai.ch/mason/internal/core/domain"
	"go.trai.ch/mason/internal/core/ports"
)

var _ ports.EventSubscriber = (*Renderer)(nil)

// Renderer subscribes to the build event bus and records one progrock vertex
// per rule. The vertex opens when the rule starts and closes when the rule
// reaches a terminal state; captured step output streams into the vertex.
type Renderer struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertices map[domain.BuildTarget]*progrock.VertexRecorder
}

// New creates a Renderer recording onto a default tape.
func New() *Renderer {
	return NewRenderer(progrock.NewTape())
}

// NewRenderer creates a Renderer recording onto the given writer.
func NewRenderer(w progrock.Writer) *Renderer {
	return &Renderer{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertices: make(map[domain.BuildTarget]*progrock.VertexRecorder),
	}
}

// HandleEvent implements ports.EventSubscriber.
func (r *Renderer) HandleEvent(event domain.Event) {
	switch e := event.(type) {
	case domain.RuleStartedEvent:
		r.open(e.Target)
	case domain.RuleFinishedEvent:
		v := r.open(e.Target)
		if e.Cached {
			v.Cached()
		}
		v.Done(e.Err)
		r.forget(e.Target)
	case domain.RuleSkippedEvent:
		// Skipped rules never start, so the vertex is opened and closed
		// here in one go.
		v := r.open(e.Target)
		v.Done(fmt.Errorf("skipped: dependency %s failed", e.Cause.FullName()))
		r.forget(e.Target)
	case domain.LogEvent:
		r.log(e)
	}
}

func (r *Renderer) open(target domain.BuildTarget) *progrock.VertexRecorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v, ok := r.vertices[target]; ok {
		return v
	}
	name := target.FullName()
	v := r.rec.Vertex(digest.FromString(name), name)
	r.vertices[target] = v
	return v
}

func (r *Renderer) forget(target domain.BuildTarget) {
	r.mu.Lock()
	delete(r.vertices, target)
	r.mu.Unlock()
}

func (r *Renderer) log(e domain.LogEvent) {
	r.mu.Lock()
	v, ok := r.vertices[e.Target]
	r.mu.Unlock()
	if !ok {
		// Not rule-scoped output; the logger subscriber reports it.
		return
	}
	out := v.Stdout()
	if e.Level >= domain.LogLevelWarn {
		out = v.Stderr()
	}
	_, _ = fmt.Fprintln(out, e.Message)
}

// Close ends the vertex stream. Readers of the underlying writer observe end
// of stream after all recorded updates.
func (r *Renderer) Close() error {
	if c, ok := r.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
