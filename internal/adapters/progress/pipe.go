package progress

import (
	"io"
	"sync"

	"github.com/vito/progrock"
)

const pipeBuffer = 256

// Pipe is an in-process progrock writer whose updates can be read back.
// *progrock.Tape has no read side, so the terminal UI consumes the recorder's
// stream through a Pipe instead.
type Pipe struct {
	mu      sync.Mutex
	closed  bool
	updates chan *progrock.StatusUpdate
}

var _ progrock.Writer = (*Pipe)(nil)

// NewPipe creates a Pipe.
func NewPipe() *Pipe {
	return &Pipe{updates: make(chan *progrock.StatusUpdate, pipeBuffer)}
}

// WriteStatus implements progrock.Writer. When the reader has stalled and the
// buffer is full the update is dropped rather than blocking the recorder.
func (p *Pipe) WriteStatus(update *progrock.StatusUpdate) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return io.ErrClosedPipe
	}
	select {
	case p.updates <- update:
	default:
	}
	return nil
}

// Read blocks until the next update is available. It returns io.EOF once the
// pipe is closed and drained.
func (p *Pipe) Read() (*progrock.StatusUpdate, error) {
	update, ok := <-p.updates
	if !ok {
		return nil, io.EOF
	}
	return update, nil
}

// Close ends the stream. Buffered updates remain readable.
func (p *Pipe) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.updates)
	}
	return nil
}
