package events

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/core/ports"
)

// NodeID is the unique identifier for the event bus Graft node.
const NodeID graft.ID = "adapter.events"

func init() {
	graft.Register(graft.Node[ports.EventBus]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EventBus, error) {
			return NewBus(), nil
		},
	})
}
