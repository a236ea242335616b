package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/adapters/events"
	"go.trai.ch/mason/internal/core/ports"
)

// NodeID is the unique identifier for the step executor Graft node.
const NodeID graft.ID = "adapter.executor"

func init() {
	graft.Register(graft.Node[ports.StepExecutor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{events.NodeID},
		Run: func(ctx context.Context) (ports.StepExecutor, error) {
			bus, err := graft.Dep[ports.EventBus](ctx)
			if err != nil {
				return nil, err
			}
			return NewExecutor(bus), nil
		},
	})
}
