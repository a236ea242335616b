package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mason/internal/core/ports"
)

// NodeID is the unique identifier for the filesystem adapter Graft node.
const NodeID graft.ID = "adapter.fs"

func init() {
	graft.Register(graft.Node[ports.Filesystem]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Filesystem, error) {
			return NewFilesystem(), nil
		},
	})
}
