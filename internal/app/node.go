package app

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/mason/internal/adapters/config" //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/events" //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/fs"     //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/logger" //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/adapters/shell"  //nolint:depguard // Wired in app layer
	"go.trai.ch/mason/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the Components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components bundles the resolved process-level collaborators for the entry
// point: the app itself plus the bus and logger the CLI wires reporting to.
type Components struct {
	App    *App
	Bus    ports.EventBus
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			events.NodeID,
			shell.NodeID,
			fs.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}

			bus, err := graft.Dep[ports.EventBus](ctx)
			if err != nil {
				return nil, err
			}

			executor, err := graft.Dep[ports.StepExecutor](ctx)
			if err != nil {
				return nil, err
			}

			filesystem, err := graft.Dep[ports.Filesystem](ctx)
			if err != nil {
				return nil, err
			}

			return New(loader, bus, executor, filesystem), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			events.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			application, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			bus, err := graft.Dep[ports.EventBus](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: application, Bus: bus, Logger: log}, nil
		},
	})
}
