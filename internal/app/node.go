package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assets/internal/adapters/cas"                //nolint:depguard // Wired in app layer
	"go.trai.ch/assets/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/assets/internal/adapters/fs"                 //nolint:depguard // Wired in app layer
	"go.trai.ch/assets/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/assets/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/assets/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/assets/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/assets/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			fs.ResolverNodeID,
			fs.HasherNodeID,
			fs.LayoutsNodeID,
			cas.NodeID,
			shell.NodeID,
			progrock.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	resolver, err := graft.Dep[ports.PathResolver](ctx)
	if err != nil {
		return nil, err
	}

	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}

	layouts, err := graft.Dep[ports.LayoutLister](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.ArtifactStore](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.ToolRunner](ctx)
	if err != nil {
		return nil, err
	}

	telemetry, err := graft.Dep[ports.Telemetry](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, resolver, hasher, store, runner, layouts, telemetry, w, log), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
