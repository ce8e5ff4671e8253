package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/assets/internal/core/ports"
)

const (
	// ResolverNodeID is the graft ID of the path resolver.
	ResolverNodeID graft.ID = "adapter.fs.resolver"
	// HasherNodeID is the graft ID of the artifact key hasher.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// LayoutsNodeID is the graft ID of the layout lister.
	LayoutsNodeID graft.ID = "adapter.fs.layouts"
)

func init() {
	graft.Register(graft.Node[ports.PathResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PathResolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.LayoutLister]{
		ID:        LayoutsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LayoutLister, error) {
			return NewLayoutLister(), nil
		},
	})
}
