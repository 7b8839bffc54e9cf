package provider

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/pagefresh/internal/core/ports"
)

// NodeID is the unique identifier for the provider factory Graft node.
const NodeID graft.ID = "adapter.provider_factory"

func init() {
	graft.Register(graft.Node[ports.ProviderFactory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProviderFactory, error) {
			return Factory{}, nil
		},
	})
}
