package provider

import (
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports"
)

// Factory implements ports.ProviderFactory.
type Factory struct{}

// New returns a Client for cfg.
func (Factory) New(cfg domain.ProviderConfig) ports.ContentProvider {
	return NewClient(cfg)
}
