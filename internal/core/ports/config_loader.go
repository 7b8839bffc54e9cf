package ports

import "go.trai.ch/pagefresh/internal/core/domain"

// ConfigLoader defines the interface for loading the application configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path. A missing file yields the defaults.
	Load(path string) (*domain.Config, error)
}

// CatalogLoader defines the interface for loading the page catalogs.
type CatalogLoader interface {
	// Load reads catalog A and catalog B from the given files.
	Load(industriesPath, locationsPath string) (*domain.Catalog, error)
}
