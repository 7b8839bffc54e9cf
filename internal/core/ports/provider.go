package ports

import (
	"context"

	"go.trai.ch/pagefresh/internal/core/domain"
)

// ContentProvider generates page content for a task.
//
//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type ContentProvider interface {
	// CheckCredentials reports whether the provider is configured well enough
	// to be called at all. It must not perform network I/O.
	CheckCredentials() error

	// Generate asks the provider for the content of one page.
	// supplementary is optional free text appended to the request.
	Generate(ctx context.Context, task domain.Task, supplementary string) (domain.GeneratedContent, error)
}

// ProviderFactory builds a ContentProvider from its configuration.
type ProviderFactory interface {
	New(cfg domain.ProviderConfig) ContentProvider
}
