package provider

import (
	"net/http"
	"time"

	"go.trai.ch/pagefresh/internal/core/domain"
)

// NewClientWithHTTPForTest exports newClientWithHTTP for testing purposes.
func NewClientWithHTTPForTest(cfg domain.ProviderConfig, httpClient *http.Client, now func() time.Time) *Client {
	return newClientWithHTTP(cfg, httpClient, now)
}

// TruncateForTest exports truncate for testing purposes.
func TruncateForTest(s string, n int) string {
	return truncate(s, n)
}
