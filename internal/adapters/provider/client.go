// Package provider implements the ContentProvider port over a JSON HTTP API.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	maxResponseBytes = 8 << 20
	maxErrorBody     = 512
)

type request struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model"`
}

// Client implements ports.ContentProvider.
type Client struct {
	cfg        domain.ProviderConfig
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a Client for cfg. Zero fields fall back to the defaults.
func NewClient(cfg domain.ProviderConfig) *Client {
	cfg = withDefaults(cfg)
	return newClientWithHTTP(cfg, &http.Client{Timeout: cfg.Timeout}, time.Now)
}

// newClientWithHTTP creates a Client with a custom http client and clock (used for testing).
func newClientWithHTTP(cfg domain.ProviderConfig, httpClient *http.Client, now func() time.Time) *Client {
	return &Client{
		cfg:        withDefaults(cfg),
		httpClient: httpClient,
		now:        now,
	}
}

func withDefaults(cfg domain.ProviderConfig) domain.ProviderConfig {
	if cfg.Model == "" {
		cfg.Model = domain.DefaultProviderModel
	}
	if cfg.APIKeyHeader == "" {
		cfg.APIKeyHeader = domain.DefaultProviderAPIKeyHeader
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = domain.DefaultProviderTimeout
	}
	return cfg
}

// CheckCredentials reports a missing API key or endpoint.
func (c *Client) CheckCredentials() error {
	if c.cfg.APIKey == "" {
		return domain.ErrMissingCredentials
	}
	if c.cfg.Endpoint == "" {
		return domain.ErrMissingEndpoint
	}
	return nil
}

// Generate requests the content of one page and normalizes the response.
func (c *Client) Generate(ctx context.Context, task domain.Task, supplementary string) (domain.GeneratedContent, error) {
	payload, err := json.Marshal(request{
		Prompt: BuildPrompt(task, supplementary),
		Model:  c.cfg.Model,
	})
	if err != nil {
		return domain.GeneratedContent{}, zerr.Wrap(err, domain.ErrProviderRequestFailed.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return domain.GeneratedContent{}, zerr.Wrap(err, domain.ErrProviderRequestFailed.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(c.cfg.APIKeyHeader, c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeneratedContent{}, zerr.Wrap(err, domain.ErrProviderRequestFailed.Error())
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return domain.GeneratedContent{}, zerr.Wrap(err, domain.ErrProviderRequestFailed.Error())
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		excerpt := truncate(string(body), maxErrorBody)
		statusErr := zerr.Wrap(domain.ErrProviderStatus, fmt.Sprintf("provider answered %d with %q", resp.StatusCode, excerpt))
		return domain.GeneratedContent{}, zerr.With(statusErr, "status_code", resp.StatusCode)
	}

	return Normalize(body, c.now())
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
