package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pagefresh/internal/adapters/catalog"
	"go.trai.ch/pagefresh/internal/adapters/config"
	"go.trai.ch/pagefresh/internal/adapters/logger"
	"go.trai.ch/pagefresh/internal/adapters/provider"
	"go.trai.ch/pagefresh/internal/adapters/store"
	"go.trai.ch/pagefresh/internal/adapters/telemetry"
	"go.trai.ch/pagefresh/internal/app"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := app.New(
		mocks.NewMockConfigLoader(ctrl),
		mocks.NewMockCatalogLoader(ctrl),
		mocks.NewMockStoreFactory(ctrl),
		mocks.NewMockProviderFactory(ctrl),
		telemetry.NewNoOpTracer(),
		mockLogger,
	)

	components := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), components)

	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "pagefresh version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	components := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, components)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when the command fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)

	application := app.New(
		mockLoader,
		mocks.NewMockCatalogLoader(ctrl),
		mocks.NewMockStoreFactory(ctrl),
		mocks.NewMockProviderFactory(ctrl),
		telemetry.NewNoOpTracer(),
		mockLogger,
	)

	mockLoader.EXPECT().Load("missing.yaml").Return(nil, domain.ErrConfigReadFailed)
	mockLogger.EXPECT().Error(gomock.Any()).Times(1)

	components := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: mockLogger}, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"plan", "--config", "missing.yaml"},
		new(bytes.Buffer), new(bytes.Buffer), components)

	assert.Equal(t, 1, exitCode)
}

// TestRun_DryRunEndToEnd drives a dry run through the real adapters.
func TestRun_DryRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "catalog", "industries.yaml"), `
- slug: plumbers
  name: Plumber
  plural: Plumbers
- slug: roofers
  name: Roofer
  plural: Roofers
`)
	writeFile(t, filepath.Join(dir, "catalog", "locations.yaml"), `
- country: Germany
  cities: [Berlin, Hamburg]
`)
	writeFile(t, filepath.Join(dir, "pagefresh.yaml"), `
store:
  driver: memory
`)

	log := logger.New()
	logs := new(bytes.Buffer)
	log.SetOutput(logs)

	application := app.New(
		config.NewLoader(log),
		catalog.NewLoader(log),
		store.NewFactory(),
		provider.Factory{},
		telemetry.NewNoOpTracer(),
		log,
	)
	components := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: application, Logger: log}, func() {}, nil
	}

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(),
		[]string{"run", "--dry-run", "--config", filepath.Join(dir, "pagefresh.yaml")},
		stdout, new(bytes.Buffer), components)

	require.Equal(t, 0, exitCode, logs.String())
	assert.Contains(t, stdout.String(), "(dry run)")
	assert.Contains(t, stdout.String(), "seo:combo:roofers:Germany:Hamburg")
	assert.Contains(t, stdout.String(), "8 of 8 candidates processed: 0 succeeded, 0 skipped, 0 failed, 8 pending")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}
