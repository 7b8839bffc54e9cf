// Package app implements the application layer for pagefresh.
package app

import (
	"context"
	"errors"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports"
	"go.trai.ch/pagefresh/internal/engine/planner"
	"go.trai.ch/pagefresh/internal/engine/refresher"
	"go.trai.ch/pagefresh/internal/tui"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader  ports.ConfigLoader
	catalogLoader ports.CatalogLoader
	stores        ports.StoreFactory
	providers     ports.ProviderFactory
	tracer        ports.Tracer
	logger        ports.Logger
	now           func() time.Time
	newRunID      func() string
	teaOptions    []tea.ProgramOption
}

// Components holds everything main needs after wiring.
type Components struct {
	App    *App
	Logger ports.Logger
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	catalogLoader ports.CatalogLoader,
	stores ports.StoreFactory,
	providers ports.ProviderFactory,
	tracer ports.Tracer,
	log ports.Logger,
) *App {
	return &App{
		configLoader:  configLoader,
		catalogLoader: catalogLoader,
		stores:        stores,
		providers:     providers,
		tracer:        tracer,
		logger:        log,
		now:           time.Now,
		newRunID:      uuid.NewString,
	}
}

// WithClock replaces the time source and run id generator.
// This is primarily used for testing.
func (a *App) WithClock(now func() time.Time, newRunID func() string) *App {
	a.now = now
	a.newRunID = newRunID
	return a
}

// WithTeaOptions adds bubbletea program options to the App.
// This is primarily used for testing to disable input/output.
func (a *App) WithTeaOptions(opts ...tea.ProgramOption) *App {
	a.teaOptions = append(a.teaOptions, opts...)
	return a
}

// Close flushes the tracer when it supports shutdown.
func (a *App) Close(ctx context.Context) error {
	if s, ok := a.tracer.(interface{ Shutdown(context.Context) error }); ok {
		return s.Shutdown(ctx)
	}
	return nil
}

// RunOptions configuration for the Refresh method.
type RunOptions struct {
	ConfigPath string
	DryRun     bool
	// Live follows the run in a terminal view while it executes.
	Live bool
}

// Refresh performs one scheduled run over the full catalog.
//
// A configuration problem yields a report carrying the error and an error
// matching domain.ErrConfiguration; no task is processed. With DryRun the
// provider is never called and credentials are not required.
func (a *App) Refresh(ctx context.Context, opts RunOptions) (*domain.Report, error) {
	env, err := a.open(ctx, opts.ConfigPath)
	if err != nil {
		err = errors.Join(domain.ErrConfiguration, err)
		return domain.NewConfigErrorReport(a.newRunID(), a.now(), err), err
	}
	defer env.close()

	if opts.DryRun {
		return refresher.Preview(ctx, env.store, env.tasks, a.refresherConfig(env.cfg)), nil
	}

	r, err := a.newRefresher(env)
	if err != nil {
		return domain.NewConfigErrorReport(a.newRunID(), a.now(), err), err
	}

	if opts.Live {
		return a.refreshLive(ctx, r, env)
	}
	return r.Run(ctx, env.tasks)
}

// refreshLive runs in the background and follows it in the terminal.
// Quitting the view cancels the run.
func (a *App) refreshLive(ctx context.Context, r *refresher.Refresher, env *environment) (*domain.Report, error) {
	h := r.Start(ctx, env.tasks)

	planned := min(len(env.tasks), max(env.cfg.Run.MaxTasksPerRun, 0))
	model := tui.NewModel(h, planned)

	optsTea := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(os.Stderr)}, a.teaOptions...)
	_, viewErr := tea.NewProgram(model, optsTea...).Run()

	if model.Aborted() || viewErr != nil {
		h.Cancel()
	}
	report, err := h.Wait()
	if err == nil && viewErr != nil && !errors.Is(viewErr, tea.ErrProgramKilled) {
		err = zerr.Wrap(viewErr, "live view failed")
	}
	return report, err
}

// PlanOptions configuration for the Plan method.
type PlanOptions struct {
	ConfigPath string
	// Limit keeps only the first Limit tasks. Zero or less keeps all.
	Limit int
}

// Plan returns the enumerated candidate tasks in priority order.
func (a *App) Plan(_ context.Context, opts PlanOptions) ([]domain.Task, error) {
	cfg, catalog, err := a.loadInputs(opts.ConfigPath)
	if err != nil {
		return nil, errors.Join(domain.ErrConfiguration, err)
	}

	tasks := planner.Enumerate(*catalog, cfg.Enumeration)
	if opts.Limit > 0 && len(tasks) > opts.Limit {
		tasks = tasks[:opts.Limit]
	}
	return tasks, nil
}

// GenerateOptions configuration for the Generate method.
type GenerateOptions struct {
	ConfigPath string
	Request    domain.TaskRequest
	// Context is optional free text passed to the provider.
	Context string
}

// Generate regenerates one page regardless of freshness.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) (string, error) {
	env, err := a.open(ctx, opts.ConfigPath)
	if err != nil {
		return "", errors.Join(domain.ErrConfiguration, err)
	}
	defer env.close()

	task, err := opts.Request.Resolve(env.catalog)
	if err != nil {
		return "", err
	}

	r, err := a.newRefresher(env)
	if err != nil {
		return "", err
	}

	return r.GenerateOne(ctx, task, opts.Context)
}

// environment is everything a command needs once configuration is loaded.
type environment struct {
	cfg     *domain.Config
	catalog domain.Catalog
	tasks   []domain.Task
	store   ports.ContentStore
	close   func()
}

func (a *App) loadInputs(configPath string) (*domain.Config, *domain.Catalog, error) {
	if configPath == "" {
		configPath = domain.ConfigFileName
	}

	cfg, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := a.catalogLoader.Load(cfg.Catalog.IndustriesPath, cfg.Catalog.LocationsPath)
	if err != nil {
		return nil, nil, err
	}

	return cfg, catalog, nil
}

func (a *App) open(ctx context.Context, configPath string) (*environment, error) {
	cfg, catalog, err := a.loadInputs(configPath)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := a.stores.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	return &environment{
		cfg:     cfg,
		catalog: *catalog,
		tasks:   planner.Enumerate(*catalog, cfg.Enumeration),
		store:   store,
		close:   closeStore,
	}, nil
}

func (a *App) refresherConfig(cfg *domain.Config) refresher.Config {
	rc := refresher.ConfigFrom(cfg.Run)
	rc.Now = a.now
	rc.NewRunID = a.newRunID
	return rc
}

func (a *App) newRefresher(env *environment) (*refresher.Refresher, error) {
	return refresher.New(
		a.providers.New(env.cfg.Provider),
		env.store,
		a.tracer,
		a.logger,
		a.refresherConfig(env.cfg),
	)
}
