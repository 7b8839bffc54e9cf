// Package refresher runs content-refresh tasks against the provider under a
// per-run budget.
package refresher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports"
	"go.trai.ch/zerr"
)

// Span attribute keys.
const (
	AttrRunID   = "pagefresh.run_id"
	AttrTaskKey = "pagefresh.task_key"
	AttrOutcome = "pagefresh.outcome"
)

// Config is the per-run budget of a Refresher.
type Config struct {
	// MaxTasksPerRun caps how many candidates one run processes, skips included.
	MaxTasksPerRun int
	// InterCallDelay is the pause after every provider call.
	InterCallDelay time.Duration
	// FreshnessThreshold is the age below which a cached record is reused.
	FreshnessThreshold time.Duration
	// StoreTTL is passed to the store on every write.
	StoreTTL time.Duration

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
	// NewRunID returns a unique run id. Defaults to uuid.NewString.
	NewRunID func() string
}

// ConfigFrom builds a Config from the application run settings.
func ConfigFrom(rc domain.RunConfig) Config {
	return Config{
		MaxTasksPerRun:     rc.MaxTasksPerRun,
		InterCallDelay:     rc.InterCallDelay,
		FreshnessThreshold: rc.FreshnessThreshold,
		StoreTTL:           rc.StoreTTL,
	}
}

func (c Config) withDefaults() Config {
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewRunID == nil {
		c.NewRunID = uuid.NewString
	}
	return c
}

// Refresher walks refresh tasks sequentially, one provider call at a time.
type Refresher struct {
	provider ports.ContentProvider
	store    ports.ContentStore
	tracer   ports.Tracer
	logger   ports.Logger
	cfg      Config
}

// New creates a Refresher. It fails before any task runs if the provider
// reports missing credentials; the returned error matches
// domain.ErrConfiguration.
func New(
	provider ports.ContentProvider,
	store ports.ContentStore,
	tracer ports.Tracer,
	logger ports.Logger,
	cfg Config,
) (*Refresher, error) {
	if err := provider.CheckCredentials(); err != nil {
		return nil, errors.Join(domain.ErrConfiguration, err)
	}

	return &Refresher{
		provider: provider,
		store:    store,
		tracer:   tracer,
		logger:   logger,
		cfg:      cfg.withDefaults(),
	}, nil
}

// Run processes tasks in order and returns the report.
//
// At most MaxTasksPerRun tasks are processed. A task whose cached record is
// fresh is skipped without delay; every other task is generated and written
// back, and a failure is recorded without stopping the run. When ctx is
// cancelled the partial report is returned together with ctx.Err().
func (r *Refresher) Run(ctx context.Context, tasks []domain.Task) (*domain.Report, error) {
	return r.run(ctx, r.cfg.NewRunID(), tasks, nil)
}

func (r *Refresher) run(
	ctx context.Context,
	runID string,
	tasks []domain.Task,
	observe func(*domain.Report),
) (*domain.Report, error) {
	report := domain.NewReport(runID, r.cfg.Now())
	report.Candidates = len(tasks)
	tasks = capTasks(tasks, r.cfg.MaxTasksPerRun)

	ctx, span := r.tracer.Start(ctx, "refresh run")
	defer span.End()
	span.SetAttribute(AttrRunID, runID)
	span.SetAttribute("pagefresh.candidates", report.Candidates)
	span.SetAttribute("pagefresh.planned", len(tasks))

	r.logger.Info(fmt.Sprintf("refresh run %s: %d of %d candidate tasks", runID, len(tasks), report.Candidates))

	var runErr error
	for i, task := range tasks {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		res := r.process(ctx, task)
		report.Add(res)
		r.logResult(res)
		if observe != nil {
			observe(report)
		}

		if res.Outcome == domain.OutcomeSkipped || i == len(tasks)-1 {
			continue
		}
		if err := r.pause(ctx); err != nil {
			runErr = err
			break
		}
	}

	report.FinishedAt = r.cfg.Now()
	if observe != nil {
		observe(report)
	}

	span.SetAttribute("pagefresh.succeeded", report.Succeeded)
	span.SetAttribute("pagefresh.skipped", report.Skipped)
	span.SetAttribute("pagefresh.failed", report.Failed)
	if runErr != nil {
		span.RecordError(runErr)
	}

	r.logger.Info(fmt.Sprintf(
		"refresh run %s finished: %d succeeded, %d skipped, %d failed",
		runID, report.Succeeded, report.Skipped, report.Failed,
	))

	return report, runErr
}

// process handles one task: gate, generate, persist.
func (r *Refresher) process(ctx context.Context, task domain.Task) domain.RunResult {
	key := task.CacheKey()
	ctx, span := r.tracer.Start(ctx, key)
	defer span.End()
	span.SetAttribute(AttrTaskKey, key)

	start := r.cfg.Now()
	res := domain.RunResult{TaskKey: key, Task: task.String()}

	fresh, reason := IsFresh(ctx, r.store, task, r.cfg.FreshnessThreshold, start)
	if reason != nil {
		r.logger.Warn(fmt.Sprintf("treating %s as stale: %v", key, reason))
	}

	switch {
	case fresh:
		res.Outcome = domain.OutcomeSkipped
	default:
		if err := r.refresh(ctx, task, ""); err != nil {
			span.RecordError(err)
			res.Outcome = domain.OutcomeFailed
			res.Reason = err.Error()
		} else {
			res.Outcome = domain.OutcomeSucceeded
		}
	}

	res.Duration = r.cfg.Now().Sub(start)
	span.SetAttribute(AttrOutcome, string(res.Outcome))
	return res
}

// refresh generates content for task and writes it under the task's key.
func (r *Refresher) refresh(ctx context.Context, task domain.Task, supplementary string) error {
	key := task.CacheKey()

	content, err := r.provider.Generate(ctx, task, supplementary)
	if err != nil {
		return err
	}

	value, err := domain.NewCacheRecord(content, r.cfg.Now()).Encode()
	if err != nil {
		return err
	}

	if err := r.store.Put(ctx, key, value, r.cfg.StoreTTL); err != nil {
		return zerr.With(zerr.Wrap(err, fmt.Sprintf("%s %s", domain.ErrStoreWriteFailed.Error(), key)), "key", key)
	}
	return nil
}

// pause waits InterCallDelay or until ctx is done.
func (r *Refresher) pause(ctx context.Context) error {
	if r.cfg.InterCallDelay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(r.cfg.InterCallDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (r *Refresher) logResult(res domain.RunResult) {
	switch res.Outcome {
	case domain.OutcomeFailed:
		r.logger.Warn(fmt.Sprintf("failed %s: %s", res.TaskKey, res.Reason))
	default:
		r.logger.Info(fmt.Sprintf("%s %s", res.Outcome, res.TaskKey))
	}
}

// GenerateOne regenerates a single task unconditionally and stores the result
// under the same key the scheduled run uses. The freshness gate and the
// per-run cap do not apply.
func (r *Refresher) GenerateOne(ctx context.Context, task domain.Task, supplementary string) (string, error) {
	if err := task.Validate(); err != nil {
		return "", err
	}

	key := task.CacheKey()
	ctx, span := r.tracer.Start(ctx, key)
	defer span.End()
	span.SetAttribute(AttrTaskKey, key)
	span.SetAttribute("pagefresh.manual", true)

	if err := r.refresh(ctx, task, supplementary); err != nil {
		span.RecordError(err)
		span.SetAttribute(AttrOutcome, string(domain.OutcomeFailed))
		return "", zerr.With(err, "task", task.String())
	}

	span.SetAttribute(AttrOutcome, string(domain.OutcomeSucceeded))
	msg := fmt.Sprintf("generated content for %s (%s)", task, key)
	r.logger.Info(msg)
	return msg, nil
}

func capTasks(tasks []domain.Task, maxTasks int) []domain.Task {
	if maxTasks <= 0 {
		return nil
	}
	if len(tasks) > maxTasks {
		return tasks[:maxTasks]
	}
	return tasks
}
