package refresher

import (
	"context"
	"time"

	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports"
)

// Preview reports what Run would do without calling the provider: the same
// cap is applied, fresh tasks are marked skipped and the rest pending.
// A later task sharing the key of a pending one is marked skipped, since the
// run would have written that key by then. Provider credentials are not
// required.
func Preview(ctx context.Context, store ports.ContentStore, tasks []domain.Task, cfg Config) *domain.Report {
	cfg = cfg.withDefaults()

	report := domain.NewReport(cfg.NewRunID(), cfg.Now())
	report.DryRun = true
	report.Candidates = len(tasks)

	pending := make(map[string]struct{})
	for _, task := range capTasks(tasks, cfg.MaxTasksPerRun) {
		key := task.CacheKey()
		res := domain.RunResult{TaskKey: key, Task: task.String()}

		if _, ok := pending[key]; ok {
			res.Outcome = domain.OutcomeSkipped
			report.Add(res)
			continue
		}

		fresh, reason := IsFresh(ctx, store, task, cfg.FreshnessThreshold, cfg.Now())
		switch {
		case fresh:
			res.Outcome = domain.OutcomeSkipped
		default:
			res.Outcome = domain.OutcomePending
			pending[key] = struct{}{}
			if reason != nil {
				res.Reason = reason.Error()
			}
		}
		report.Add(res)
	}

	report.FinishedAt = cfg.Now()
	return report
}

// EstimatedDuration returns the wall time a run with the given number of
// provider calls needs at the configured delay.
func (c Config) EstimatedDuration(calls int) time.Duration {
	if calls <= 1 {
		return 0
	}
	return time.Duration(calls-1) * c.InterCallDelay
}
