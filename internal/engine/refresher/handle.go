package refresher

import (
	"context"
	"sync"

	"go.trai.ch/pagefresh/internal/core/domain"
)

// RunHandle is a refresh run executing in the background.
type RunHandle struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.RWMutex
	report *domain.Report
	err    error
}

// Start launches Run on a worker goroutine bound to a child of ctx and
// returns immediately. Cancelling ctx or calling Cancel stops the run before
// its next task.
func (r *Refresher) Start(ctx context.Context, tasks []domain.Task) *RunHandle {
	ctx, cancel := context.WithCancel(ctx)
	id := r.cfg.NewRunID()

	h := &RunHandle{
		id:     id,
		cancel: cancel,
		done:   make(chan struct{}),
		report: domain.NewReport(id, r.cfg.Now()),
	}

	go func() {
		defer close(h.done)
		defer cancel()

		report, err := r.run(ctx, id, tasks, h.observe)

		h.mu.Lock()
		h.report = report.Clone()
		h.err = err
		h.mu.Unlock()
	}()

	return h
}

func (h *RunHandle) observe(report *domain.Report) {
	snapshot := report.Clone()
	h.mu.Lock()
	h.report = snapshot
	h.mu.Unlock()
}

// ID returns the run id.
func (h *RunHandle) ID() string {
	return h.id
}

// Done is closed when the run has finished.
func (h *RunHandle) Done() <-chan struct{} {
	return h.done
}

// Cancel asks the run to stop. It does not wait.
func (h *RunHandle) Cancel() {
	h.cancel()
}

// Wait blocks until the run finishes and returns its report.
func (h *RunHandle) Wait() (*domain.Report, error) {
	<-h.done
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.report.Clone(), h.err
}

// Snapshot returns a copy of the report so far and whether the run is finished.
func (h *RunHandle) Snapshot() (report *domain.Report, finished bool, err error) {
	select {
	case <-h.done:
		finished = true
	default:
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.report.Clone(), finished, h.err
}
