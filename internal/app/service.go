package app

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"

	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/pagefresh/internal/core/ports"
	"go.trai.ch/pagefresh/internal/engine/refresher"
	"go.trai.ch/zerr"
)

// maxRetainedRuns bounds how many finished runs stay queryable.
const maxRetainedRuns = 20

// Service backs serve mode: it starts background runs one at a time and
// answers manual triggers.
type Service struct {
	ctx       context.Context //nolint:containedctx // runs outlive the request that starts them
	refresher *refresher.Refresher
	tasks     []domain.Task
	catalog   domain.Catalog
	secret    string
	logger    ports.Logger

	mu     sync.Mutex
	active *refresher.RunHandle
	runs   map[string]*refresher.RunHandle
	order  []string
}

// NewService creates a Service. Runs it starts are bound to ctx.
func NewService(
	ctx context.Context,
	r *refresher.Refresher,
	tasks []domain.Task,
	catalog domain.Catalog,
	secret string,
	logger ports.Logger,
) *Service {
	return &Service{
		ctx:       ctx,
		refresher: r,
		tasks:     tasks,
		catalog:   catalog,
		secret:    secret,
		logger:    logger,
		runs:      make(map[string]*refresher.RunHandle),
	}
}

// StartRun launches a background run for an authorized caller.
func (s *Service) StartRun(_ context.Context, secret string) (string, error) {
	if err := s.authorize(secret); err != nil {
		return "", err
	}
	return s.start()
}

// RunScheduled is the cron entry point. An overlapping tick is dropped.
func (s *Service) RunScheduled() {
	id, err := s.start()
	if errors.Is(err, domain.ErrRunInProgress) {
		s.logger.Warn("scheduled run skipped: a refresh run is already in progress")
		return
	}
	if err != nil {
		s.logger.Error(err)
		return
	}
	s.logger.Info(fmt.Sprintf("scheduled run %s started", id))
}

func (s *Service) start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		select {
		case <-s.active.Done():
		default:
			return "", domain.ErrRunInProgress
		}
	}

	h := s.refresher.Start(s.ctx, s.tasks)
	s.active = h
	s.remember(h)
	return h.ID(), nil
}

// remember records h, evicting the oldest finished runs beyond the limit.
func (s *Service) remember(h *refresher.RunHandle) {
	s.runs[h.ID()] = h
	s.order = append(s.order, h.ID())

	for len(s.order) > maxRetainedRuns {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.runs, oldest)
	}
}

// RunStatus returns a snapshot of a known run.
func (s *Service) RunStatus(id string) (*domain.Report, bool, error) {
	s.mu.Lock()
	h, ok := s.runs[id]
	s.mu.Unlock()

	if !ok {
		return nil, false, zerr.With(zerr.Wrap(domain.ErrRunNotFound, fmt.Sprintf("unknown run id %q", id)), "id", id)
	}
	return h.Snapshot()
}

// Generate regenerates a single page for an authorized caller.
func (s *Service) Generate(
	ctx context.Context,
	req domain.TaskRequest,
	secret, supplementary string,
) (string, error) {
	if err := s.authorize(secret); err != nil {
		return "", err
	}

	task, err := req.Resolve(s.catalog)
	if err != nil {
		return "", err
	}

	return s.refresher.GenerateOne(ctx, task, supplementary)
}

// Shutdown cancels the active run and waits for it to stop.
func (s *Service) Shutdown() {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active == nil {
		return
	}
	active.Cancel()
	_, _ = active.Wait()
}

// authorize compares secret with the configured shared secret. With no
// shared secret configured every caller is rejected.
func (s *Service) authorize(secret string) error {
	if s.secret == "" {
		s.logger.Warn("rejected manual trigger: no shared secret is configured")
		return domain.ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.secret)) != 1 {
		return domain.ErrUnauthorized
	}
	return nil
}
