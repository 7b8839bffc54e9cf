package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.trai.ch/pagefresh/internal/adapters/httpapi" //nolint:depguard // Wired in app layer
	"go.trai.ch/pagefresh/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	ConfigPath string
	// Addr overrides the configured listen address when set.
	Addr string
	// Ready, when set, receives the bound address once the listener is open.
	Ready func(addr string)
}

// Serve runs the scheduler and the HTTP API until ctx is cancelled.
//
// Scheduled runs fire on the configured cron schedule; the API can start a
// run on demand or regenerate a single page. Only one run executes at a time.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	env, err := a.open(ctx, opts.ConfigPath)
	if err != nil {
		return errors.Join(domain.ErrConfiguration, err)
	}
	defer env.close()

	r, err := a.newRefresher(env)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(env.cfg.Server.Timezone)
	if err != nil {
		return errors.Join(domain.ErrConfiguration, zerr.With(err, "timezone", env.cfg.Server.Timezone))
	}

	addr := env.cfg.Server.Addr
	if opts.Addr != "" {
		addr = opts.Addr
	}

	ln, err := (&net.ListenConfig{}).Listen(ctx, "tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", addr)
	}

	g, ctx := errgroup.WithContext(ctx)

	svc := NewService(ctx, r, env.tasks, env.catalog, env.cfg.Server.SharedSecret, a.logger)

	scheduler := cron.New(cron.WithSeconds(), cron.WithLocation(loc))
	if _, err := scheduler.AddFunc(env.cfg.Server.Schedule, svc.RunScheduled); err != nil {
		_ = ln.Close()
		return errors.Join(domain.ErrConfiguration, zerr.With(err, "schedule", env.cfg.Server.Schedule))
	}

	srv := &http.Server{
		Handler:           httpapi.NewServer(svc, a.logger).Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	scheduler.Start()
	a.logger.Info(fmt.Sprintf(
		"serving on %s, %d candidate tasks, schedule %q (%s)",
		ln.Addr(), len(env.tasks), env.cfg.Server.Schedule, loc,
	))
	if opts.Ready != nil {
		opts.Ready(ln.Addr().String())
	}

	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "http server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()

		stopped := scheduler.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)

		svc.Shutdown()
		<-stopped.Done()
		a.logger.Info("server stopped")
		return err
	})

	return g.Wait()
}
