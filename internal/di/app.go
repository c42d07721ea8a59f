package di

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/wb-go/wbf/zlog"

	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/config"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/emitter"
	"github.com/Kandulanaveennaidu/CampusIQ-ERP-sub001/internal/worker"
)

// shutdownTimeout bounds both the HTTP drain and the wait for in-flight
// event side effects.
const shutdownTimeout = 5 * time.Second

// App is the assembled notifier service.
type App struct {
	cfg     *config.Config
	server  *http.Server
	worker  *worker.Broadcaster // nil without a broker
	emitter *emitter.Emitter
}

func newApp(cfg *config.Config, s *http.Server, w *worker.Broadcaster, e *emitter.Emitter) *App {
	return &App{cfg: cfg, server: s, worker: w, emitter: e}
}

// Run serves HTTP and consumes broadcast jobs until ctx is done, then shuts
// down gracefully.
func (a *App) Run(ctx context.Context) error {
	workerDone := make(chan struct{})
	if a.worker != nil {
		go func() {
			defer close(workerDone)
			a.worker.Run(ctx, a.cfg.Retry)
		}()
	} else {
		close(workerDone)
	}

	serveErr := make(chan error, 1)
	go func() {
		zlog.Logger.Info().Str("addr", a.server.Addr).Msg("starting server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		zlog.Logger.Info().Msg("shutdown signal received")
	case err := <-serveErr:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	<-workerDone

	zlog.Logger.Info().Msg("waiting for event side effects")
	if err := a.emitter.Wait(shutdownCtx); err != nil {
		zlog.Logger.Warn().Err(err).Msg("timeout exceeded, abandoning event side effects")
	}

	return nil
}
