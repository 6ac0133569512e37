package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"library-cms/internal/config"
	apphttp "library-cms/internal/http"
	"library-cms/internal/service"

	"github.com/rs/zerolog"
)

const serverAddrPrefix = ":"

var shutdownSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
}

// App holds the wired collaborators of a running instance.
type App struct {
	config  *config.Config
	log     zerolog.Logger
	closers []func() error

	Server  *apphttp.Server
	Backups *service.BackupService
	Users   *service.AuthService
}

// Run serves HTTP until ctx is done or a shutdown signal arrives, then
// drains in-flight requests within the configured shutdown timeout.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, shutdownSignals...)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("port", a.config.Server.Port).Msg("starting HTTP server")
		if err := a.Server.Start(serverAddrPrefix + a.config.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.log.Info().Msg("server exited gracefully")
	return nil
}

// Close releases collaborators in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
