package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

// Start serves HTTP in the background and returns a channel that fires once
// a termination signal arrives.
func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve http server", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

		sig := <-sigint
		slog.Info("termination signal received", "signal", sig.String())

		close(terminateChan)
	}()

	return terminateChan
}

// Stop cancels background work, drains HTTP, waits for goroutines and then
// runs the remaining closers.
func (a *App) Stop(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}

	a.close(ctx, "HTTP Server")
	a.close(ctx, "Whale")

	slog.InfoContext(ctx, "waiting for all goroutine to finish", "running", a.goroutine.Running())
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}

	for name := range a.closerFn {
		a.close(ctx, name)
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}

func (a *App) close(ctx context.Context, name string) {
	closer, ok := a.closerFn[name]
	if !ok {
		return
	}
	delete(a.closerFn, name)

	if err := closer(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
	}
}
