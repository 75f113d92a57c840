package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/shandysiswandi/xrpwhale/internal/whale"
)

func (a *App) initModules() {
	if !a.config.GetBool("modules.whale.enabled") {
		slog.Warn("module whale disabled, serving health endpoints only")
		return
	}

	closer, err := whale.New(whale.Dependency{
		Config:    a.config,
		Goroutine: a.goroutine,
		Router:    a.router,
		Context:   a.ctx,
		RequestID: a.requestID,
	})
	if err != nil {
		slog.Error("failed to init module whale", "error", err)
		os.Exit(1)
	}
	if closer != nil {
		if a.closerFn == nil {
			a.closerFn = map[string]func(context.Context) error{}
		}
		a.closerFn["Whale"] = closer
	}
}
