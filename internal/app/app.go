package app

import (
	"context"
	"net/http"
	"os"

	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkglog"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkguid"
)

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	requestID pkguid.NumberID
	goroutine *pkgroutine.Manager

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	closerFn map[string]func(context.Context) error
}

// New wires config, libraries, the HTTP server and the enabled modules.
// Any failure here is fatal.
func New() *App {
	pkglog.InitLogging(os.Stdout)

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
