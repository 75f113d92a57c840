package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/cors"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkglog"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/xrpwhale/internal/pkg/pkguid"
)

// defaultConfig holds the values used when the config file and the
// environment leave a key unset.
//
//nolint:gochecknoglobals // read-only defaults
var defaultConfig = map[string]any{
	"tz":                            "UTC",
	"log.level":                     "info",
	"server.address.http":           ":8050",
	"goroutine.max":                 16,
	"snowflake.node_id":             -1,
	"modules.whale.enabled":         true,
	"whale.feed.url":                "wss://xrpl.ws/",
	"whale.feed.streams":            "transactions",
	"whale.feed.ping_interval_ms":   20000,
	"whale.feed.read_timeout_ms":    60000,
	"whale.feed.backoff.base_ms":    500,
	"whale.feed.backoff.max_ms":     30000,
	"whale.feed.backoff.jitter_ms":  250,
	"whale.feed.subscribe_attempts": 3,
	"whale.query.poll_interval_ms":  5000,
}

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path, defaultConfig)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	a.config = cfg
	a.watchConfig(cfg)
}

// watchConfig applies the settings that can change without a restart.
func (a *App) watchConfig(w pkgconfig.Watcher) {
	applyLogLevel(a.config)
	w.OnChange(func(fsnotify.Event) { applyLogLevel(a.config) })
}

func applyLogLevel(cfg pkgconfig.Config) {
	name := cfg.GetString("log.level")
	if !pkglog.SetLevel(name) {
		slog.Warn("unknown log level, keeping current", "level", name, "current", pkglog.Level().String())
	}
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(int(a.config.GetInt("goroutine.max")))
	a.uuid = pkguid.NewUUID()

	sf, err := pkguid.NewSnowflake(a.config.GetInt("snowflake.node_id"))
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.requestID = sf
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderCorrelationID},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
